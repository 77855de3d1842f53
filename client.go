package intake

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// LanguageModelClient is the boundary to the language model provider.
// The core treats it as a black box: one blocking call per turn, no
// retries, no internal timeout. Callers wrap Chat with their own
// cancellation via ctx.
//
// The models package provides an implementation backed by any
// LangChainGo llms.Model; tests use internal/tt.MockClient.
type LanguageModelClient interface {
	// Chat sends the message history plus tool definitions and returns
	// the model's response. A transport or auth failure returns an
	// error, which the agent surfaces as a turn-level failure.
	Chat(
		ctx context.Context,
		history []llms.MessageContent,
		tools []llms.Tool,
	) (*ChatResponse, error)

	// ExtractFunctionCalls returns the tool invocations requested by
	// the response, in the order the model requested them. A call whose
	// arguments could not be parsed is returned with nil Arguments; the
	// tool layer resolves it into a structured failure result.
	ExtractFunctionCalls(resp *ChatResponse) []FunctionCall
}

// ChatResponse is the normalized response from a Chat call.
type ChatResponse struct {
	// Content is the assistant's natural-language reply, if any.
	Content string

	// StopReason is the provider's stop reason ("stop", "tool_calls", ...).
	StopReason string

	// ToolCalls holds the raw tool call requests from the provider.
	ToolCalls []llms.ToolCall

	// Usage contains normalized token usage, nil if the provider did
	// not report any.
	Usage *Usage
}

// Usage is token usage normalized across providers.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// FunctionCall is one parsed tool invocation request.
type FunctionCall struct {
	// ID is the provider-assigned tool call ID, echoed back in the
	// tool response message. May be empty for providers without IDs.
	ID string

	// Name is the tool's name.
	Name string

	// Arguments is the parsed argument map. Nil when the raw arguments
	// were malformed JSON.
	Arguments map[string]any
}
