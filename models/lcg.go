// Package models provides LanguageModelClient implementations.
//
// The only production implementation wraps a LangChainGo llms.Model,
// which covers OpenAI, Anthropic, Google, Ollama and the other
// providers LangChainGo supports. Provider wire protocols stay behind
// that boundary; the core never sees them.
package models

import (
	"context"
	"encoding/json"

	"github.com/tmc/langchaingo/llms"

	"github.com/intakekit/intake"
)

// LangChainClient implements intake.LanguageModelClient on top of any
// LangChainGo llms.Model.
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	client := models.NewLangChainClient(llm).
//	    WithCallOptions(llms.WithTemperature(0.1))
type LangChainClient struct {
	model llms.Model
	opts  []llms.CallOption
}

// NewLangChainClient wraps the given llms.Model.
func NewLangChainClient(model llms.Model) *LangChainClient {
	return &LangChainClient{model: model}
}

// WithCallOptions sets call options applied to every Chat call, before
// the per-call tool definitions. Returns the client for chaining.
func (c *LangChainClient) WithCallOptions(opts ...llms.CallOption) *LangChainClient {
	c.opts = opts
	return c
}

// Unwrap returns the underlying llms.Model.
func (c *LangChainClient) Unwrap() llms.Model {
	return c.model
}

// Chat implements intake.LanguageModelClient.
func (c *LangChainClient) Chat(
	ctx context.Context,
	history []llms.MessageContent,
	tools []llms.Tool,
) (*intake.ChatResponse, error) {
	opts := make([]llms.CallOption, 0, len(c.opts)+1)
	opts = append(opts, c.opts...)
	if len(tools) > 0 {
		opts = append(opts, llms.WithTools(tools))
	}

	resp, err := c.model.GenerateContent(ctx, history, opts...)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return &intake.ChatResponse{}, nil
	}

	choice := resp.Choices[0]
	out := &intake.ChatResponse{
		Content:    choice.Content,
		StopReason: choice.StopReason,
		ToolCalls:  choice.ToolCalls,
		Usage:      extractUsage(choice.GenerationInfo),
	}

	// Some providers report a single legacy function call instead of
	// the tool call list.
	if len(out.ToolCalls) == 0 && choice.FuncCall != nil {
		out.ToolCalls = []llms.ToolCall{{
			Type:         "function",
			FunctionCall: choice.FuncCall,
		}}
	}
	return out, nil
}

// ExtractFunctionCalls implements intake.LanguageModelClient. Calls
// whose argument JSON does not parse are kept with nil Arguments so
// the tool layer can answer with a structured failure.
func (c *LangChainClient) ExtractFunctionCalls(resp *intake.ChatResponse) []intake.FunctionCall {
	if resp == nil {
		return nil
	}
	calls := make([]intake.FunctionCall, 0, len(resp.ToolCalls))
	for _, tc := range resp.ToolCalls {
		if tc.FunctionCall == nil {
			continue
		}
		var args map[string]any
		if raw := tc.FunctionCall.Arguments; raw != "" {
			if err := json.Unmarshal([]byte(raw), &args); err != nil {
				args = nil
			}
		}
		calls = append(calls, intake.FunctionCall{
			ID:        tc.ID,
			Name:      tc.FunctionCall.Name,
			Arguments: args,
		})
	}
	return calls
}

// extractUsage normalizes token counts across providers:
//   - OpenAI: PromptTokens / CompletionTokens / TotalTokens
//   - Anthropic: InputTokens / OutputTokens
//   - Google, Bedrock: input_tokens / output_tokens / total_tokens
func extractUsage(info map[string]any) *intake.Usage {
	if info == nil {
		return nil
	}
	usage := &intake.Usage{
		InputTokens:  intFromAny(info, "PromptTokens", "InputTokens", "input_tokens", "prompt_tokens"),
		OutputTokens: intFromAny(info, "CompletionTokens", "OutputTokens", "output_tokens", "completion_tokens"),
		TotalTokens:  intFromAny(info, "TotalTokens", "total_tokens"),
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	if usage.InputTokens == 0 && usage.OutputTokens == 0 && usage.TotalTokens == 0 {
		return nil
	}
	return usage
}

func intFromAny(info map[string]any, keys ...string) int {
	for _, key := range keys {
		switch v := info[key].(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return 0
}
