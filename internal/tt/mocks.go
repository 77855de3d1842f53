// Package tt provides shared test helpers: a scripted mock client and
// small builders for tool call responses.
package tt

import (
	"context"
	"encoding/json"

	"github.com/tmc/langchaingo/llms"

	"github.com/intakekit/intake"
)

// MockClient is a scripted intake.LanguageModelClient. Responses and
// errors are queued in call order; every call's history and tool
// definitions are captured for assertions.
type MockClient struct {
	responses []*intake.ChatResponse
	errors    []error
	callCount int

	// CapturedHistory stores the messages passed to each Chat call.
	CapturedHistory [][]llms.MessageContent

	// CapturedTools stores the tool definitions passed to each Chat
	// call.
	CapturedTools [][]llms.Tool
}

// NewMockClient creates an empty MockClient. With nothing queued, Chat
// returns a plain "ok" text response.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// AddText queues a text-only response.
func (m *MockClient) AddText(content string) *MockClient {
	return m.AddResponse(&intake.ChatResponse{Content: content, StopReason: "stop"})
}

// AddToolCalls queues a response requesting the given tool calls,
// optionally with assistant text.
func (m *MockClient) AddToolCalls(content string, calls ...llms.ToolCall) *MockClient {
	return m.AddResponse(&intake.ChatResponse{
		Content:    content,
		StopReason: "tool_calls",
		ToolCalls:  calls,
	})
}

// AddResponse queues a raw response.
func (m *MockClient) AddResponse(resp *intake.ChatResponse) *MockClient {
	m.responses = append(m.responses, resp)
	m.errors = append(m.errors, nil)
	return m
}

// AddError queues an error for the next call.
func (m *MockClient) AddError(err error) *MockClient {
	m.responses = append(m.responses, nil)
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of Chat calls made.
func (m *MockClient) CallCount() int {
	return m.callCount
}

// Chat implements intake.LanguageModelClient.
func (m *MockClient) Chat(
	_ context.Context,
	history []llms.MessageContent,
	tools []llms.Tool,
) (*intake.ChatResponse, error) {
	idx := m.callCount
	m.callCount++
	m.CapturedHistory = append(m.CapturedHistory, history)
	m.CapturedTools = append(m.CapturedTools, tools)

	if idx >= len(m.responses) {
		return &intake.ChatResponse{Content: "ok", StopReason: "stop"}, nil
	}
	if err := m.errors[idx]; err != nil {
		return nil, err
	}
	return m.responses[idx], nil
}

// ExtractFunctionCalls implements intake.LanguageModelClient with the
// same semantics as the production client: malformed argument JSON
// yields a call with nil Arguments.
func (m *MockClient) ExtractFunctionCalls(resp *intake.ChatResponse) []intake.FunctionCall {
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

// Call builds an llms.ToolCall with JSON-encoded arguments.
func Call(id, name string, args map[string]any) llms.ToolCall {
	data, err := json.Marshal(args)
	if err != nil {
		panic(err)
	}
	return llms.ToolCall{
		ID:   id,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: string(data),
		},
	}
}

// RawCall builds an llms.ToolCall with a verbatim argument string, for
// exercising malformed-JSON handling.
func RawCall(id, name, rawArgs string) llms.ToolCall {
	return llms.ToolCall{
		ID:   id,
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      name,
			Arguments: rawArgs,
		},
	}
}
