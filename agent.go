package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// SessionStatus is the state machine of one conversation session.
type SessionStatus string

const (
	// StatusActive means the session is still collecting fields.
	StatusActive SessionStatus = "active"

	// StatusComplete means every required field is present; the
	// on_submit hook has fired and no further mutations are honored.
	StatusComplete SessionStatus = "complete"

	// StatusTerminatedMaxTurns means the turn limit was reached while
	// the state was still incomplete. Terminal; no further tool
	// execution.
	StatusTerminatedMaxTurns SessionStatus = "terminated_max_turns"
)

// DefaultMaxTurns is the turn limit applied when Config.MaxTurns is 0.
const DefaultMaxTurns = 20

// Config holds the options recognized at agent construction.
type Config struct {
	// Schema is the state schema to collect. Required.
	Schema *Schema

	// Client is the language model boundary. Required.
	Client LanguageModelClient

	// Hooks is the optional lifecycle callback set.
	Hooks Hooks

	// MaxTurns bounds the session; 0 means DefaultMaxTurns. Negative
	// values are rejected.
	MaxTurns int

	// SystemPrompt overrides the default schema-derived system prompt.
	SystemPrompt string

	// WarnWriter receives turn-level warnings (hook panics). Defaults
	// to os.Stderr.
	WarnWriter io.Writer
}

// Agent drives one structured data collection session: it forwards the
// conversation to the LanguageModelClient, executes requested CRUD tool
// calls against its State, applies lifecycle hooks, and decides when
// the session is done.
//
// An Agent owns exactly one in-memory State per session. It is not safe
// for concurrent use: callers embedding it in a concurrent host must
// serialize calls to ProcessSingleTurn per session (one session per
// connection with a per-session mutex is the usual arrangement).
// Distinct sessions share nothing but the read-only Schema.
type Agent struct {
	schema       *Schema
	client       LanguageModelClient
	hooks        Hooks
	maxTurns     int
	systemPrompt string
	warnw        io.Writer

	state     *State
	tools     *ToolSet
	history   []llms.MessageContent
	turnCount int
	status    SessionStatus
}

// New creates an Agent with a fresh session in StatusActive.
func New(cfg Config) (*Agent, error) {
	if cfg.Schema == nil {
		return nil, errors.New("intake: Config.Schema is required")
	}
	if cfg.Client == nil {
		return nil, errors.New("intake: Config.Client is required")
	}
	if cfg.MaxTurns < 0 {
		return nil, fmt.Errorf("intake: Config.MaxTurns must be positive, got %d", cfg.MaxTurns)
	}

	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = DefaultMaxTurns
	}
	systemPrompt := cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt(cfg.Schema)
	}
	warnw := cfg.WarnWriter
	if warnw == nil {
		warnw = os.Stderr
	}

	a := &Agent{
		schema:       cfg.Schema,
		client:       cfg.Client,
		hooks:        cfg.Hooks,
		maxTurns:     maxTurns,
		systemPrompt: systemPrompt,
		warnw:        warnw,
	}
	a.startSession()
	return a, nil
}

func (a *Agent) startSession() {
	a.state = a.schema.NewState()
	a.tools = NewToolSet(a.state)
	a.history = nil
	a.turnCount = 0
	a.status = StatusActive
}

// State returns the session's state instance.
func (a *Agent) State() *State { return a.state }

// Status returns the session's current status.
func (a *Agent) Status() SessionStatus { return a.status }

// TurnCount returns the number of completed (non-completing) turns.
func (a *Agent) TurnCount() int { return a.turnCount }

// History returns a copy of the conversation history.
func (a *Agent) History() []llms.MessageContent {
	history := make([]llms.MessageContent, len(a.history))
	copy(history, a.history)
	return history
}

// TurnResult is the outcome of one ProcessSingleTurn call.
type TurnResult struct {
	// Complete reports whether every required field is present.
	Complete bool

	// Status is the session status after this turn.
	Status SessionStatus

	// Message is the assistant's natural-language reply, if any.
	Message string

	// State is the snapshot of field values after this turn.
	State map[string]any

	// MissingFields lists required fields still missing, in schema
	// declaration order followed by cross-field rule additions.
	MissingFields []string

	// ToolResults holds the structured result of every tool call the
	// model requested this turn, in request order.
	ToolResults []*ToolCallResult
}

// ProcessSingleTurn runs exactly one turn and returns without blocking
// for further input. This is the primary integration surface for
// embedding the agent in request/response systems.
//
// The turn: forward history plus tool definitions to the client,
// execute requested tool calls in order, fire on_field_set per
// successful mutation, append the exchange to history, then re-validate
// the state. A complete state transitions the session to StatusComplete
// and fires on_submit exactly once; otherwise the turn is counted and
// the session may transition to StatusTerminatedMaxTurns.
//
// A client failure returns a *ProviderError and leaves history and the
// turn count untouched, so the caller may retry the same turn. Calls on
// an ended session return a fixed result without contacting the client
// or executing tools.
func (a *Agent) ProcessSingleTurn(ctx context.Context, userInput string) (*TurnResult, error) {
	switch a.status {
	case StatusComplete:
		return &TurnResult{
			Complete:      true,
			Status:        StatusComplete,
			Message:       "All required information has already been collected.",
			State:         a.state.Snapshot(),
			MissingFields: []string{},
		}, nil
	case StatusTerminatedMaxTurns:
		return &TurnResult{
			Status:        StatusTerminatedMaxTurns,
			Message:       fmt.Sprintf("The conversation ended after reaching the limit of %d turns.", a.maxTurns),
			State:         a.state.Snapshot(),
			MissingFields: a.state.Validate(),
		}, nil
	}

	resp, err := a.client.Chat(ctx, a.buildMessages(userInput), a.tools.Definitions())
	if err != nil {
		return nil, &ProviderError{Err: err}
	}

	calls := a.client.ExtractFunctionCalls(resp)
	results := make([]*ToolCallResult, 0, len(calls))
	for _, call := range calls {
		result := a.tools.Apply(call)
		results = append(results, result)
		if r, ok := result.Output.(SetFieldResult); ok && r.OK {
			a.hooks.fireFieldSet(a.warnw, a.state, r.Field)
		}
	}

	a.appendExchange(userInput, resp, results)

	missing := a.state.Validate()
	if len(missing) == 0 {
		a.status = StatusComplete
		a.hooks.fireSubmit(a.warnw, a.state)
		return &TurnResult{
			Complete:      true,
			Status:        StatusComplete,
			Message:       resp.Content,
			State:         a.state.Snapshot(),
			MissingFields: missing,
			ToolResults:   results,
		}, nil
	}

	a.turnCount++
	if a.turnCount >= a.maxTurns {
		a.status = StatusTerminatedMaxTurns
	}
	return &TurnResult{
		Status:        a.status,
		Message:       resp.Content,
		State:         a.state.Snapshot(),
		MissingFields: missing,
		ToolResults:   results,
	}, nil
}

// buildMessages assembles the prompt for one client call: system
// prompt, accumulated history, a current-state summary, and the user's
// message. The summary is rebuilt every call rather than persisted.
func (a *Agent) buildMessages(userInput string) []llms.MessageContent {
	messages := make([]llms.MessageContent, 0, len(a.history)+3)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt))
	messages = append(messages, a.history...)
	messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem, stateSummaryMessage(a.state)))
	if strings.TrimSpace(userInput) != "" {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeHuman, userInput))
	}
	return messages
}

// appendExchange records the turn in history. History is only mutated
// here, after the client call succeeded, so a failed turn can be
// retried without duplicating messages.
func (a *Agent) appendExchange(userInput string, resp *ChatResponse, results []*ToolCallResult) {
	if strings.TrimSpace(userInput) != "" {
		a.history = append(a.history, llms.TextParts(llms.ChatMessageTypeHuman, userInput))
	}

	assistantParts := make([]llms.ContentPart, 0, 1+len(resp.ToolCalls))
	if resp.Content != "" {
		assistantParts = append(assistantParts, llms.TextContent{Text: resp.Content})
	}
	for _, tc := range resp.ToolCalls {
		assistantParts = append(assistantParts, tc)
	}
	if len(assistantParts) > 0 {
		a.history = append(a.history, llms.MessageContent{
			Role:  llms.ChatMessageTypeAI,
			Parts: assistantParts,
		})
	}

	if len(results) > 0 {
		toolParts := make([]llms.ContentPart, 0, len(results))
		for _, r := range results {
			toolParts = append(toolParts, llms.ToolCallResponse{
				ToolCallID: r.CallID,
				Name:       r.Name,
				Content:    r.JSON(),
			})
		}
		a.history = append(a.history, llms.MessageContent{
			Role:  llms.ChatMessageTypeTool,
			Parts: toolParts,
		})
	}
}

// Reset discards the conversation history and turn count, replaces the
// State with a fresh default instance, and returns the session to
// StatusActive.
func (a *Agent) Reset() {
	a.startSession()
}
