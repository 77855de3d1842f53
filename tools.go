package intake

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/intakekit/intake/schema"
	"github.com/tmc/langchaingo/llms"
)

// Tool names exposed to the model. The tool set is a closed enum of
// four operations; dispatch is a single switch, never reflection.
const (
	ToolSetField      = "set_field"
	ToolValidateState = "validate_state"
	ToolGetState      = "get_state"
	ToolClearState    = "clear_state"
)

// ToolSet binds the four CRUD tools to one State instance. set_field
// and clear_state mutate the state; validate_state and get_state are
// read-only. Failures (unknown field, rejected value, malformed
// arguments) are always resolved into ok=false results so the model
// can react conversationally; nothing raises across the tool boundary.
type ToolSet struct {
	state *State

	// Compiled argument schema for set_field. Deliberately laxer than
	// the advertised schema: no field name enum, so an undeclared name
	// reaches the state layer and comes back as a readable
	// unknown-field message instead of a raw enum violation.
	setFieldArgs *schema.Schema
}

// NewToolSet creates a ToolSet bound to the given state.
func NewToolSet(state *State) *ToolSet {
	return &ToolSet{
		state: state,
		setFieldArgs: schema.MustCompile(schema.Object(map[string]*schema.Property{
			"field_name": schema.String("Name of the field to set"),
			"value":      schema.Any("Value to set for the field"),
		}, "field_name", "value")),
	}
}

// Definitions returns the four tool definitions for the model-facing
// protocol. The set_field field_name parameter enumerates the declared
// field names.
func (ts *ToolSet) Definitions() []llms.Tool {
	names := ts.state.Schema().FieldNames()
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}

	return []llms.Tool{
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolSetField,
				Description: "Set or update a field in the state",
				Parameters: schema.Object(map[string]*schema.Property{
					"field_name": schema.String("Name of the field to set").Enum(enum...),
					"value":      schema.Any("Value to set for the field"),
				}, "field_name", "value"),
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolValidateState,
				Description: "Check if the current state is complete and valid",
				Parameters:  schema.Object(map[string]*schema.Property{}),
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolGetState,
				Description: "Get the current state snapshot",
				Parameters:  schema.Object(map[string]*schema.Property{}),
			},
		},
		{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        ToolClearState,
				Description: "Reset all fields to their default values",
				Parameters:  schema.Object(map[string]*schema.Property{}),
			},
		},
	}
}

// SetFieldResult is the structured result of a set_field call.
type SetFieldResult struct {
	OK    bool   `json:"ok"`
	Field string `json:"field,omitempty"`
	Value any    `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// ValidateStateResult is the structured result of a validate_state call.
type ValidateStateResult struct {
	Complete      bool     `json:"complete"`
	MissingFields []string `json:"missing_fields"`
}

// GetStateResult is the structured result of a get_state call.
type GetStateResult struct {
	State map[string]any `json:"state"`
}

// ClearStateResult acknowledges a clear_state call.
type ClearStateResult struct {
	Cleared bool           `json:"cleared"`
	State   map[string]any `json:"state"`
}

// UnknownToolResult is returned for tool names outside the closed set.
type UnknownToolResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ToolCallResult pairs a tool call with its structured output.
type ToolCallResult struct {
	// CallID echoes the provider-assigned tool call ID, if any.
	CallID string

	// Name is the tool that was invoked.
	Name string

	// Output is one of SetFieldResult, ValidateStateResult,
	// GetStateResult, ClearStateResult, or UnknownToolResult.
	Output any
}

// JSON renders the output for the tool response message. Marshal
// failures can't happen for the fixed result types, but fall back to a
// quoted error string just in case.
func (r *ToolCallResult) JSON() string {
	data, err := json.Marshal(r.Output)
	if err != nil {
		return fmt.Sprintf(`{"ok":false,"error":%q}`, err)
	}
	return string(data)
}

// Apply dispatches a single tool call against the bound state and
// returns its structured result. Apply never returns an error: every
// failure mode is folded into the result so it can be relayed to the
// model.
func (ts *ToolSet) Apply(call FunctionCall) *ToolCallResult {
	result := &ToolCallResult{CallID: call.ID, Name: call.Name}

	switch call.Name {
	case ToolSetField:
		result.Output = ts.setField(call.Arguments)
	case ToolValidateState:
		missing := ts.state.Validate()
		result.Output = ValidateStateResult{
			Complete:      len(missing) == 0,
			MissingFields: missing,
		}
	case ToolGetState:
		result.Output = GetStateResult{State: ts.state.Snapshot()}
	case ToolClearState:
		ts.state.Clear()
		result.Output = ClearStateResult{Cleared: true, State: ts.state.Snapshot()}
	default:
		result.Output = UnknownToolResult{
			Error: fmt.Sprintf("unknown tool %q", call.Name),
		}
	}
	return result
}

func (ts *ToolSet) setField(args map[string]any) SetFieldResult {
	if args == nil {
		return SetFieldResult{
			Error: "malformed arguments: expected a JSON object with field_name and value",
		}
	}
	if err := ts.setFieldArgs.Validate(args); err != nil {
		return SetFieldResult{Error: err.Error()}
	}

	name, _ := args["field_name"].(string)
	name = strings.TrimSpace(name)
	value := args["value"]

	if err := ts.state.SetField(name, value); err != nil {
		return SetFieldResult{Field: name, Error: err.Error()}
	}

	stored, _ := ts.state.Get(name)
	return SetFieldResult{OK: true, Field: name, Value: stored}
}
