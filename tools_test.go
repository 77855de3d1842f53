package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakekit/intake/validators"
)

func newToolSet(t *testing.T) (*ToolSet, *State) {
	t.Helper()
	schema := MustSchema("contact",
		NewField("name").
			Required().
			WithValidator(validators.Length(2, 100)),
		NewField("email").
			Required().
			WithValidator(validators.Email()),
	)
	state := schema.NewState()
	return NewToolSet(state), state
}

func TestToolSet_Definitions(t *testing.T) {
	ts, _ := newToolSet(t)

	defs := ts.Definitions()

	require.Len(t, defs, 4)
	names := make([]string, len(defs))
	for i, d := range defs {
		names[i] = d.Function.Name
		assert.Equal(t, "function", d.Type)
	}
	assert.Equal(t, []string{ToolSetField, ToolValidateState, ToolGetState, ToolClearState}, names)

	// set_field's field_name parameter enumerates the declared fields.
	params, ok := defs[0].Function.Parameters.(map[string]any)
	require.True(t, ok)
	props := params["properties"].(map[string]any)
	fieldName := props["field_name"].(map[string]any)
	assert.Equal(t, []any{"name", "email"}, fieldName["enum"])
}

func TestToolSet_SetField(t *testing.T) {
	t.Run("rejected value reports the violated constraint", func(t *testing.T) {
		ts, state := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: map[string]any{
			"field_name": "name",
			"value":      "J",
		}})

		out, ok := result.Output.(SetFieldResult)
		require.True(t, ok)
		assert.False(t, out.OK)
		assert.Contains(t, out.Error, "length")
		value, _ := state.Get("name")
		assert.Nil(t, value)
	})

	t.Run("accepted value is stored and echoed", func(t *testing.T) {
		ts, state := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: map[string]any{
			"field_name": "name",
			"value":      "John Smith",
		}})

		out := result.Output.(SetFieldResult)
		assert.True(t, out.OK)
		assert.Equal(t, "name", out.Field)
		assert.Equal(t, "John Smith", out.Value)
		value, _ := state.Get("name")
		assert.Equal(t, "John Smith", value)
	})

	t.Run("unknown field name never raises", func(t *testing.T) {
		ts, state := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: map[string]any{
			"field_name": "phone_number",
			"value":      "123",
		}})

		out := result.Output.(SetFieldResult)
		assert.False(t, out.OK)
		assert.Contains(t, out.Error, "unknown")
		assert.Equal(t, map[string]any{"name": nil, "email": nil}, state.Snapshot())
	})

	t.Run("nil arguments resolve to a malformed-arguments failure", func(t *testing.T) {
		ts, _ := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: nil})

		out := result.Output.(SetFieldResult)
		assert.False(t, out.OK)
		assert.Contains(t, out.Error, "malformed arguments")
	})

	t.Run("missing value argument fails schema validation", func(t *testing.T) {
		ts, _ := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: map[string]any{
			"field_name": "name",
		}})

		out := result.Output.(SetFieldResult)
		assert.False(t, out.OK)
		assert.Contains(t, out.Error, "schema validation failed")
	})

	t.Run("non-string field_name fails schema validation", func(t *testing.T) {
		ts, _ := newToolSet(t)

		result := ts.Apply(FunctionCall{Name: ToolSetField, Arguments: map[string]any{
			"field_name": float64(7),
			"value":      "x",
		}})

		out := result.Output.(SetFieldResult)
		assert.False(t, out.OK)
	})
}

func TestToolSet_ValidateState(t *testing.T) {
	ts, state := newToolSet(t)

	// Scenario: name present, email still missing.
	require.NoError(t, state.SetField("name", "John Smith"))

	result := ts.Apply(FunctionCall{Name: ToolValidateState})

	out, ok := result.Output.(ValidateStateResult)
	require.True(t, ok)
	assert.False(t, out.Complete)
	assert.Equal(t, []string{"email"}, out.MissingFields)

	require.NoError(t, state.SetField("email", "john@company.com"))

	out = ts.Apply(FunctionCall{Name: ToolValidateState}).Output.(ValidateStateResult)
	assert.True(t, out.Complete)
	assert.Empty(t, out.MissingFields)
}

func TestToolSet_GetState(t *testing.T) {
	ts, state := newToolSet(t)
	require.NoError(t, state.SetField("name", "John Smith"))

	result := ts.Apply(FunctionCall{Name: ToolGetState})

	out, ok := result.Output.(GetStateResult)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "John Smith", "email": nil}, out.State)
}

func TestToolSet_ClearState(t *testing.T) {
	ts, state := newToolSet(t)
	require.NoError(t, state.SetField("name", "John Smith"))
	require.NoError(t, state.SetField("email", "john@company.com"))

	result := ts.Apply(FunctionCall{Name: ToolClearState})

	out, ok := result.Output.(ClearStateResult)
	require.True(t, ok)
	assert.True(t, out.Cleared)
	assert.Equal(t, map[string]any{"name": nil, "email": nil}, state.Snapshot())
}

func TestToolSet_UnknownTool(t *testing.T) {
	ts, _ := newToolSet(t)

	result := ts.Apply(FunctionCall{Name: "delete_everything"})

	out, ok := result.Output.(UnknownToolResult)
	require.True(t, ok)
	assert.False(t, out.OK)
	assert.Contains(t, out.Error, "unknown tool")
}

func TestToolCallResult_JSON(t *testing.T) {
	result := &ToolCallResult{
		Name: ToolValidateState,
		Output: ValidateStateResult{
			Complete:      false,
			MissingFields: []string{"email"},
		},
	}

	assert.JSONEq(t, `{"complete":false,"missing_fields":["email"]}`, result.JSON())
}
