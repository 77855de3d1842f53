package loggers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intakekit/intake"
)

func testState(t *testing.T) *intake.State {
	t.Helper()
	schema := intake.MustSchema("contact",
		intake.NewField("name").Required(),
		intake.NewField("email").Required(),
	)
	return schema.NewState()
}

func TestStateLogger_OnFieldSet(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStateLogger(&buf)
	state := testState(t)
	require.NoError(t, state.SetField("name", "John Smith"))

	logger.OnFieldSet(state, "name")

	out := buf.String()
	assert.Contains(t, out, ">>> [field_set]:")
	assert.Contains(t, out, "field: name")
	assert.Contains(t, out, "value: John Smith")
}

func TestStateLogger_OnSubmit(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStateLogger(&buf)
	state := testState(t)
	require.NoError(t, state.SetField("name", "John Smith"))
	require.NoError(t, state.SetField("email", "john@company.com"))

	logger.OnSubmit(state)

	out := buf.String()
	assert.Contains(t, out, ">>> [submit]:")
	assert.Contains(t, out, "name: John Smith")
	assert.Contains(t, out, "email: john@company.com")
}

func TestStateLogger_Hooks(t *testing.T) {
	var buf bytes.Buffer
	hooks := NewStateLogger(&buf).Hooks()

	require.NotNil(t, hooks.OnFieldSet)
	require.NotNil(t, hooks.OnSubmit)

	state := testState(t)
	require.NoError(t, state.SetField("name", "John Smith"))
	hooks.OnFieldSet(state, "name")
	hooks.OnSubmit(state)

	out := buf.String()
	assert.Contains(t, out, ">>> [field_set]:")
	assert.Contains(t, out, ">>> [submit]:")
}
