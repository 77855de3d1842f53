package intake

import (
	"fmt"
	"strings"
)

// defaultSystemPrompt generates the system prompt from the schema:
// the field catalog with required/optional markers and descriptions,
// plus guidance on how to drive the CRUD tools.
func defaultSystemPrompt(s *Schema) string {
	var fields strings.Builder
	for _, name := range s.FieldNames() {
		f, _ := s.Field(name)
		requirement := "optional"
		if f.IsRequired() {
			requirement = "required"
		}
		if f.Description() != "" {
			fmt.Fprintf(&fields, "- %s (%s): %s\n", name, requirement, f.Description())
		} else {
			fmt.Fprintf(&fields, "- %s (%s)\n", name, requirement)
		}
	}

	return fmt.Sprintf(`You are a helpful assistant that collects structured information through conversation.

Your goal is to gather the following information:
%s
You have access to these tools:
- set_field(field_name, value): Update a field with a value
- validate_state(): Check if all required fields are complete
- get_state(): View current state
- clear_state(): Reset all fields

Guidelines:
1. Be conversational and friendly
2. Ask for missing required fields one at a time
3. Use set_field to store information as you collect it
4. Use validate_state to check completeness
5. Confirm with the user before finalizing
6. Only ask for information that isn't already provided

Start by greeting the user and explaining what information you need to collect.`,
		fields.String())
}

// stateSummaryMessage renders the per-turn state context injected
// before the user's message, so the model always sees what is still
// missing without having to call get_state first.
func stateSummaryMessage(state *State) string {
	return fmt.Sprintf(
		"Current state:\n%s\n\nAfter each user message, check what information is still missing using validate_state and ask for it.",
		state.String(),
	)
}
