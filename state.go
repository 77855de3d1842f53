package intake

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// State holds the runtime values for one conversation session against a
// shared Schema. Field definitions are owned by the Schema and shared
// read-only; values are instance-scoped and mutable.
//
// State is not safe for concurrent use. A session's state must only be
// advanced by one turn at a time (see Agent).
type State struct {
	schema *Schema
	values map[string]any
}

// NewState creates a fresh State with every field at its declared
// default.
func (s *Schema) NewState() *State {
	st := &State{
		schema: s,
		values: make(map[string]any, len(s.order)),
	}
	st.Clear()
	return st
}

// Schema returns the schema this state was instantiated from.
func (st *State) Schema() *Schema {
	return st.schema
}

// SetField validates and stores a value. Returns *UnknownFieldError for
// undeclared names. If the field has a validator and it rejects the
// value, the stored value is left untouched and a *FieldError wrapping
// the rejection is returned. On success the normalized value is stored.
func (st *State) SetField(name string, value any) error {
	f, ok := st.schema.fields[name]
	if !ok {
		return &UnknownFieldError{Field: name}
	}
	if f.validator != nil {
		normalized, err := f.validator(value)
		if err != nil {
			return &FieldError{Field: name, Err: err}
		}
		value = normalized
	}
	value, err := coerce(value, f.typ)
	if err != nil {
		return &FieldError{Field: name, Err: err}
	}
	st.values[name] = value
	return nil
}

// coerce converts string input to the field's declared type. Models
// frequently send every value as a string regardless of the declared
// parameter type.
func coerce(value any, typ string) (any, error) {
	s, isString := value.(string)
	if !isString {
		return value, nil
	}
	switch typ {
	case "integer":
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to integer", s)
		}
		return n, nil
	case "number":
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to number", s)
		}
		return n, nil
	case "boolean":
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1", "yes", "on":
			return true, nil
		case "false", "0", "no", "off":
			return false, nil
		default:
			return nil, fmt.Errorf("cannot convert %q to boolean", s)
		}
	default:
		return s, nil
	}
}

// Get returns the current value for the field and whether the field is
// declared.
func (st *State) Get(name string) (any, bool) {
	if _, ok := st.schema.fields[name]; !ok {
		return nil, false
	}
	return st.values[name], true
}

// FieldInfo returns the field definition and whether it exists.
func (st *State) FieldInfo(name string) (*Field, bool) {
	return st.schema.Field(name)
}

// Validate returns the names of required fields currently missing, in
// declaration order, followed by any names appended by the schema's
// cross-field rules. A field is missing when its current value equals
// its declared default (nil being the absent sentinel). An empty result
// means the state is complete.
func (st *State) Validate() []string {
	missing := make([]string, 0)
	for _, name := range st.schema.order {
		f := st.schema.fields[name]
		if f.required && st.isMissing(name) {
			missing = append(missing, name)
		}
	}
	if len(st.schema.rules) > 0 {
		snapshot := st.Snapshot()
		for _, rule := range st.schema.rules {
			missing = append(missing, rule(snapshot)...)
		}
	}
	return missing
}

func (st *State) isMissing(name string) bool {
	cur := st.values[name]
	if cur == nil {
		return true
	}
	return reflect.DeepEqual(cur, st.schema.fields[name].def)
}

// Complete reports whether Validate returns no missing fields.
func (st *State) Complete() bool {
	return len(st.Validate()) == 0
}

// Snapshot returns a point-in-time copy of all current values, defaults
// included for unset fields. The returned map is owned by the caller;
// mutating it does not affect the state.
func (st *State) Snapshot() map[string]any {
	snap := make(map[string]any, len(st.schema.order))
	for _, name := range st.schema.order {
		snap[name] = st.values[name]
	}
	return snap
}

// Clear resets every field to its declared default. The schema is
// untouched.
func (st *State) Clear() {
	for _, name := range st.schema.order {
		st.values[name] = st.schema.fields[name].def
	}
}

// String renders the state as a checklist, one line per field in
// declaration order. Required fields show a check or cross mark,
// optional fields a circle.
func (st *State) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s state:\n", st.schema.name)
	for _, name := range st.schema.order {
		f := st.schema.fields[name]
		marker := "○"
		if f.required {
			if st.isMissing(name) {
				marker = "✗"
			} else {
				marker = "✓"
			}
		}
		display := "(empty)"
		if v := st.values[name]; v != nil && v != "" {
			display = fmt.Sprint(v)
		}
		fmt.Fprintf(&sb, "  %s %s: %s\n", marker, name, display)
	}
	return strings.TrimRight(sb.String(), "\n")
}
