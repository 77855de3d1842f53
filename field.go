package intake

import (
	"fmt"

	"github.com/intakekit/intake/schema"
)

// Validator is the contract for field validators: it receives the raw
// value and returns the normalized value, or an error describing the
// violated constraint. Validators must be pure, with no external state.
//
// The validators package provides factories for the common cases
// (range, length, regexp, choice, email).
type Validator func(value any) (any, error)

// Field is a single slot in a Schema: required-ness, description, an
// optional validator, and a default value.
//
// Fields are built with a chained builder and become immutable once
// registered in a Schema:
//
//	intake.NewField("email").
//	    Required().
//	    WithDescription("Work email address").
//	    WithValidator(validators.Email())
//
// A nil default is the absent sentinel. It is distinct from any legal
// value: a field defaulted to "" or 0 holds a real value and is not
// considered missing by State.Validate.
type Field struct {
	name        string
	required    bool
	description string
	typ         string
	validator   Validator
	def         any
}

// NewField creates a field with the given name. The JSON Schema type
// defaults to "string"; conversational input is text-first.
func NewField(name string) *Field {
	return &Field{name: name, typ: "string"}
}

// Required marks the field as required. Returns the field for chaining.
func (f *Field) Required() *Field {
	f.required = true
	return f
}

// WithDescription sets the human-readable description shown to the
// model in the tool catalog and system prompt.
func (f *Field) WithDescription(description string) *Field {
	f.description = description
	return f
}

// WithValidator sets the field's validator.
func (f *Field) WithValidator(v Validator) *Field {
	f.validator = v
	return f
}

// WithDefault sets the field's default value. Defaults are applied on
// construction and by State.Clear.
func (f *Field) WithDefault(value any) *Field {
	f.def = value
	return f
}

// WithType sets the JSON Schema type ("string", "integer", "number",
// "boolean") used when generating the state schema.
func (f *Field) WithType(typ string) *Field {
	f.typ = typ
	return f
}

// Name returns the field's name.
func (f *Field) Name() string { return f.name }

// IsRequired reports whether the field is required.
func (f *Field) IsRequired() bool { return f.required }

// Description returns the field's description.
func (f *Field) Description() string { return f.description }

// Default returns the field's default value (nil = absent).
func (f *Field) Default() any { return f.def }

// Type returns the field's JSON Schema type.
func (f *Field) Type() string { return f.typ }

// CrossFieldRule extends validation with rules that span multiple
// fields (e.g. conditionally-required fields). It receives a snapshot
// of the current values and returns additional missing field names,
// which State.Validate appends after the base required check.
type CrossFieldRule func(values map[string]any) []string

// Schema is a named, ordered collection of fields. It is defined once,
// shared read-only across sessions, and instantiates a fresh State per
// conversation via NewState.
type Schema struct {
	name   string
	order  []string
	fields map[string]*Field
	rules  []CrossFieldRule
}

// NewSchema creates a schema from the given fields. Field order is
// preserved; it determines the ordering of State.Validate results.
// Returns an error on duplicate or empty field names.
func NewSchema(name string, fields ...*Field) (*Schema, error) {
	s := &Schema{
		name:   name,
		order:  make([]string, 0, len(fields)),
		fields: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		if f.name == "" {
			return nil, fmt.Errorf("intake: schema %q: field with empty name", name)
		}
		if _, exists := s.fields[f.name]; exists {
			return nil, fmt.Errorf("intake: schema %q: duplicate field %q", name, f.name)
		}
		s.order = append(s.order, f.name)
		s.fields[f.name] = f
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error. Use for schemas
// defined at init time.
func MustSchema(name string, fields ...*Field) *Schema {
	s, err := NewSchema(name, fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithRule appends a cross-field rule. Rules run in registration order
// after the base required check. Returns the schema for chaining.
func (s *Schema) WithRule(rule CrossFieldRule) *Schema {
	s.rules = append(s.rules, rule)
	return s
}

// Name returns the schema's name.
func (s *Schema) Name() string { return s.name }

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Field returns the declared field and whether it exists.
func (s *Schema) Field(name string) (*Field, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// JSONSchema generates the JSON Schema object describing a complete
// state for this schema.
func (s *Schema) JSONSchema() map[string]any {
	props := make(map[string]*schema.Property, len(s.order))
	required := make([]string, 0, len(s.order))
	for _, name := range s.order {
		f := s.fields[name]
		props[name] = fieldProperty(f)
		if f.required {
			required = append(required, name)
		}
	}
	return schema.Object(props, required...)
}

func fieldProperty(f *Field) *schema.Property {
	var p *schema.Property
	switch f.typ {
	case "integer":
		p = schema.Integer(f.description)
	case "number":
		p = schema.Number(f.description)
	case "boolean":
		p = schema.Boolean(f.description)
	default:
		p = schema.String(f.description)
	}
	if f.def != nil {
		p.Default(f.def)
	}
	return p
}
