package intake

import (
	"fmt"
	"io"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/intakekit/intake/validators"
)

// schemaFile is the YAML shape accepted by LoadSchema.
type schemaFile struct {
	Name   string      `yaml:"name"`
	Fields []fieldFile `yaml:"fields"`
}

type fieldFile struct {
	Name        string         `yaml:"name"`
	Type        string         `yaml:"type"`
	Required    bool           `yaml:"required"`
	Description string         `yaml:"description"`
	Default     any            `yaml:"default"`
	Validator   *validatorFile `yaml:"validator"`
}

type validatorFile struct {
	Kind    string  `yaml:"kind"`
	Min     float64 `yaml:"min"`
	Max     float64 `yaml:"max"`
	Pattern string  `yaml:"pattern"`
	Message string  `yaml:"message"`
	Choices []any   `yaml:"choices"`
}

// LoadSchema builds a Schema from a declarative YAML definition:
//
//	name: contact
//	fields:
//	  - name: full_name
//	    required: true
//	    description: Customer's full name
//	    validator:
//	      kind: length
//	      min: 2
//	      max: 100
//	  - name: email
//	    required: true
//	    validator:
//	      kind: email
//	  - name: plan
//	    validator:
//	      kind: choice
//	      choices: [basic, pro, enterprise]
//
// Validator kinds map onto the validators package factories: range,
// length, regexp, choice, email. Cross-field rules have no declarative
// form; attach them in code with Schema.WithRule.
func LoadSchema(r io.Reader) (*Schema, error) {
	var file schemaFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("intake: failed to parse schema file: %w", err)
	}
	if file.Name == "" {
		return nil, fmt.Errorf("intake: schema file is missing a name")
	}
	if len(file.Fields) == 0 {
		return nil, fmt.Errorf("intake: schema %q declares no fields", file.Name)
	}

	fields := make([]*Field, 0, len(file.Fields))
	for _, ff := range file.Fields {
		f := NewField(ff.Name).WithDescription(ff.Description)
		if ff.Type != "" {
			f.WithType(ff.Type)
		}
		if ff.Required {
			f.Required()
		}
		if ff.Default != nil {
			f.WithDefault(ff.Default)
		}
		if ff.Validator != nil {
			v, err := buildValidator(ff.Validator)
			if err != nil {
				return nil, fmt.Errorf("intake: field %q: %w", ff.Name, err)
			}
			f.WithValidator(v)
		}
		fields = append(fields, f)
	}

	return NewSchema(file.Name, fields...)
}

func buildValidator(vf *validatorFile) (Validator, error) {
	switch vf.Kind {
	case "range":
		return validators.Range(vf.Min, vf.Max), nil
	case "length":
		return validators.Length(int(vf.Min), int(vf.Max)), nil
	case "regexp":
		if vf.Pattern == "" {
			return nil, fmt.Errorf("regexp validator requires a pattern")
		}
		// Compile-check here: validators.Regexp panics on a bad
		// pattern, which is the wrong failure mode for config input.
		if _, err := regexp.Compile(vf.Pattern); err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
		return validators.Regexp(vf.Pattern, vf.Message), nil
	case "choice":
		if len(vf.Choices) == 0 {
			return nil, fmt.Errorf("choice validator requires choices")
		}
		return validators.Choice(vf.Choices...), nil
	case "email":
		return validators.Email(), nil
	default:
		return nil, fmt.Errorf("unknown validator kind %q", vf.Kind)
	}
}
