// Package validators provides reusable field validator factories.
//
// Each factory takes its configuration and returns a pure validation
// closure with the signature:
//
//	func(value any) (any, error)
//
// On success the closure returns the normalized value (e.g. trimmed
// string, parsed number). On rejection it returns a *ValidationError
// describing the violated constraint. Closures never mutate external
// state, so a single validator can be shared across schemas and
// sessions.
//
// # Quick Start
//
//	schema := intake.MustSchema("contact",
//	    intake.NewField("name").
//	        Required().
//	        WithValidator(validators.Length(2, 100)),
//	    intake.NewField("email").
//	        Required().
//	        WithValidator(validators.Email()),
//	    intake.NewField("age").
//	        WithValidator(validators.Range(18, 120)),
//	)
//
// All string-accepting validators trim leading and trailing whitespace
// before checking, so incidental whitespace from conversational input
// does not cause false rejections.
package validators

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Func is the contract every validator factory produces: raw value in,
// normalized value or *ValidationError out. It is an alias so factory
// results assign directly to intake.Validator without conversion.
type Func = func(value any) (any, error)

// ValidationError is returned when a validator rejects a value.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func reject(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// asNumber converts the value to a float64, accepting numeric strings.
// Conversational input arrives as strings most of the time, so numeric
// validators must coerce before comparing.
func asNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Range creates a numeric range validator with inclusive bounds.
// String values are parsed as numbers; the normalized value is the
// parsed float64.
func Range(minVal, maxVal float64) Func {
	return func(value any) (any, error) {
		n, ok := asNumber(value)
		if !ok {
			return nil, reject("value %v is not a number", value)
		}
		if n < minVal {
			return nil, reject("value must be at least %v", minVal)
		}
		if n > maxVal {
			return nil, reject("value must be at most %v", maxVal)
		}
		return n, nil
	}
}

// Length creates a string length validator with inclusive bounds.
// Set maxLen to 0 for no upper bound. Length is measured after
// trimming; the normalized value is the trimmed string.
func Length(minLen, maxLen int) Func {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, reject("value must be a string")
		}
		s = strings.TrimSpace(s)
		if len(s) < minLen {
			return nil, reject("value must be at least %d characters in length", minLen)
		}
		if maxLen > 0 && len(s) > maxLen {
			return nil, reject("value must be at most %d characters in length", maxLen)
		}
		return s, nil
	}
}

// Regexp creates a validator that accepts strings matching pattern.
// The pattern is anchored against the full trimmed value. The message
// is used verbatim as the rejection message; pass "" for a default.
//
// Panics if the pattern does not compile. Validators are constructed
// at schema-definition time, so a bad pattern is a programmer error.
func Regexp(pattern string, message string) Func {
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	if message == "" {
		message = fmt.Sprintf("value must match pattern %s", pattern)
	}
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, reject("value must be a string")
		}
		s = strings.TrimSpace(s)
		if !re.MatchString(s) {
			return nil, &ValidationError{Message: message}
		}
		return s, nil
	}
}

// Choice creates a validator that accepts only the enumerated values.
// Comparison is exact, except that string values are trimmed first.
func Choice(choices ...any) Func {
	return func(value any) (any, error) {
		if s, ok := value.(string); ok {
			value = strings.TrimSpace(s)
		}
		for _, c := range choices {
			if value == c {
				return value, nil
			}
		}
		labels := make([]string, len(choices))
		for i, c := range choices {
			labels[i] = fmt.Sprint(c)
		}
		return nil, reject("value must be one of: %s", strings.Join(labels, ", "))
	}
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email creates a validator that accepts reasonably-formed email
// addresses. It is not a full RFC 5322 grammar; it rejects the obvious
// garbage while letting real-world addresses through.
func Email() Func {
	return func(value any) (any, error) {
		s, ok := value.(string)
		if !ok {
			return nil, reject("email must be a string")
		}
		s = strings.TrimSpace(s)
		if !emailRe.MatchString(s) {
			return nil, reject("invalid email format")
		}
		return s, nil
	}
}
