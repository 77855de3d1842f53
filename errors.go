package intake

import (
	"errors"
	"fmt"
)

// ErrSessionEnded is returned by RunChat when the session has already
// completed or hit its turn limit. ProcessSingleTurn never returns it;
// ended sessions answer single turns with a fixed result instead.
var ErrSessionEnded = errors.New("intake: session has ended")

// UnknownFieldError is returned when an operation names a field that is
// not declared in the schema.
//
// At the tool boundary this is converted into an ok=false result so the
// model can react conversationally; it only surfaces as an error from
// direct State method calls.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.Field)
}

// FieldError wraps a validator rejection with the field it applies to.
// Unwrap exposes the underlying validator error (typically a
// *validators.ValidationError).
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("validation failed for field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a LanguageModelClient failure. The core never
// retries; callers decide whether to retry the turn.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("language model client: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
