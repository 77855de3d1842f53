package intake

import (
	"fmt"
	"io"
)

// Hooks is the fixed set of lifecycle callbacks recognized by the
// agent. Both are optional; a nil hook is a no-op. There are no other
// recognized hook points; the surface is closed rather than an open
// callback map.
//
// Hooks must not block the loop indefinitely and must not be assumed
// to run on any particular goroutine. A panicking hook is recovered,
// logged as a turn-level warning, and never aborts the turn or
// corrupts conversation state.
type Hooks struct {
	// OnFieldSet fires exactly once per successful set_field mutation,
	// after the value is stored. It does not fire on failed validation.
	OnFieldSet func(state *State, field string)

	// OnSubmit fires exactly once per session, when the session
	// transitions to StatusComplete, with the final state.
	OnSubmit func(state *State)
}

// fireFieldSet invokes the OnFieldSet hook with panic isolation.
func (h Hooks) fireFieldSet(warnw io.Writer, state *State, field string) {
	if h.OnFieldSet == nil {
		return
	}
	defer recoverHook(warnw, "on_field_set")
	h.OnFieldSet(state, field)
}

// fireSubmit invokes the OnSubmit hook with panic isolation.
func (h Hooks) fireSubmit(warnw io.Writer, state *State) {
	if h.OnSubmit == nil {
		return
	}
	defer recoverHook(warnw, "on_submit")
	h.OnSubmit(state)
}

func recoverHook(warnw io.Writer, name string) {
	if r := recover(); r != nil && warnw != nil {
		fmt.Fprintf(warnw, "intake: warning: %s hook panicked: %v\n", name, r)
	}
}
