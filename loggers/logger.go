// Package loggers provides ready-made lifecycle hooks that log state
// changes as YAML.
package loggers

import (
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/intakekit/intake"
)

// StateLogger logs field mutations and submissions to a writer. Events
// are rendered as YAML for easy reading; nothing is truncated.
//
// Wire it through the agent's hook surface:
//
//	logger := loggers.NewStateLogger(os.Stdout)
//	agent, err := intake.New(intake.Config{
//	    Schema: schema,
//	    Client: client,
//	    Hooks:  logger.Hooks(),
//	})
type StateLogger struct {
	out io.Writer
}

// NewStateLogger creates a StateLogger writing to w.
func NewStateLogger(w io.Writer) *StateLogger {
	return &StateLogger{out: w}
}

// NewStdoutLogger creates a StateLogger writing to stdout.
func NewStdoutLogger() *StateLogger {
	return &StateLogger{out: os.Stdout}
}

// Hooks returns an intake.Hooks wired to this logger.
func (l *StateLogger) Hooks() intake.Hooks {
	return intake.Hooks{
		OnFieldSet: l.OnFieldSet,
		OnSubmit:   l.OnSubmit,
	}
}

// OnFieldSet logs one successful field mutation.
func (l *StateLogger) OnFieldSet(state *intake.State, field string) {
	value, _ := state.Get(field)
	l.logEvent("field_set", map[string]any{
		"field": field,
		"value": value,
	})
}

// OnSubmit logs the final state at submission.
func (l *StateLogger) OnSubmit(state *intake.State) {
	l.logEvent("submit", map[string]any{
		"state": state.Snapshot(),
	})
}

func (l *StateLogger) logEvent(name string, payload map[string]any) {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	fmt.Fprintf(l.out, "\n>>> [%s]: %s\n", name, timestamp)

	data, err := yaml.Marshal(payload)
	if err != nil {
		fmt.Fprintf(l.out, "(failed to marshal: %v)\n", err)
		return
	}
	fmt.Fprint(l.out, string(data))
}
