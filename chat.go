package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// RunChat is a thin interactive driver over ProcessSingleTurn: it
// solicits input via readLine and prints replies via print until the
// session leaves StatusActive or input is exhausted (io.EOF).
//
// The session opens with one empty-input turn so the assistant can
// greet the user and explain what it needs; that turn counts against
// the limit like any other.
//
// Returns ErrSessionEnded when called on a session that has already
// left StatusActive; Reset first to start over.
func (a *Agent) RunChat(
	ctx context.Context,
	readLine func(prompt string) (string, error),
	print func(msg string),
) error {
	if a.status != StatusActive {
		return ErrSessionEnded
	}

	opening, err := a.ProcessSingleTurn(ctx, "")
	if err != nil {
		return err
	}
	printTurn(print, opening)

	for a.status == StatusActive {
		line, err := readLine("> ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		result, err := a.ProcessSingleTurn(ctx, line)
		if err != nil {
			// Provider failures are turn-level: report and let the
			// user retry the same turn.
			print(fmt.Sprintf("error: %v", err))
			continue
		}
		printTurn(print, result)

		if result.Complete {
			print("All information collected.")
			print(a.state.String())
			return nil
		}
	}

	if a.status == StatusTerminatedMaxTurns {
		print(fmt.Sprintf("Reached the maximum of %d turns.", a.maxTurns))
	}
	return nil
}

func printTurn(print func(msg string), result *TurnResult) {
	for _, r := range result.ToolResults {
		print(fmt.Sprintf("  [%s] %s", r.Name, r.JSON()))
	}
	if result.Message != "" {
		print(result.Message)
	} else if len(result.MissingFields) > 0 {
		print("Still needed: " + strings.Join(result.MissingFields, ", "))
	}
}
