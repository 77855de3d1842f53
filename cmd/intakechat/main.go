// Command intakechat is an interactive CLI for running a structured
// data collection session against a real model.
//
// Usage:
//
//	export OPENAI_API_KEY=...
//	intakechat [-model gpt-4o-mini] [-schema schema.yaml]
//
// Without -schema it runs a built-in contact intake schema.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/intakekit/intake"
	"github.com/intakekit/intake/loggers"
	"github.com/intakekit/intake/models"
	"github.com/intakekit/intake/validators"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGreen = "\033[32m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	modelName := flag.String("model", "gpt-4o-mini", "model to use")
	schemaPath := flag.String("schema", "", "YAML schema file (default: built-in contact schema)")
	flag.Parse()

	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	schema, err := loadSchema(*schemaPath)
	if err != nil {
		return err
	}

	llm, err := openai.New(openai.WithModel(*modelName))
	if err != nil {
		return fmt.Errorf("failed to create model: %w", err)
	}

	agent, err := intake.New(intake.Config{
		Schema: schema,
		Client: models.NewLangChainClient(llm),
		Hooks:  loggers.NewStateLogger(os.Stderr).Hooks(),
	})
	if err != nil {
		return err
	}

	rl, err := readline.New(colorCyan + "you> " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	fmt.Printf("%sCollecting %q (Ctrl+D to quit)%s\n\n", colorDim, schema.Name(), colorReset)

	readFn := func(prompt string) (string, error) {
		rl.SetPrompt(colorCyan + prompt + colorReset)
		return rl.Readline()
	}
	printFn := func(msg string) {
		if strings.HasPrefix(msg, "  [") {
			fmt.Println(colorDim + msg + colorReset)
			return
		}
		fmt.Println(colorGreen + msg + colorReset)
	}

	return agent.RunChat(ctx, readFn, printFn)
}

func loadSchema(path string) (*intake.Schema, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open schema file: %w", err)
		}
		defer f.Close()
		return intake.LoadSchema(f)
	}

	return intake.NewSchema("contact",
		intake.NewField("full_name").
			Required().
			WithDescription("Customer's full name").
			WithValidator(validators.Length(2, 100)),
		intake.NewField("email").
			Required().
			WithDescription("Work email address").
			WithValidator(validators.Email()),
		intake.NewField("company").
			WithDescription("Company name"),
		intake.NewField("team_size").
			WithType("integer").
			WithDescription("Size of the customer's team").
			WithValidator(validators.Range(1, 100000)),
	)
}
