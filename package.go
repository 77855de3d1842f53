// Package intake structures multi-turn conversational data collection
// against a validated schema. A language model fills a typed state
// object incrementally through four CRUD tools until validation passes
// or the turn limit runs out.
//
// # Quick Start
//
//	schema := intake.MustSchema("contact",
//	    intake.NewField("full_name").
//	        Required().
//	        WithDescription("Customer's full name").
//	        WithValidator(validators.Length(2, 100)),
//	    intake.NewField("email").
//	        Required().
//	        WithDescription("Work email address").
//	        WithValidator(validators.Email()),
//	)
//
//	llm, _ := openai.New()
//	agent, err := intake.New(intake.Config{
//	    Schema: schema,
//	    Client: models.NewLangChainClient(llm),
//	    Hooks: intake.Hooks{
//	        OnSubmit: func(state *intake.State) {
//	            fmt.Println("collected:", state.Snapshot())
//	        },
//	    },
//	    MaxTurns: 20,
//	})
//
//	result, err := agent.ProcessSingleTurn(ctx, "Hi, I'm John Smith")
//	if result.Complete {
//	    fmt.Println(result.State)
//	}
//
// # How a Turn Works
//
// ProcessSingleTurn forwards the conversation history plus the four
// tool definitions (set_field, validate_state, get_state, clear_state)
// to the LanguageModelClient, executes the tool calls the model
// requested against the session's State, fires lifecycle hooks, and
// re-validates. When every required field is present the session
// transitions to StatusComplete and the on_submit hook fires exactly
// once; an incomplete turn counts against MaxTurns and the session
// ends in StatusTerminatedMaxTurns when the limit is reached.
//
// Field-level failures never abort a turn: a rejected value or unknown
// field name comes back to the model as an ok=false tool result with a
// readable message, so the model can ask the user to clarify. Only
// provider failures surface as errors from ProcessSingleTurn, and they
// leave the session untouched so the turn can be retried.
//
// # Sessions and Concurrency
//
// One Agent owns one session: its State, history, and turn count.
// Schemas are immutable and shared across sessions; everything else is
// per-session. The agent has no internal locking, so callers running one
// session per connection must serialize ProcessSingleTurn calls for a
// given session. The single Chat call is the only place a turn blocks;
// wrap it with your own timeout via ctx.
//
// # Subpackages
//
//   - validators: reusable field validator factories (range, length,
//     regexp, choice, email)
//   - schema: JSON Schema building and compiled argument validation
//   - models: LanguageModelClient backed by LangChainGo providers
//   - loggers: YAML logging hooks for observability
package intake
