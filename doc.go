// Package distill reduces long speech transcripts into model-generated
// notes, answers, and titles without overrunning a provider's context
// window.
//
// The package is organized into subpackages by domain:
//
//   - transcript: Speech turns, rendering, parsing, record storage
//   - speaker: Deterministic speaker relabeling and the label legend
//   - token: Token estimation heuristic and prompt budgets
//   - chunk: Budget-aware transcript chunking
//   - llm: Provider clients, capabilities, error taxonomy
//   - reduce: Sequential chunk summarization and summary condensation
//   - prompt: Prompt builder, template language, default templates
//   - op: Operation-to-model-tier selection
//   - config: Layered configuration and typed settings
//   - testutil: Test utilities and fixtures
//
// The root package ties the pipeline together as Engine, which exposes
// the user-facing operations: Enhance, Chat, Title, and DynamicNote.
//
// # Quick Start
//
//	import (
//	    "github.com/randalmurphal/distill"
//	    "github.com/randalmurphal/distill/llm"
//	)
//
//	// Create a provider client
//	client := llm.NewAnthropic(llm.AnthropicConfig{APIKey: key})
//
//	// Build an engine
//	eng, _ := distill.New(client)
//
//	// Enhance raw meeting notes with the transcript
//	note, _ := eng.Enhance(ctx, distill.EnhanceRequest{
//	    Input: distill.Input{Turns: turns, PersonalNotes: notes},
//	})
//
// See individual package documentation for detailed usage.
package distill
