// Package llm defines the completion-provider boundary.
//
// Core types:
//   - Client: consumer-side interface for one-shot completions
//   - Request / Result: a completion call and its outcome
//   - Capabilities: provider traits that drive orchestration decisions
//   - Anthropic: hosted Messages API client
//   - Local: OpenAI-compatible client for locally hosted servers
//   - Mock: scripted client for tests
//
// Context-overflow detection is inherently provider-coupled. The known
// message signatures live behind IsContextOverflow, and callers wiring a
// provider this package does not know can inject their own
// OverflowPredicate instead.
package llm
