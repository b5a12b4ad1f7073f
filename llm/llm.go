package llm

import (
	"context"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in the conversation sent to a provider.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single completion call. MaxTokens bounds the
// completion length; Temperature and ReasoningEffort are optional and
// ignored by providers that do not support them.
type Request struct {
	Model           string
	Messages        []Message
	MaxTokens       int
	Temperature     *float64
	ReasoningEffort string
}

// StopReason classifies why a completion ended.
type StopReason string

const (
	// StopEnd means the model finished on its own.
	StopEnd StopReason = "end"

	// StopLength means the completion was cut off by the token ceiling.
	StopLength StopReason = "length"

	// StopUnknown covers reasons the provider did not classify.
	StopUnknown StopReason = "unknown"
)

// Result is the outcome of a completion call. Text may legitimately be
// empty; callers decide whether to retry or fall back.
type Result struct {
	Text       string
	StopReason StopReason
	ResponseID string
}

// Empty reports whether the completion carries no usable text.
func (r *Result) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Client is the interface operations consume. Implementations must be
// safe for concurrent use.
type Client interface {
	// Complete issues one completion call and waits for the outcome.
	Complete(ctx context.Context, req Request) (*Result, error)

	// Capabilities reports the provider traits used for orchestration.
	Capabilities() Capabilities
}

// requestID generates a fallback ID when the provider does not return one.
func requestID() string {
	id, err := nanoid.New()
	if err != nil {
		return "req_unknown"
	}
	return "req_" + id
}
