package token

import (
	"errors"
	"fmt"
)

// Budget validation errors
var (
	// ErrInvalidBudget indicates a budget field is zero or negative.
	ErrInvalidBudget = errors.New("budget values must be positive")
)

// Estimator returns an estimated token count for a piece of text.
// Implementations must return a non-negative count and should be roughly
// additive: estimating a concatenation should approximate the sum of the
// parts.
type Estimator func(text string) int

// Estimate is the default length-based heuristic, assuming roughly four
// characters per token. It is intentionally crude; budgets are sized with
// headroom for it.
func Estimate(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}

// Budget bounds the estimated token cost of prompt components during a
// pipeline run. It is read-only once a run starts; callers override
// per-Engine, not mid-flight.
type Budget struct {
	// MaxPromptTokens is the ceiling for a full prompt (system + user).
	MaxPromptTokens int `json:"maxPromptTokens" yaml:"max_prompt_tokens"`

	// MaxChunkTokens is the ceiling for a single transcript chunk.
	MaxChunkTokens int `json:"maxChunkTokens" yaml:"max_chunk_tokens"`

	// ChunkSummaryMaxTokens is the completion ceiling for one chunk summary.
	ChunkSummaryMaxTokens int `json:"chunkSummaryMaxTokens" yaml:"chunk_summary_max_tokens"`
}

// Validate checks that all budget fields are positive.
func (b Budget) Validate() error {
	if b.MaxPromptTokens <= 0 {
		return fmt.Errorf("%w: maxPromptTokens=%d", ErrInvalidBudget, b.MaxPromptTokens)
	}
	if b.MaxChunkTokens <= 0 {
		return fmt.Errorf("%w: maxChunkTokens=%d", ErrInvalidBudget, b.MaxChunkTokens)
	}
	if b.ChunkSummaryMaxTokens <= 0 {
		return fmt.Errorf("%w: chunkSummaryMaxTokens=%d", ErrInvalidBudget, b.ChunkSummaryMaxTokens)
	}
	return nil
}

// IsZero reports whether the budget is entirely unset.
func (b Budget) IsZero() bool {
	return b.MaxPromptTokens == 0 && b.MaxChunkTokens == 0 && b.ChunkSummaryMaxTokens == 0
}

// Merge returns a budget where zero fields of b are filled from fallback.
func (b Budget) Merge(fallback Budget) Budget {
	if b.MaxPromptTokens == 0 {
		b.MaxPromptTokens = fallback.MaxPromptTokens
	}
	if b.MaxChunkTokens == 0 {
		b.MaxChunkTokens = fallback.MaxChunkTokens
	}
	if b.ChunkSummaryMaxTokens == 0 {
		b.ChunkSummaryMaxTokens = fallback.ChunkSummaryMaxTokens
	}
	return b
}
