package distill

import (
	"errors"

	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/reduce"
	"github.com/randalmurphal/distill/token"
)

// Operation errors
var (
	// ErrInputMissing indicates an operation was invoked with no
	// transcript and no notes to work from. No provider call is made.
	ErrInputMissing = errors.New("no transcript or notes supplied")

	// ErrNoClient indicates an engine was constructed without a
	// provider client.
	ErrNoClient = errors.New("no provider client supplied")
)

// Subpackage sentinels re-exported so callers can match pipeline
// failures with errors.Is against this package alone.
var (
	// ErrBudgetExceeded indicates the condensed conversation still
	// exceeds the prompt budget after the single merge pass.
	ErrBudgetExceeded = reduce.ErrBudgetExceeded

	// ErrContextOverflow indicates the provider rejected a prompt as
	// exceeding its context window.
	ErrContextOverflow = llm.ErrContextOverflow

	// ErrEmptyCompletion indicates the provider returned no usable text.
	ErrEmptyCompletion = llm.ErrEmptyCompletion

	// ErrInvalidBudget indicates a configured budget field is zero or
	// negative.
	ErrInvalidBudget = token.ErrInvalidBudget
)
