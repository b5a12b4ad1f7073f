package llm

import (
	"errors"
	"strings"
)

// OverflowPredicate reports whether an error is a context-overflow
// failure. Overflow detection rests on provider message text and must be
// revisited for every new provider integration; IsContextOverflow covers
// the providers in this package.
type OverflowPredicate func(err error) bool

// overflowSignatures are lowercased fragments of known overflow messages.
// Hosted APIs mention the model's context length; llama.cpp style servers
// complain about the number of tokens to keep.
var overflowSignatures = []string{
	"context length",
	"tokens to keep",
}

// IsContextOverflow reports whether err indicates the prompt exceeded the
// provider's context window.
func IsContextOverflow(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrContextOverflow) {
		return true
	}
	return matchesOverflow(err.Error())
}

func matchesOverflow(msg string) bool {
	msg = strings.ToLower(msg)
	for _, sig := range overflowSignatures {
		if strings.Contains(msg, sig) {
			return true
		}
	}
	return false
}
