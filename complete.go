package distill

import (
	"context"
	"strings"

	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/op"
)

// Completion ceilings by operation class.
const (
	// noteCeiling bounds enhanced notes, chat answers, and dynamic
	// notes.
	noteCeiling = 4000

	// classifyCeiling bounds the topic-area classification JSON.
	classifyCeiling = 800

	// titleCeiling bounds the title line.
	titleCeiling = 100
)

// emptyPlaceholder stands in for a user-facing result when the model
// produced no text even after the truncation retry.
const emptyPlaceholder = "[The model returned no content for this request. Try again, or shorten the input.]"

// completeText issues one completion and returns its trimmed text.
// An empty completion that was cut off by the token ceiling is retried
// once with a raised ceiling; the returned text may still be empty, and
// each call site decides its own fallback.
func (e *Engine) completeText(ctx context.Context, kind op.Kind, rendered string, ceiling int) (string, error) {
	req := llm.Request{
		Model:     e.modelFor(kind),
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: rendered}},
		MaxTokens: ceiling,
	}

	res, err := llm.CompleteRetrying(ctx, e.client, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Text), nil
}

// orPlaceholder substitutes the diagnostic placeholder for an empty
// completion.
func (e *Engine) orPlaceholder(kind op.Kind, text string) string {
	if text != "" {
		return text
	}
	e.log.Warn("completion empty after retry, degrading to placeholder", "op", string(kind))
	return emptyPlaceholder
}
