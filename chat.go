package distill

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/prompt"
)

// ChatRequest carries a free-text question about the transcript.
type ChatRequest struct {
	Input

	// Question is the question to answer.
	Question string
}

// Chat answers a free-text question from the transcript and notes. The
// question itself is never reduced; only the transcript goes through
// the chunking pipeline when the prompt does not fit.
func (e *Engine) Chat(ctx context.Context, req ChatRequest) (string, error) {
	if strings.TrimSpace(req.Question) == "" || req.missing() {
		return "", fmt.Errorf("answer question: %w", ErrInputMissing)
	}

	tpl, err := e.loader.Load(prompt.NameChat)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}

	render := func(block string) string {
		base := tpl.Render(prompt.Data{
			Transcript:    block,
			PersonalNotes: req.PersonalNotes,
		})
		return prompt.NewBuilder().
			Add(base).
			AddSection("Question", req.Question).
			Build()
	}

	nc := e.buildContext(req.Input)
	text, err := e.generate(ctx, op.Chat, nc, render, noteCeiling)
	if err != nil {
		return "", fmt.Errorf("answer question: %w", err)
	}
	return text, nil
}
