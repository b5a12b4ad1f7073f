package distill

import (
	"context"
	"fmt"

	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/prompt"
)

// EnhanceRequest carries the inputs for Enhance.
type EnhanceRequest struct {
	Input

	// Template optionally replaces the default enhance template. It is
	// written in the prompt package's template language.
	Template string
}

// Enhance rewrites the user's notes into a structured markdown note
// grounded in the transcript. Transcripts that do not fit the prompt
// budget are reduced through the chunking pipeline first.
func (e *Engine) Enhance(ctx context.Context, req EnhanceRequest) (string, error) {
	if req.missing() {
		return "", fmt.Errorf("enhance note: %w", ErrInputMissing)
	}

	tpl, err := e.enhanceTemplate(req.Template)
	if err != nil {
		return "", fmt.Errorf("enhance note: %w", err)
	}

	render := func(block string) string {
		return tpl.Render(prompt.Data{
			Transcript:    block,
			PersonalNotes: req.PersonalNotes,
		})
	}

	nc := e.buildContext(req.Input)
	text, err := e.generate(ctx, op.Enhance, nc, render, noteCeiling)
	if err != nil {
		return "", fmt.Errorf("enhance note: %w", err)
	}
	return text, nil
}

// enhanceTemplate parses the caller's override or loads the default.
func (e *Engine) enhanceTemplate(override string) (*prompt.Template, error) {
	if override != "" {
		return prompt.Parse(override)
	}
	return e.loader.Load(prompt.NameEnhance)
}
