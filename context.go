package distill

import (
	"context"
	"strings"

	"github.com/randalmurphal/distill/chunk"
	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/reduce"
	"github.com/randalmurphal/distill/speaker"
	"github.com/randalmurphal/distill/transcript"
)

// Input carries the material an operation works from. Structured turns
// take precedence; Transcript is the flat fallback for callers without
// turn boundaries.
type Input struct {
	// Turns is the turn-annotated transcript.
	Turns []transcript.Turn

	// Transcript is flat transcript text, used when Turns is empty.
	Transcript string

	// PersonalNotes is the user's own free-form notes.
	PersonalNotes string
}

// missing reports whether there is nothing to work from.
func (in Input) missing() bool {
	return len(in.Turns) == 0 &&
		strings.TrimSpace(in.Transcript) == "" &&
		strings.TrimSpace(in.PersonalNotes) == ""
}

// noteContext is the prepared transcript material one operation runs
// against: relabeled turns, the label legend, and the rendered text.
type noteContext struct {
	turns  []transcript.Turn
	legend *speaker.Legend // nil when no turn carries a speaker
	body   string          // rendered transcript without the legend
	direct string          // body prefixed with the legend description
}

// legendString returns the legend description, or "" without a legend.
func (nc noteContext) legendString() string {
	if nc.legend == nil {
		return ""
	}
	return nc.legend.String()
}

// buildContext normalizes speakers and renders the transcript once per
// operation. The legend is attached only when at least one turn still
// carries a speaker after relabeling.
func (e *Engine) buildContext(in Input) noteContext {
	var nc noteContext

	if len(in.Turns) > 0 {
		turns, legend := speaker.Normalize(in.Turns, e.profile)
		nc.turns = turns
		nc.body = transcript.Render(turns)
		if hasSpeakers(turns) {
			nc.legend = legend
		}
	} else {
		nc.body = strings.TrimSpace(in.Transcript)
	}

	nc.direct = nc.body
	if nc.legend != nil && nc.body != "" {
		nc.direct = nc.legend.String() + "\n\n" + nc.body
	}
	return nc
}

// hasSpeakers reports whether any turn carries a speaker label.
func hasSpeakers(turns []transcript.Turn) bool {
	for _, t := range turns {
		if t.Speaker != "" {
			return true
		}
	}
	return false
}

// fitsDirect reports whether a rendered prompt should be sent without
// reduction. Providers that tolerate large contexts always get the
// direct attempt first, regardless of the estimate.
func (e *Engine) fitsDirect(rendered string) bool {
	return e.caps.ToleratesLargeContext || e.estimate(rendered) <= e.budget.MaxPromptTokens
}

// generate runs the shared direct-or-chunked flow for one user-facing
// operation. render must embed the supplied context block into the
// complete prompt; the chunked path reuses it to re-render against the
// condensed context. Overflow after reduction is fatal, as is any
// non-overflow provider error.
func (e *Engine) generate(ctx context.Context, kind op.Kind, nc noteContext, render reduce.RenderFunc, ceiling int) (string, error) {
	rendered := render(nc.direct)

	if e.fitsDirect(rendered) {
		text, err := e.completeText(ctx, kind, rendered, ceiling)
		if err == nil {
			return e.orPlaceholder(kind, text), nil
		}
		if !e.overflow(err) {
			return "", err
		}
		e.log.Info("prompt overflowed provider context, reducing transcript",
			"op", string(kind))
	} else {
		e.log.Debug("prompt estimate over budget, reducing transcript",
			"op", string(kind),
			"estimate", e.estimate(rendered),
			"maxPromptTokens", e.budget.MaxPromptTokens)
	}

	block, err := e.reduceContext(ctx, nc, render)
	if err != nil {
		return "", err
	}

	text, err := e.completeText(ctx, kind, render(block), ceiling)
	if err != nil {
		return "", err
	}
	return e.orPlaceholder(kind, text), nil
}

// reduceContext runs chunking, sequential summarization, and
// condensation, returning a context block whose rendered prompt fits
// the budget. Inputs that yield no chunks cannot be reduced, so the
// budget error surfaces directly.
func (e *Engine) reduceContext(ctx context.Context, nc noteContext, render reduce.RenderFunc) (string, error) {
	cfg := chunk.Config{MaxTokens: e.budget.MaxChunkTokens, Estimate: e.estimate}
	chunks := chunk.Split(nc.turns, nc.body, cfg)
	if len(chunks) == 0 {
		return "", reduce.ErrBudgetExceeded
	}
	e.log.Debug("transcript chunked",
		"chunks", len(chunks), "maxChunkTokens", cfg.MaxTokens)

	legend := nc.legendString()

	summarizer := &reduce.Summarizer{
		Client: e.client,
		Model:  e.modelFor(op.SummarizeChunk),
		Budget: e.budget,
	}
	summaries, err := summarizer.Run(ctx, chunks, legend)
	if err != nil {
		return "", err
	}

	condenser := &reduce.Condenser{
		Client:   e.client,
		Model:    e.modelFor(op.MergeSummaries),
		Budget:   e.budget,
		Estimate: e.estimate,
	}
	return condenser.Run(ctx, summaries, legend, render)
}
