package reduce

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/prompt"
	"github.com/randalmurphal/distill/token"
)

// ErrBudgetExceeded means the summaries still overflow the prompt
// budget after the one-shot merge. There is no further reduction.
var ErrBudgetExceeded = errors.New("condensed summaries exceed the prompt budget")

// segmentedLead explains to the model why it sees summaries instead of
// the raw conversation.
const segmentedLead = "The conversation was too long to process at once, " +
	"so it was summarized in consecutive segments. Each segment below covers " +
	"a span of the conversation, in order."

// mergedLead is the variant used once the segments have been merged
// into a single brief.
const mergedLead = "The conversation was too long to process at once. " +
	"The following is a condensed brief of the whole conversation."

// RenderFunc produces the final prompt text for a candidate context
// block. It must return everything that will be sent, any system
// preamble included, because the budget is checked against its output.
type RenderFunc func(context string) string

// Condenser fits segment summaries into the prompt budget. The cheap
// path is a plain join; the expensive path is exactly one merge call.
type Condenser struct {
	Client llm.Client
	Model  string
	Budget token.Budget

	// Estimate defaults to token.Estimate when nil.
	Estimate token.Estimator
}

// Run returns a context block whose rendered prompt fits
// MaxPromptTokens. When even the merged brief does not fit, it returns
// ErrBudgetExceeded without issuing a third call.
func (c *Condenser) Run(ctx context.Context, summaries []string, legend string, render RenderFunc) (string, error) {
	block := Join(summaries, legend)
	if c.fits(render(block)) {
		return block, nil
	}

	brief, err := c.merge(ctx, summaries, legend)
	if err != nil {
		return "", err
	}

	block = wrapBrief(brief, legend)
	if c.fits(render(block)) {
		return block, nil
	}
	return "", ErrBudgetExceeded
}

// Join assembles the segmented context block: lead paragraph, legend
// when present, then one numbered section per summary.
func Join(summaries []string, legend string) string {
	var sb strings.Builder
	sb.WriteString(segmentedLead)
	if legend != "" {
		sb.WriteString("\n\n")
		sb.WriteString(legend)
	}
	for i, summary := range summaries {
		fmt.Fprintf(&sb, "\n\n### Segment %d\n\n%s", i+1, summary)
	}
	return sb.String()
}

// wrapBrief dresses the merged brief the same way Join dresses the
// segment list.
func wrapBrief(brief, legend string) string {
	var sb strings.Builder
	sb.WriteString(mergedLead)
	if legend != "" {
		sb.WriteString("\n\n")
		sb.WriteString(legend)
	}
	sb.WriteString("\n\n")
	sb.WriteString(brief)
	return sb.String()
}

// merge issues the single lossy merge call.
func (c *Condenser) merge(ctx context.Context, summaries []string, legend string) (string, error) {
	b := prompt.NewBuilder()
	b.Add("Merge the segment summaries below into a single non-redundant brief.")
	if legend != "" {
		b.AddSection("Speaker Legend", legend)
	}
	for i, summary := range summaries {
		b.AddSection(fmt.Sprintf("Segment %d", i+1), summary)
	}
	b.AddList("Guidelines", []string{
		"Keep every [Decision], [Action], and [Blocker] item",
		"Drop repetition between segments but keep the order of events",
		"Prefer cutting small talk over cutting specifics",
	})

	req := llm.Request{
		Model:     c.Model,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.Build()}},
		MaxTokens: c.Budget.ChunkSummaryMaxTokens,
	}
	res, err := llm.CompleteRetrying(ctx, c.Client, req)
	if err != nil {
		return "", fmt.Errorf("merge summaries: %w", err)
	}
	if res.Empty() {
		// Unlike chunk summaries there is no raw text to fall back on.
		return "", fmt.Errorf("merge summaries: %w", llm.ErrEmptyCompletion)
	}
	return strings.TrimSpace(res.Text), nil
}

func (c *Condenser) fits(rendered string) bool {
	estimate := c.Estimate
	if estimate == nil {
		estimate = token.Estimate
	}
	return estimate(rendered) <= c.Budget.MaxPromptTokens
}
