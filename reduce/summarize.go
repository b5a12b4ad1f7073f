package reduce

import (
	"context"
	"fmt"
	"strings"

	"github.com/randalmurphal/distill/chunk"
	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/prompt"
	"github.com/randalmurphal/distill/token"
)

// rawFallbackBytes bounds how much raw chunk text stands in for a
// summary the model failed to produce.
const rawFallbackBytes = 4000

// Summarizer produces one summary per chunk. Chunks are summarized
// strictly in order: each prompt embeds the previous chunk's summary,
// so the calls cannot be fanned out.
type Summarizer struct {
	Client llm.Client
	Model  string
	Budget token.Budget
}

// Run summarizes chunks in order and returns one summary per chunk.
// legend may be empty.
func (s *Summarizer) Run(ctx context.Context, chunks []chunk.Chunk, legend string) ([]string, error) {
	if len(chunks) == 0 {
		return nil, nil
	}

	summaries := make([]string, 0, len(chunks))
	previous := ""
	for i, c := range chunks {
		summary, err := s.summarize(ctx, i, len(chunks), c, legend, previous)
		if err != nil {
			return nil, fmt.Errorf("summarize segment %d of %d: %w", i+1, len(chunks), err)
		}
		summaries = append(summaries, summary)
		previous = summary
	}
	return summaries, nil
}

func (s *Summarizer) summarize(ctx context.Context, i, n int, c chunk.Chunk, legend, previous string) (string, error) {
	b := prompt.NewBuilder()
	b.Add(fmt.Sprintf("Condense segment %d of %d of a longer conversation into a compact summary.", i+1, n))
	if legend != "" {
		b.AddSection("Speaker Legend", legend)
	}
	if previous != "" {
		b.AddSection("Summary So Far", previous)
	}
	if c.PreviousTurn != "" {
		b.AddSection("Preceding Turn", c.PreviousTurn)
	}
	if len(c.Speakers) > 0 {
		b.AddList("Speakers Present", c.Speakers)
	}
	b.AddSection("Transcript Segment",
		fmt.Sprintf("Turns %d through %d.\n\n%s", c.StartTurn+1, c.EndTurn+1, c.Text))

	guidelines := []string{
		"Write markdown bullets, most important points first",
		"Tag outcomes as [Decision], commitments as [Action], and open problems as [Blocker]",
		"Keep names, dates, numbers, and amounts exactly as spoken",
	}
	if previous != "" {
		guidelines = append(guidelines, "Do not restate points the summary so far already resolves")
	}
	if c.PreviousTurn != "" {
		guidelines = append(guidelines, "The preceding turn is context only, do not summarize it")
	}
	b.AddList("Guidelines", guidelines)

	req := llm.Request{
		Model:     s.Model,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: b.Build()}},
		MaxTokens: s.Budget.ChunkSummaryMaxTokens,
	}
	res, err := llm.CompleteRetrying(ctx, s.Client, req)
	if err != nil {
		return "", err
	}
	if res.Empty() {
		// Nothing usable came back; carry raw text forward instead of
		// dropping the segment.
		return rawFallback(c.Text), nil
	}
	return strings.TrimSpace(res.Text), nil
}

// rawFallback returns the head of the raw chunk text.
func rawFallback(text string) string {
	if len(text) <= rawFallbackBytes {
		return text
	}
	return text[:rawFallbackBytes]
}
