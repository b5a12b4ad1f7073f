package reduce

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/token"
)

func identityRender(s string) string { return s }

func TestJoin(t *testing.T) {
	got := Join([]string{"alpha", "beta"}, "L-legend")
	want := segmentedLead + "\n\nL-legend\n\n### Segment 1\n\nalpha\n\n### Segment 2\n\nbeta"
	if got != want {
		t.Errorf("Join =\n%q\nwant\n%q", got, want)
	}

	// Without a legend the lead runs straight into the segments.
	got = Join([]string{"alpha"}, "")
	want = segmentedLead + "\n\n### Segment 1\n\nalpha"
	if got != want {
		t.Errorf("Join without legend =\n%q\nwant\n%q", got, want)
	}
}

func TestWrapBrief(t *testing.T) {
	got := wrapBrief("the brief", "L")
	want := mergedLead + "\n\nL\n\nthe brief"
	if got != want {
		t.Errorf("wrapBrief = %q, want %q", got, want)
	}
}

func TestCondenser_FitsWithoutCalls(t *testing.T) {
	mock := &llm.Mock{}
	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 100000, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	summaries := []string{"first summary", "second summary"}
	got, err := c.Run(context.Background(), summaries, "the legend", identityRender)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if mock.Calls() != 0 {
		t.Fatalf("Calls = %d, want 0 (fitting summaries cost nothing)", mock.Calls())
	}
	if got != Join(summaries, "the legend") {
		t.Errorf("block = %q, want the plain join unchanged", got)
	}
}

func TestCondenser_SingleMergeCall(t *testing.T) {
	mock := &llm.Mock{}
	mock.Enqueue(llm.Reply("brief"))

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 60, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	summaries := []string{strings.Repeat("a", 300), strings.Repeat("b", 300)}
	got, err := c.Run(context.Background(), summaries, "", identityRender)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if mock.Calls() != 1 {
		t.Fatalf("Calls = %d, want exactly 1 merge call", mock.Calls())
	}
	if got != wrapBrief("brief", "") {
		t.Errorf("block = %q, want the wrapped merged brief", got)
	}

	mergePrompt := mock.Requests[0].Messages[0].Content
	for _, want := range []string{"non-redundant", "## Segment 1", "## Segment 2", "[Decision]"} {
		if !strings.Contains(mergePrompt, want) {
			t.Errorf("merge prompt missing %q:\n%s", want, mergePrompt)
		}
	}
	if mock.Requests[0].MaxTokens != 150 {
		t.Errorf("merge MaxTokens = %d, want the summary ceiling", mock.Requests[0].MaxTokens)
	}
}

func TestCondenser_TerminalBudgetExceeded(t *testing.T) {
	mock := &llm.Mock{}
	mock.Enqueue(llm.Reply("a merged brief that is still far too long for this budget"))

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 5, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	_, err := c.Run(context.Background(), []string{"one", "two"}, "", identityRender)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
	if mock.Calls() != 1 {
		t.Errorf("Calls = %d, want 1 (never a second merge)", mock.Calls())
	}
}

func TestCondenser_MergeExhaustionTerminal(t *testing.T) {
	mock := &llm.Mock{}
	mock.Enqueue(
		llm.MockReply{Result: &llm.Result{Text: "", StopReason: llm.StopLength}},
		llm.MockReply{Result: &llm.Result{Text: "", StopReason: llm.StopLength}},
	)

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 5, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	_, err := c.Run(context.Background(), []string{"one", "two"}, "", identityRender)
	if !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("err = %v, want ErrEmptyCompletion (no raw text to fall back on)", err)
	}
	if mock.Calls() != 2 {
		t.Errorf("Calls = %d, want 2 (the merge call and its one retry)", mock.Calls())
	}
}

func TestCondenser_MergeErrorWrapped(t *testing.T) {
	boom := errors.New("boom")
	mock := &llm.Mock{}
	mock.Enqueue(llm.MockReply{Err: boom})

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 5, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	_, err := c.Run(context.Background(), []string{"one"}, "", identityRender)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped boom", err)
	}
	if !strings.Contains(err.Error(), "merge summaries") {
		t.Errorf("err should name the merge step: %v", err)
	}
}

func TestCondenser_BudgetMeasuredOnRenderedPrompt(t *testing.T) {
	mock := &llm.Mock{}
	mock.Enqueue(llm.Reply("tiny"))

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 100, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
	}

	// The block alone would fit; the surrounding prompt pushes it over.
	heavyRender := func(s string) string {
		return strings.Repeat("p", 2000) + s
	}

	_, err := c.Run(context.Background(), []string{"a", "b"}, "", heavyRender)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("err = %v, want ErrBudgetExceeded", err)
	}
	if mock.Calls() != 1 {
		t.Errorf("Calls = %d, want 1", mock.Calls())
	}
}

func TestCondenser_CustomEstimator(t *testing.T) {
	mock := &llm.Mock{}
	mock.Enqueue(llm.Reply("merged"))

	c := &Condenser{
		Client: mock,
		Model:  "test-model",
		Budget: token.Budget{MaxPromptTokens: 100, MaxChunkTokens: 300, ChunkSummaryMaxTokens: 150},
		// Inflate anything still carrying segment headers.
		Estimate: func(s string) int {
			if strings.Contains(s, "### Segment") {
				return 1000
			}
			return 1
		},
	}

	got, err := c.Run(context.Background(), []string{"a", "b"}, "", identityRender)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got != wrapBrief("merged", "") {
		t.Errorf("block = %q, want the merged brief", got)
	}
	if mock.Calls() != 1 {
		t.Errorf("Calls = %d, want 1", mock.Calls())
	}
}
