package distill

import (
	"context"
	"strings"
	"testing"

	"github.com/randalmurphal/distill/llm"
)

func TestTitle_MissingInput(t *testing.T) {
	m := &llm.Mock{}
	eng := newTestEngine(t, m)

	if got := eng.Title(context.Background(), TitleRequest{}); got != DefaultTitle {
		t.Errorf("Title() = %q, want %q", got, DefaultTitle)
	}
	if m.Calls() != 0 {
		t.Errorf("Calls() = %d, want 0", m.Calls())
	}
}

func TestTitle_Success(t *testing.T) {
	m := &llm.Mock{}
	m.Enqueue(llm.Reply("Project Kickoff\n"))
	eng := newTestEngine(t, m)

	got := eng.Title(context.Background(), TitleRequest{
		Input: Input{Transcript: "we kicked off the project today"},
	})
	if got != "Project Kickoff" {
		t.Errorf("Title() = %q, want %q", got, "Project Kickoff")
	}
	if m.Calls() != 1 {
		t.Fatalf("Calls() = %d, want 1", m.Calls())
	}
	if m.Requests[0].MaxTokens != titleCeiling {
		t.Errorf("MaxTokens = %d, want %d", m.Requests[0].MaxTokens, titleCeiling)
	}
}

func TestTitle_ProviderErrorDefault(t *testing.T) {
	m := &llm.Mock{}
	m.Enqueue(llm.MockReply{Err: &llm.APIError{
		Provider:   "anthropic",
		StatusCode: 500,
		Message:    "overloaded",
	}})
	eng := newTestEngine(t, m)

	got := eng.Title(context.Background(), TitleRequest{
		Input: Input{Transcript: "anything"},
	})
	if got != DefaultTitle {
		t.Errorf("Title() = %q, want %q on provider error", got, DefaultTitle)
	}
}

func TestTitle_EmptyDefault(t *testing.T) {
	m := &llm.Mock{}
	m.Enqueue(llm.Reply(""))
	eng := newTestEngine(t, m)

	got := eng.Title(context.Background(), TitleRequest{
		Input: Input{Transcript: "anything"},
	})
	if got != DefaultTitle {
		t.Errorf("Title() = %q, want %q on empty completion", got, DefaultTitle)
	}
	// Empty with a normal stop reason is not retried.
	if m.Calls() != 1 {
		t.Errorf("Calls() = %d, want 1", m.Calls())
	}
}

func TestTitle_Windows(t *testing.T) {
	m := &llm.Mock{}
	m.Enqueue(llm.Reply("Long Meeting"))
	eng := newTestEngine(t, m)

	eng.Title(context.Background(), TitleRequest{
		Input: Input{
			Turns:         []Turn{{Speaker: "Alice", Text: strings.Repeat("z", 2000)}},
			PersonalNotes: strings.Repeat("j", 300),
		},
	})

	p := m.Requests[0].Messages[0].Content
	// The 500-byte transcript window leaves 494 z's after the "[S1]: " prefix.
	if got := strings.Count(p, "z"); got != 494 {
		t.Errorf("transcript window carried %d z's, want 494", got)
	}
	if got := strings.Count(p, "j"); got != 200 {
		t.Errorf("notes window carried %d j's, want 200", got)
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"already clean", "Project Kickoff", "Project Kickoff"},
		{"trailing newline", "Project Kickoff\n", "Project Kickoff"},
		{"quoted", "\"Budget Review\"", "Budget Review"},
		{"heading with period", "# Sprint Plan.", "Sprint Plan"},
		{"bold markers", "**Roadmap**", "Roadmap"},
		{"multiline keeps first", "Standup Recap\nCovers Monday's standup.", "Standup Recap"},
		{"leading blank lines", "\n\n  Quarterly Review", "Quarterly Review"},
		{"over length", strings.Repeat("x", 70), strings.Repeat("x", 60)},
		{"only decoration", "\"\"", DefaultTitle},
		{"empty", "", DefaultTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanTitle(tt.raw); got != tt.want {
				t.Errorf("cleanTitle(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
