package token

import (
	"errors"
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "empty",
			text: "",
			want: 0,
		},
		{
			name: "single char rounds up",
			text: "a",
			want: 1,
		},
		{
			name: "exactly four chars",
			text: "abcd",
			want: 1,
		},
		{
			name: "five chars rounds up",
			text: "abcde",
			want: 2,
		},
		{
			name: "forty chars",
			text: strings.Repeat("x", 40),
			want: 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Estimate(tt.text); got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestEstimate_RoughlyAdditive(t *testing.T) {
	a := strings.Repeat("hello ", 100)
	b := strings.Repeat("world ", 100)

	sum := Estimate(a) + Estimate(b)
	whole := Estimate(a + b)

	// Concatenation should approximate the sum of the parts.
	diff := whole - sum
	if diff < -1 || diff > 1 {
		t.Errorf("Estimate(a+b) = %d, Estimate(a)+Estimate(b) = %d; want within 1", whole, sum)
	}
}

func TestBudgetValidate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr bool
	}{
		{
			name:    "valid",
			budget:  Budget{MaxPromptTokens: 8000, MaxChunkTokens: 2000, ChunkSummaryMaxTokens: 500},
			wantErr: false,
		},
		{
			name:    "zero prompt budget",
			budget:  Budget{MaxChunkTokens: 2000, ChunkSummaryMaxTokens: 500},
			wantErr: true,
		},
		{
			name:    "negative chunk budget",
			budget:  Budget{MaxPromptTokens: 8000, MaxChunkTokens: -1, ChunkSummaryMaxTokens: 500},
			wantErr: true,
		},
		{
			name:    "zero summary budget",
			budget:  Budget{MaxPromptTokens: 8000, MaxChunkTokens: 2000},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.budget.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBudget) {
				t.Errorf("expected ErrInvalidBudget, got %v", err)
			}
		})
	}
}

func TestBudgetMerge(t *testing.T) {
	fallback := Budget{MaxPromptTokens: 8000, MaxChunkTokens: 2000, ChunkSummaryMaxTokens: 500}

	tests := []struct {
		name   string
		budget Budget
		want   Budget
	}{
		{
			name:   "zero takes all fallback values",
			budget: Budget{},
			want:   fallback,
		},
		{
			name:   "partial override keeps own values",
			budget: Budget{MaxChunkTokens: 1000},
			want:   Budget{MaxPromptTokens: 8000, MaxChunkTokens: 1000, ChunkSummaryMaxTokens: 500},
		},
		{
			name:   "full override ignores fallback",
			budget: Budget{MaxPromptTokens: 100, MaxChunkTokens: 50, ChunkSummaryMaxTokens: 25},
			want:   Budget{MaxPromptTokens: 100, MaxChunkTokens: 50, ChunkSummaryMaxTokens: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.budget.Merge(fallback); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBudgetIsZero(t *testing.T) {
	if !(Budget{}).IsZero() {
		t.Error("empty budget should be zero")
	}
	if (Budget{MaxPromptTokens: 1}).IsZero() {
		t.Error("partially set budget should not be zero")
	}
}
