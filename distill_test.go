package distill

import (
	"context"
	"errors"
	"testing"

	"github.com/randalmurphal/llmkit/model"

	"github.com/randalmurphal/distill/config"
	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/token"
)

// testBudget is roomy enough that small inputs take the direct path.
var testBudget = token.Budget{
	MaxPromptTokens:       10000,
	MaxChunkTokens:        1000,
	ChunkSummaryMaxTokens: 200,
}

// newTestEngine builds an engine around a mock with the test budget.
func newTestEngine(t *testing.T, m *llm.Mock, opts ...Option) *Engine {
	t.Helper()
	if m.Caps.DefaultBudgets.IsZero() {
		m.Caps.DefaultBudgets = testBudget
	}
	eng, err := New(m, opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return eng
}

func TestNew_NilClient(t *testing.T) {
	_, err := New(nil)
	if !errors.Is(err, ErrNoClient) {
		t.Errorf("New(nil) error = %v, want ErrNoClient", err)
	}
}

func TestNew_NoBudget(t *testing.T) {
	// Zero provider defaults and no override leave nothing valid.
	_, err := New(&llm.Mock{})
	if !errors.Is(err, ErrInvalidBudget) {
		t.Errorf("New() error = %v, want ErrInvalidBudget", err)
	}
}

func TestNew_BudgetMergesProviderDefaults(t *testing.T) {
	m := &llm.Mock{Caps: llm.Capabilities{DefaultBudgets: llm.DefaultHostedBudgets}}
	eng, err := New(m, WithBudget(token.Budget{MaxPromptTokens: 5000}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got := eng.Budget()
	want := token.Budget{
		MaxPromptTokens:       5000,
		MaxChunkTokens:        llm.DefaultHostedBudgets.MaxChunkTokens,
		ChunkSummaryMaxTokens: llm.DefaultHostedBudgets.ChunkSummaryMaxTokens,
	}
	if got != want {
		t.Errorf("Budget() = %+v, want %+v", got, want)
	}
}

func TestWithModel_OverridesEveryOperation(t *testing.T) {
	m := &llm.Mock{}
	eng := newTestEngine(t, m, WithModel("custom-model"))

	eng.Title(context.Background(), TitleRequest{Input: Input{Transcript: "short"}})
	if _, err := eng.Enhance(context.Background(), EnhanceRequest{Input: Input{PersonalNotes: "n"}}); err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}

	for i, req := range m.Requests {
		if req.Model != "custom-model" {
			t.Errorf("request %d model = %q, want custom-model", i, req.Model)
		}
	}
}

func TestDefaultModels_FollowOperationTier(t *testing.T) {
	m := &llm.Mock{}
	eng := newTestEngine(t, m)

	eng.Title(context.Background(), TitleRequest{Input: Input{Transcript: "short"}})
	if _, err := eng.Enhance(context.Background(), EnhanceRequest{Input: Input{Transcript: "short"}}); err != nil {
		t.Fatalf("Enhance() error = %v", err)
	}

	if got := m.Requests[0].Model; got != string(model.ModelHaiku) {
		t.Errorf("title model = %q, want %q", got, model.ModelHaiku)
	}
	if got := m.Requests[1].Model; got != string(model.ModelSonnet) {
		t.Errorf("enhance model = %q, want %q", got, model.ModelSonnet)
	}
}

func TestNewFromSettings(t *testing.T) {
	t.Run("local provider", func(t *testing.T) {
		eng, err := NewFromSettings(config.Settings{
			Provider: config.ProviderLocal,
			BaseURL:  "http://localhost:1234/v1",
		})
		if err != nil {
			t.Fatalf("NewFromSettings() error = %v", err)
		}
		if got := eng.Budget(); got != llm.DefaultLocalBudgets {
			t.Errorf("Budget() = %+v, want local defaults %+v", got, llm.DefaultLocalBudgets)
		}
	})

	t.Run("anthropic requires api key", func(t *testing.T) {
		_, err := NewFromSettings(config.Settings{Provider: config.ProviderAnthropic})
		if err == nil {
			t.Fatal("NewFromSettings() expected error for missing api key")
		}
	})

	t.Run("budget from settings wins over provider defaults", func(t *testing.T) {
		eng, err := NewFromSettings(config.Settings{
			Provider: config.ProviderLocal,
			Budget:   token.Budget{MaxPromptTokens: 2222},
		})
		if err != nil {
			t.Fatalf("NewFromSettings() error = %v", err)
		}
		if got := eng.Budget().MaxPromptTokens; got != 2222 {
			t.Errorf("MaxPromptTokens = %d, want 2222", got)
		}
		if got := eng.Budget().MaxChunkTokens; got != llm.DefaultLocalBudgets.MaxChunkTokens {
			t.Errorf("MaxChunkTokens = %d, want local default %d", got, llm.DefaultLocalBudgets.MaxChunkTokens)
		}
	})
}
