package config

import (
	"fmt"
	"strconv"

	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/token"
)

// Settings is the typed view of resolved configuration. Zero budget
// fields defer to the provider's capability defaults when an engine is
// built.
type Settings struct {
	// Provider selects the completion backend, ProviderAnthropic or
	// ProviderLocal. Empty means ProviderAnthropic.
	Provider string

	// Model overrides the per-operation model choice when set.
	Model string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// APIKey authenticates hosted providers.
	APIKey string

	// PrimarySpeaker labels the note owner's turns in rendered
	// transcripts.
	PrimarySpeaker string

	// Budget bounds prompt assembly and chunking.
	Budget token.Budget
}

// Load resolves the standard locations into typed settings.
func Load() (Settings, error) {
	return FromResolved(NewResolver().Resolve())
}

// LoadWithOverrides resolves the standard locations, applies overrides
// on top, and converts the result to typed settings.
func LoadWithOverrides(overrides map[string]string) (Settings, error) {
	return FromResolved(NewResolver().ResolveWithOverrides(overrides))
}

// FromResolved converts a resolved configuration into typed settings.
func FromResolved(cfg *Resolved) (Settings, error) {
	settings := Settings{
		Provider:       cfg.Get(KeyProvider),
		Model:          cfg.Get(KeyModel),
		BaseURL:        cfg.Get(KeyBaseURL),
		APIKey:         cfg.Get(KeyAPIKey),
		PrimarySpeaker: cfg.Get(KeyPrimarySpeaker),
	}

	var err error
	if settings.Budget.MaxPromptTokens, err = intValue(cfg, KeyMaxPromptTokens); err != nil {
		return Settings{}, err
	}
	if settings.Budget.MaxChunkTokens, err = intValue(cfg, KeyMaxChunkTokens); err != nil {
		return Settings{}, err
	}
	if settings.Budget.ChunkSummaryMaxTokens, err = intValue(cfg, KeyChunkSummaryMaxTokens); err != nil {
		return Settings{}, err
	}

	return settings, nil
}

// Client builds the completion client the settings describe.
func (s Settings) Client() (llm.Client, error) {
	switch s.Provider {
	case ProviderAnthropic, "":
		if s.APIKey == "" {
			return nil, fmt.Errorf("provider %s requires %s", ProviderAnthropic, KeyAPIKey)
		}
		return llm.NewAnthropic(llm.AnthropicConfig{
			APIKey:  s.APIKey,
			BaseURL: s.BaseURL,
		}), nil
	case ProviderLocal:
		return llm.NewLocal(llm.LocalConfig{
			BaseURL: s.BaseURL,
			APIKey:  s.APIKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: %s, %s)",
			s.Provider, ProviderAnthropic, ProviderLocal)
	}
}

func intValue(cfg *Resolved, key string) (int, error) {
	raw := cfg.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config key %s: %q is not an integer", key, raw)
	}
	if n < 0 {
		return 0, fmt.Errorf("config key %s: negative value %d", key, n)
	}
	return n, nil
}
