package llm

import "github.com/randalmurphal/distill/token"

// Capabilities describes the provider traits orchestrators depend on.
// A descriptor is read once when an engine is built and passed down, so
// operations never branch on provider identity at runtime.
type Capabilities struct {
	// ToleratesLargeContext reports that the provider accepts very large
	// prompts, making the direct path worth attempting even when the
	// estimate exceeds the configured budget.
	ToleratesLargeContext bool

	// DefaultBudgets applies when the caller configures no budget.
	DefaultBudgets token.Budget
}

// Default budgets by provider class.
var (
	// DefaultHostedBudgets assumes the large context window of a remote
	// hosted provider.
	DefaultHostedBudgets = token.Budget{
		MaxPromptTokens:       100000,
		MaxChunkTokens:        8000,
		ChunkSummaryMaxTokens: 600,
	}

	// DefaultLocalBudgets fits the small context windows typical of
	// locally hosted models.
	DefaultLocalBudgets = token.Budget{
		MaxPromptTokens:       3000,
		MaxChunkTokens:        1500,
		ChunkSummaryMaxTokens: 400,
	}
)
