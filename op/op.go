package op

import (
	"github.com/randalmurphal/llmkit/model"
)

// Kind identifies a completion operation in the reduction pipeline.
// This determines which model tier is appropriate.
type Kind string

const (
	// User-facing note generation - default tier
	Enhance     Kind = "enhance"
	Chat        Kind = "chat"
	DynamicNote Kind = "dynamic_note"

	// Pipeline interior - fast tier
	SummarizeChunk Kind = "summarize_chunk"
	MergeSummaries Kind = "merge_summaries"
	ClassifyAreas  Kind = "classify_areas"
	Title          Kind = "title"
)

// DefaultModelMap maps operation kinds to default models.
var DefaultModelMap = map[Kind]model.ModelName{
	Enhance:        model.ModelSonnet,
	Chat:           model.ModelSonnet,
	DynamicNote:    model.ModelSonnet,
	SummarizeChunk: model.ModelHaiku,
	MergeSummaries: model.ModelHaiku,
	ClassifyAreas:  model.ModelHaiku,
	Title:          model.ModelHaiku,
}

// TierFor returns the appropriate tier for an operation kind.
func TierFor(k Kind) model.Tier {
	switch k {
	case SummarizeChunk, MergeSummaries, ClassifyAreas, Title:
		return model.TierFast
	default:
		return model.TierDefault
	}
}

// NewSelector creates a model selector configured for reduction
// operations. It uses the standard kind-to-tier mapping.
func NewSelector(opts ...model.SelectorOption) *model.Selector {
	// Prepend the tier function so overrides can still win
	allOpts := append([]model.SelectorOption{
		model.WithTierFunc(func(operation any) model.Tier {
			if k, ok := operation.(Kind); ok {
				return TierFor(k)
			}
			return model.TierDefault
		}),
	}, opts...)

	return model.NewSelector(allOpts...)
}

// ModelFor selects the appropriate model for an operation kind.
// Uses the default model map unless overridden.
func ModelFor(k Kind) model.ModelName {
	if m, ok := DefaultModelMap[k]; ok {
		return m
	}
	// Fall back to tier-based selection
	switch TierFor(k) {
	case model.TierThinking:
		return model.ModelOpus
	case model.TierFast:
		return model.ModelHaiku
	default:
		return model.ModelSonnet
	}
}
