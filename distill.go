package distill

import (
	"log/slog"

	"github.com/randalmurphal/llmkit/model"

	"github.com/randalmurphal/distill/config"
	"github.com/randalmurphal/distill/llm"
	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/prompt"
	"github.com/randalmurphal/distill/speaker"
	"github.com/randalmurphal/distill/token"
	"github.com/randalmurphal/distill/transcript"
)

// Aliases fronting the subpackage types most callers touch.
type (
	// Turn is one transcript entry.
	Turn = transcript.Turn

	// Profile identifies the primary speaker.
	Profile = speaker.Profile

	// Budget bounds prompt assembly and chunking.
	Budget = token.Budget
)

// Engine runs the reduction pipeline against one provider client.
// Construction resolves provider capabilities, budgets, and model
// selection once; a built Engine is immutable and safe for concurrent
// use.
type Engine struct {
	client   llm.Client
	caps     llm.Capabilities
	budget   token.Budget
	estimate token.Estimator
	overflow llm.OverflowPredicate
	profile  speaker.Profile
	selector *model.Selector
	loader   *prompt.Loader
	log      *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithBudget overrides the provider default budgets. Zero fields keep
// the provider default.
func WithBudget(b Budget) Option {
	return func(e *Engine) { e.budget = b }
}

// WithProfile sets the primary speaker profile used when relabeling
// transcript speakers.
func WithProfile(p Profile) Option {
	return func(e *Engine) { e.profile = p }
}

// WithModel forces one model for every operation, overriding the
// per-operation tier mapping.
func WithModel(name string) Option {
	return func(e *Engine) {
		e.selector = op.NewSelector(model.WithGlobalOverride(model.ModelName(name)))
	}
}

// WithEstimator replaces the default token estimator.
func WithEstimator(fn token.Estimator) Option {
	return func(e *Engine) { e.estimate = fn }
}

// WithOverflowPredicate replaces the default context-overflow
// detection. The predicate is inherently provider-coupled; supply one
// when integrating a provider whose overflow messages the default does
// not recognize.
func WithOverflowPredicate(fn llm.OverflowPredicate) Option {
	return func(e *Engine) { e.overflow = fn }
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithPromptDirs sets directories searched for prompt template
// overrides before the embedded defaults.
func WithPromptDirs(dirs ...string) Option {
	return func(e *Engine) { e.loader = prompt.NewLoader(dirs...) }
}

// New builds an Engine around a provider client. The configured budget
// is merged over the provider's defaults and validated.
func New(client llm.Client, opts ...Option) (*Engine, error) {
	if client == nil {
		return nil, ErrNoClient
	}

	e := &Engine{
		client: client,
		caps:   client.Capabilities(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.budget = e.budget.Merge(e.caps.DefaultBudgets)
	if err := e.budget.Validate(); err != nil {
		return nil, err
	}
	if e.estimate == nil {
		e.estimate = token.Estimate
	}
	if e.overflow == nil {
		e.overflow = llm.IsContextOverflow
	}
	if e.selector == nil {
		e.selector = op.NewSelector()
	}
	if e.loader == nil {
		e.loader = prompt.NewLoader()
	}
	if e.log == nil {
		e.log = slog.Default()
	}

	return e, nil
}

// NewFromSettings builds an Engine from resolved configuration: the
// provider client, budget, primary speaker, and model override all come
// from settings. Options are applied after the settings, so they win.
func NewFromSettings(settings config.Settings, opts ...Option) (*Engine, error) {
	client, err := settings.Client()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithBudget(settings.Budget),
		WithProfile(speaker.Profile{Name: settings.PrimarySpeaker}),
	}
	if settings.Model != "" {
		base = append(base, WithModel(settings.Model))
	}

	return New(client, append(base, opts...)...)
}

// Budget returns the effective budget after provider defaults were
// merged in.
func (e *Engine) Budget() Budget {
	return e.budget
}

// modelFor resolves the model for one operation kind.
func (e *Engine) modelFor(k op.Kind) string {
	return string(e.selector.Select(k))
}
