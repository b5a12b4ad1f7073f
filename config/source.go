package config

// Source indicates where a configuration value came from.
type Source string

// Configuration source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from the global config
	// (~/.config/distill/config.yaml).
	SourceGlobal Source = "global"

	// SourceLocal indicates the value came from the local config
	// (.distill.yaml in the git root).
	SourceLocal Source = "local"

	// SourceEnv indicates the value came from a DISTILL_* environment
	// variable.
	SourceEnv Source = "env"

	// SourceOverride indicates the value was set programmatically by
	// the caller.
	SourceOverride Source = "override"
)
