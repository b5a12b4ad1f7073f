package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration keys recognized in every layer.
const (
	KeyProvider              = "provider"
	KeyModel                 = "model"
	KeyBaseURL               = "base_url"
	KeyAPIKey                = "api_key"
	KeyPrimarySpeaker        = "primary_speaker"
	KeyMaxPromptTokens       = "max_prompt_tokens"
	KeyMaxChunkTokens        = "max_chunk_tokens"
	KeyChunkSummaryMaxTokens = "chunk_summary_max_tokens"
)

// Provider values accepted for KeyProvider.
const (
	ProviderAnthropic = "anthropic"
	ProviderLocal     = "local"
)

// Standard locations.
const (
	envPrefix        = "DISTILL_"
	globalConfigDir  = "distill"
	globalConfigName = "config.yaml"
	localConfigName  = ".distill.yaml"
)

// Keys lists every recognized configuration key.
var Keys = []string{
	KeyProvider,
	KeyModel,
	KeyBaseURL,
	KeyAPIKey,
	KeyPrimarySpeaker,
	KeyMaxPromptTokens,
	KeyMaxChunkTokens,
	KeyChunkSummaryMaxTokens,
}

// Defaults returns the built-in value for every key. Empty entries defer
// to provider behavior: an unset model lets each operation pick its own,
// and unset budget keys fall back to the provider's capability defaults.
func Defaults() map[string]string {
	return map[string]string{
		KeyProvider:              ProviderAnthropic,
		KeyModel:                 "",
		KeyBaseURL:               "",
		KeyAPIKey:                "",
		KeyPrimarySpeaker:        "",
		KeyMaxPromptTokens:       "",
		KeyMaxChunkTokens:        "",
		KeyChunkSummaryMaxTokens: "",
	}
}

// EnvVar returns the environment variable that overrides key.
// For example, "api_key" maps to DISTILL_API_KEY.
func EnvVar(key string) string {
	return envPrefix + strings.ToUpper(key)
}

// Resolver handles hierarchical configuration resolution from the
// standard distill locations.
type Resolver struct {
	globalPath string
	localPath  string
	gitRoot    string

	// ErrWriter is where warnings about unusable config files are
	// written. Defaults to os.Stderr.
	ErrWriter io.Writer

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a resolver reading the standard locations: the
// global file under the user config directory and the local file at the
// enclosing git root.
func NewResolver() *Resolver {
	resolver := &Resolver{ErrWriter: os.Stderr}

	if root := findGitRoot("."); root != "" {
		resolver.gitRoot = root
		resolver.localPath = filepath.Join(root, localConfigName)
	}

	if home, err := os.UserHomeDir(); err == nil {
		resolver.globalPath = filepath.Join(home, ".config", globalConfigDir, globalConfigName)
	}

	return resolver
}

// NewResolverWithPaths creates a resolver with explicit global and local
// file paths. An empty path disables that layer. This is useful for
// testing or when paths are known ahead of time.
func NewResolverWithPaths(globalPath, localPath string) *Resolver {
	return &Resolver{
		globalPath: globalPath,
		localPath:  localPath,
		ErrWriter:  os.Stderr,
	}
}

// warn adds a warning and optionally prints it.
func (r *Resolver) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
	if r.ErrWriter != nil {
		fmt.Fprintf(r.ErrWriter, "Warning: %s\n", msg)
	}
}

// Resolved holds the final merged configuration.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all resolved configuration keys.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	return keys
}

// Resolve builds the final config by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	// 1. Apply defaults (lowest priority)
	for key, value := range Defaults() {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}

	// 2. Apply global config
	r.applyFile(cfg, r.globalPath, SourceGlobal)

	// 3. Apply local config
	r.applyFile(cfg, r.localPath, SourceLocal)

	// 4. Apply environment variables
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithOverrides resolves config and applies explicit overrides on
// top. Overrides model programmatic settings such as engine options or
// command-line flags; empty override values are ignored.
func (r *Resolver) ResolveWithOverrides(overrides map[string]string) *Resolved {
	cfg := r.Resolve()

	for key, value := range overrides {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceOverride
		}
	}

	return cfg
}

func (r *Resolver) applyFile(cfg *Resolved, path string, source Source) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return // File doesn't exist - not an error
	}

	var parsed map[string]interface{}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.warn(fmt.Sprintf("could not parse %s: %v", path, err))
		return
	}

	for key, value := range parsed {
		if !contains(Keys, key) {
			r.warn(fmt.Sprintf("%s: unknown key %q", path, key))
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = source
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	for _, key := range Keys {
		if value := os.Getenv(EnvVar(key)); value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceEnv
		}
	}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global config file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local config file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

// Helper functions

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

// findGitRoot finds the git root by looking for a .git directory.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root
		}
		dir = parent
	}

	return ""
}
