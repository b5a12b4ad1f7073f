// Package config resolves distill configuration from layered sources.
//
// Values merge with clear precedence, highest first:
//  1. Explicit overrides passed by the caller
//  2. DISTILL_* environment variables
//  3. Local config (.distill.yaml in the git root)
//  4. Global config (~/.config/distill/config.yaml)
//  5. Built-in defaults
//
// # Basic Usage
//
// Resolve the standard locations and read values:
//
//	cfg := config.NewResolver().Resolve()
//	fmt.Println(cfg.Get(config.KeyProvider))    // "anthropic"
//	fmt.Println(cfg.Source(config.KeyProvider)) // "default"
//
// Load converts the resolved map into typed Settings ready for an
// engine:
//
//	settings, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := settings.Client()
//
// # Environment Variables
//
// Each key maps to an environment variable by upper-casing it under the
// DISTILL_ prefix:
//
//	DISTILL_PROVIDER=local             # sets "provider"
//	DISTILL_API_KEY=sk-...             # sets "api_key"
//	DISTILL_MAX_PROMPT_TOKENS=4000     # sets "max_prompt_tokens"
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "global": ~/.config/distill/config.yaml
//   - "local": .distill.yaml in git root
//   - "env": Environment variable
//   - "override": Set programmatically by the caller
package config
