// Package op maps reduction pipeline operations to models.
//
// Core types:
//   - Kind: kind of completion operation (enhance, chat, chunk summary, ...)
//   - ModelFor / TierFor: default model and tier per kind
//
// User-facing note generation runs on the default tier; interior
// pipeline calls (chunk summaries, merges, classification, titles) run
// on the fast tier.
package op
