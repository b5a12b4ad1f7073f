// Package chunk splits transcripts into budget-bounded segments.
//
// Two strategies share the same accumulation rule: Turns walks structured
// turns and Words falls back to whitespace-delimited words when no turns
// exist. Split picks between them. Chunks are gap-free and order
// preserving, so concatenating chunk texts in order reconstructs the
// transcript, and every chunk stays within the configured token budget
// except when a single turn or word alone exceeds it.
package chunk
