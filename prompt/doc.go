// Package prompt assembles the text sent to completion providers.
//
// Core types:
//   - Builder: programmatic prompt construction from markdown sections
//   - Template: user-editable template with conditional blocks and
//     transcript/notes placeholders, parsed into a small AST
//   - Loader: named templates resolved from override directories with
//     embedded defaults as fallback
//
// Templates support {{#if hasTranscript}} and {{#if hasPersonalNotes}}
// blocks plus {{transcript}} and {{personalNotes}} placeholders. The
// flags derive from which inputs are present, so one template serves
// transcript-only, notes-only, and combined invocations.
package prompt
