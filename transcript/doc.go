// Package transcript models spoken conversations as ordered turns.
//
// Core types:
//   - Turn: A single utterance attributed to a speaker
//   - Record: A saved transcript with notes and metadata
//   - Store: File-based persistence for records
//
// Turns render to the bracketed prompt form used throughout the library
// ("[speaker]: text", blank-line separated) and parse back from it, so a
// flat transcript string and a turn list carry the same information.
//
// Example usage:
//
//	turns := transcript.Append(nil, "Alice", "Let's start with the budget.")
//	turns = transcript.Append(turns, "Alice", "Then the timeline.")
//	turns = transcript.Append(turns, "Bob", "Sounds good .")
//	text := transcript.CleanPunctuation(transcript.Render(turns))
package transcript
