// Package speaker canonicalizes speaker labels across a transcript.
//
// Raw diarization labels arrive in whatever form the transcription system
// produced ("[Alice]", "you", "S2", "s2"). Normalize maps them onto a
// stable convention for prompting: the enrolled primary speaker keeps
// their profile name (or "You"), everyone else becomes S1, S2, ... in
// order of first appearance. The resulting Legend explains the convention
// to the model and answers lookups for the caller.
package speaker
