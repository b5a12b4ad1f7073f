package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// Turn is one utterance in a conversation. Speaker is empty when the
// utterance could not be attributed to anyone.
type Turn struct {
	Speaker string `json:"speaker,omitempty"`
	Text    string `json:"text"`
}

// Format renders the turn as a single prompt block. Attributed turns render
// as "[speaker]: text", speakerless turns as bare text. Turns whose text
// trims to nothing render as "".
func (t Turn) Format() string {
	text := strings.TrimSpace(t.Text)
	if text == "" {
		return ""
	}
	if t.Speaker == "" {
		return text
	}
	return fmt.Sprintf("[%s]: %s", t.Speaker, text)
}

// Render joins the non-empty formatted turns with blank lines. Empty turns
// leave no trace in the output, so rendered text never contains consecutive
// blank lines.
func Render(turns []Turn) string {
	var blocks []string
	for _, t := range turns {
		if b := t.Format(); b != "" {
			blocks = append(blocks, b)
		}
	}
	return strings.Join(blocks, "\n\n")
}

// Append adds an utterance to turns in arrival order. Text that trims to
// nothing is dropped. Consecutive utterances from the same speaker merge
// into a single turn, joined with a space. Speaker labels are trimmed;
// a blank label means the utterance is unattributed.
func Append(turns []Turn, speaker, text string) []Turn {
	text = strings.TrimSpace(text)
	if text == "" {
		return turns
	}
	speaker = strings.TrimSpace(speaker)

	if n := len(turns); n > 0 && turns[n-1].Speaker == speaker {
		turns[n-1].Text = turns[n-1].Text + " " + text
		return turns
	}
	return append(turns, Turn{Speaker: speaker, Text: text})
}

// danglingPunct matches whitespace stranded before closing punctuation, a
// common artifact of word-level speech recognition output.
var danglingPunct = regexp.MustCompile(`\s+([.,!?:;'"])`)

// CleanPunctuation removes stray spaces before punctuation marks.
func CleanPunctuation(s string) string {
	return danglingPunct.ReplaceAllString(s, "$1")
}
