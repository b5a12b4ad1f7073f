package chunk

import (
	"strings"

	"github.com/randalmurphal/distill/token"
	"github.com/randalmurphal/distill/transcript"
)

// Chunk is a contiguous budget-bounded slice of a transcript. StartTurn
// and EndTurn are inclusive turn indices for turn-based chunks and the
// chunk position for word-based ones. PreviousTurn carries the formatted
// turn immediately preceding the chunk for continuity; it is empty for
// the first chunk and never counts against the budget.
type Chunk struct {
	Text         string   `json:"text"`
	Speakers     []string `json:"speakers,omitempty"`
	StartTurn    int      `json:"startTurn"`
	EndTurn      int      `json:"endTurn"`
	PreviousTurn string   `json:"previousTurn,omitempty"`
}

// Config controls chunking. A nil Estimate falls back to token.Estimate.
type Config struct {
	MaxTokens int
	Estimate  token.Estimator
}

func (c Config) estimator() token.Estimator {
	if c.Estimate != nil {
		return c.Estimate
	}
	return token.Estimate
}

// Turns splits structured turns into chunks. Turns whose formatted text is
// empty are skipped. A running chunk closes only when adding the next turn
// would push it past MaxTokens and it already has content, so a single
// turn larger than the budget still becomes a one-turn chunk rather than
// being dropped.
func Turns(turns []transcript.Turn, cfg Config) []Chunk {
	est := cfg.estimator()

	var (
		chunks   []Chunk
		blocks   []string
		speakers []string
		start    int
		end      int
		running  int
		prev     string
		lastSeen string
	)

	flush := func() {
		if len(blocks) == 0 {
			return
		}
		chunks = append(chunks, Chunk{
			Text:         strings.Join(blocks, "\n\n"),
			Speakers:     speakers,
			StartTurn:    start,
			EndTurn:      end,
			PreviousTurn: prev,
		})
		blocks = nil
		speakers = nil
		running = 0
	}

	for i, t := range turns {
		formatted := t.Format()
		if formatted == "" {
			continue
		}
		cost := est(formatted)

		if len(blocks) > 0 && running+cost > cfg.MaxTokens {
			flush()
			prev = lastSeen
		}
		if len(blocks) == 0 {
			start = i
		}
		blocks = append(blocks, formatted)
		end = i
		running += cost
		if t.Speaker != "" {
			speakers = appendUnique(speakers, t.Speaker)
		}
		lastSeen = formatted
	}
	flush()

	return chunks
}

// Words splits flat text into chunks of whitespace-delimited words using
// the same accumulation rule as Turns. StartTurn and EndTurn hold the
// chunk position; PreviousTurn carries the last line of the preceding
// chunk's text.
func Words(text string, cfg Config) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	est := cfg.estimator()

	var (
		chunks  []Chunk
		acc     []string
		running int
	)

	flush := func() {
		if len(acc) == 0 {
			return
		}
		pos := len(chunks)
		c := Chunk{
			Text:      strings.Join(acc, " "),
			StartTurn: pos,
			EndTurn:   pos,
		}
		if pos > 0 {
			c.PreviousTurn = lastLine(chunks[pos-1].Text)
		}
		chunks = append(chunks, c)
		acc = nil
		running = 0
	}

	for _, w := range words {
		cost := est(w)
		if len(acc) > 0 && running+cost > cfg.MaxTokens {
			flush()
		}
		acc = append(acc, w)
		running += cost
	}
	flush()

	return chunks
}

// Split chunks a transcript, preferring structured turns. When the turns
// yield no chunks but flat text exists, the whole text becomes a single
// chunk. Without turns the text is word-chunked. An empty transcript
// yields no chunks.
func Split(turns []transcript.Turn, text string, cfg Config) []Chunk {
	if len(turns) > 0 {
		if chunks := Turns(turns, cfg); len(chunks) > 0 {
			return chunks
		}
		if strings.TrimSpace(text) != "" {
			return []Chunk{{Text: text}}
		}
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return Words(text, cfg)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// lastLine returns the final line of s.
func lastLine(s string) string {
	if i := strings.LastIndex(s, "\n"); i >= 0 {
		return s[i+1:]
	}
	return s
}
