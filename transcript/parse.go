package transcript

import "strings"

// Parse reconstructs turns from flat transcript text. Blocks separated by
// blank lines become turns; a block opening with "[name]: " is attributed
// to name, anything else becomes a speakerless turn. Parse inverts Render
// for Render's own output.
func Parse(text string) []Turn {
	var turns []Turn
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		if speaker, rest, ok := splitAttribution(block); ok {
			turns = append(turns, Turn{Speaker: speaker, Text: rest})
		} else {
			turns = append(turns, Turn{Text: block})
		}
	}
	return turns
}

// splitAttribution splits "[name]: text" into its parts. It reports false
// for blocks without a leading bracketed label or with nothing after it.
func splitAttribution(block string) (speaker, text string, ok bool) {
	if !strings.HasPrefix(block, "[") {
		return "", "", false
	}
	end := strings.Index(block, "]:")
	if end < 0 {
		return "", "", false
	}
	speaker = strings.TrimSpace(block[1:end])
	text = strings.TrimSpace(block[end+2:])
	if speaker == "" || text == "" {
		return "", "", false
	}
	return speaker, text, true
}
