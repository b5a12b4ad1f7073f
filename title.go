package distill

import (
	"context"
	"strings"

	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/prompt"
)

// Title input windows, in bytes. The title call never engages the
// chunking pipeline; the material is cut to these sizes instead.
const (
	titleTranscriptWindow = 500
	titleNotesWindow      = 200
)

// maxTitleChars bounds the returned title.
const maxTitleChars = 60

// DefaultTitle is returned whenever a title cannot be generated.
const DefaultTitle = "Untitled Note"

// TitleRequest carries the inputs for Title.
type TitleRequest struct {
	Input
}

// Title produces a short single-line title for the material. It never
// returns an error: any failure, including missing input, yields
// DefaultTitle.
func (e *Engine) Title(ctx context.Context, req TitleRequest) string {
	if req.missing() {
		return DefaultTitle
	}

	tpl, err := e.loader.Load(prompt.NameTitle)
	if err != nil {
		return DefaultTitle
	}

	nc := e.buildContext(req.Input)
	rendered := tpl.Render(prompt.Data{
		Transcript:    head(nc.body, titleTranscriptWindow),
		PersonalNotes: head(req.PersonalNotes, titleNotesWindow),
	})

	text, err := e.completeText(ctx, op.Title, rendered, titleCeiling)
	if err != nil || text == "" {
		e.log.Debug("title generation failed, using default", "err", err)
		return DefaultTitle
	}
	return cleanTitle(text)
}

// head cuts s to at most n bytes. The windows are crude by intent;
// cutting mid-word costs nothing here.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// cleanTitle reduces raw model output to one short line: the first
// non-empty line, stripped of wrapping quotes and markdown markers,
// cut at maxTitleChars characters.
func cleanTitle(text string) string {
	var line string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			line = l
			break
		}
	}

	line = strings.Trim(line, "\"'*_#` ")
	line = strings.TrimSuffix(line, ".")
	if line == "" {
		return DefaultTitle
	}

	if runes := []rune(line); len(runes) > maxTitleChars {
		line = strings.TrimSpace(string(runes[:maxTitleChars]))
	}
	return line
}
