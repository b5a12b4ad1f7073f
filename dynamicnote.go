package distill

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/distill/op"
	"github.com/randalmurphal/distill/prompt"
	"github.com/randalmurphal/distill/reduce"
)

// maxAreas caps how many topic areas a dynamic note is organized by.
const maxAreas = 6

// Area is one topic area of a dynamic note.
type Area struct {
	// Title heads the area's section in the note.
	Title string `json:"title"`

	// Focus lists the concrete points the area should cover.
	Focus []string `json:"focus"`

	// Rationale explains why the area was chosen.
	Rationale string `json:"rationale"`
}

// defaultAreaNames seed the fallback areas used when classification
// fails.
var defaultAreaNames = []string{"key points", "decisions", "action items", "open questions"}

// defaultAreas returns the fixed fallback areas.
func defaultAreas() []Area {
	titler := cases.Title(language.English)
	areas := make([]Area, 0, len(defaultAreaNames))
	for _, name := range defaultAreaNames {
		areas = append(areas, Area{Title: titler.String(name)})
	}
	return areas
}

// DynamicNoteRequest carries the inputs for DynamicNote.
type DynamicNoteRequest struct {
	Input
}

// DynamicNote writes a note organized into topic areas discovered from
// the conversation itself. One classification call proposes the areas;
// malformed or empty classification output falls back to the fixed
// default areas rather than failing the operation.
func (e *Engine) DynamicNote(ctx context.Context, req DynamicNoteRequest) (string, error) {
	if req.missing() {
		return "", fmt.Errorf("dynamic note: %w", ErrInputMissing)
	}

	tpl, err := e.loader.Load(prompt.NameDynamicNote)
	if err != nil {
		return "", fmt.Errorf("dynamic note: %w", err)
	}

	// Fit the transcript up front: the classification call and the
	// final note call both embed it.
	nc := e.buildContext(req.Input)
	fitRender := e.noteRender(tpl, req.PersonalNotes, nil)
	block := nc.direct
	reduced := false
	if !e.fitsDirect(fitRender(block)) {
		block, err = e.reduceContext(ctx, nc, fitRender)
		if err != nil {
			return "", fmt.Errorf("dynamic note: %w", err)
		}
		reduced = true
	}

	clsText, err := e.completeText(ctx, op.ClassifyAreas, classifyPrompt(block), classifyCeiling)
	if err != nil {
		if !e.overflow(err) || reduced {
			return "", fmt.Errorf("dynamic note: %w", err)
		}
		e.log.Info("classification prompt overflowed provider context, reducing transcript")
		block, err = e.reduceContext(ctx, nc, fitRender)
		if err != nil {
			return "", fmt.Errorf("dynamic note: %w", err)
		}
		reduced = true
		clsText, err = e.completeText(ctx, op.ClassifyAreas, classifyPrompt(block), classifyCeiling)
		if err != nil {
			return "", fmt.Errorf("dynamic note: %w", err)
		}
	}

	areas := e.parseAreas(clsText)

	render := e.noteRender(tpl, req.PersonalNotes, areas)
	text, err := e.completeText(ctx, op.DynamicNote, render(block), noteCeiling)
	if err != nil && e.overflow(err) && !reduced {
		e.log.Info("note prompt overflowed provider context, reducing transcript")
		block, err = e.reduceContext(ctx, nc, render)
		if err != nil {
			return "", fmt.Errorf("dynamic note: %w", err)
		}
		text, err = e.completeText(ctx, op.DynamicNote, render(block), noteCeiling)
	}
	if err != nil {
		return "", fmt.Errorf("dynamic note: %w", err)
	}
	return e.orPlaceholder(op.DynamicNote, text), nil
}

// noteRender builds the render function for the final note prompt.
// areas may be nil while the transcript is still being fitted; the
// budget headroom absorbs the area listing added afterwards.
func (e *Engine) noteRender(tpl *prompt.Template, notes string, areas []Area) reduce.RenderFunc {
	return func(block string) string {
		base := tpl.Render(prompt.Data{
			Transcript:    block,
			PersonalNotes: notes,
		})
		if len(areas) == 0 {
			return base
		}
		return prompt.NewBuilder().
			Add(base).
			AddSection("Focus Areas", formatAreas(areas)).
			Build()
	}
}

// classifyPrompt asks for the conversation's topic areas as strict JSON.
func classifyPrompt(block string) string {
	return prompt.NewBuilder().
		Add("Identify the 3 to 6 main topic areas of the conversation below.").
		AddSection("Conversation", block).
		Add("Respond with JSON only, in exactly this shape:\n"+
			`{"areas":[{"title":"...","focus":["..."],"rationale":"..."}]}`).
		Build()
}

// parseAreas decodes classification output. Code fences and chatter
// around the JSON object are tolerated; output that still fails to
// parse, or parses to no usable areas, falls back to the defaults.
func (e *Engine) parseAreas(text string) []Area {
	var out struct {
		Areas []Area `json:"areas"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &out); err != nil {
		e.log.Warn("area classification unparseable, using default areas", "err", err)
		return defaultAreas()
	}

	areas := make([]Area, 0, len(out.Areas))
	for _, a := range out.Areas {
		if strings.TrimSpace(a.Title) == "" {
			continue
		}
		areas = append(areas, a)
	}
	if len(areas) == 0 {
		e.log.Warn("area classification empty, using default areas")
		return defaultAreas()
	}
	if len(areas) > maxAreas {
		areas = areas[:maxAreas]
	}
	return areas
}

// extractJSON strips markdown code fences and slices from the first
// "{" to the last "}".
func extractJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			return s[start : end+1]
		}
	}
	return strings.TrimSpace(s)
}

// formatAreas renders areas as the numbered list the note template
// refers to.
func formatAreas(areas []Area) string {
	var sb strings.Builder
	for i, a := range areas {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, a.Title)
		if len(a.Focus) > 0 {
			fmt.Fprintf(&sb, "   Focus: %s\n", strings.Join(a.Focus, ", "))
		}
		if a.Rationale != "" {
			fmt.Fprintf(&sb, "   Why: %s\n", a.Rationale)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
