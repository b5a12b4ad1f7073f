package prompt

import (
	"fmt"
	"strings"
)

// Data carries the inputs substituted into a template.
type Data struct {
	Transcript    string
	PersonalNotes string
}

// flag reports whether the named conditional flag holds for this data.
// Unknown flags are false, so blocks guarding them render as empty.
func (d Data) flag(name string) bool {
	switch name {
	case "hasTranscript":
		return d.Transcript != ""
	case "hasPersonalNotes":
		return d.PersonalNotes != ""
	default:
		return false
	}
}

// Template is parsed prompt source. Conditional blocks are resolved
// structurally at render time, so a block's content disappears entirely
// when its flag is unset.
type Template struct {
	nodes []node
}

type node interface {
	render(sb *strings.Builder, data Data)
}

// textNode is literal template text.
type textNode string

func (n textNode) render(sb *strings.Builder, data Data) {
	sb.WriteString(string(n))
}

// condNode renders its children only when the named flag is set.
type condNode struct {
	flag     string
	children []node
}

func (n condNode) render(sb *strings.Builder, data Data) {
	if !data.flag(n.flag) {
		return
	}
	for _, child := range n.children {
		child.render(sb, data)
	}
}

const (
	openPrefix = "{{#if "
	openSuffix = "}}"
	closeTag   = "{{/if}}"
)

// Parse parses template source. Conditional blocks use
// {{#if flagName}}...{{/if}} and may nest. A close tag without a
// matching open block is kept as literal text; an open block without a
// close tag is an error.
func Parse(source string) (*Template, error) {
	nodes, _, err := parseNodes(source, 0)
	if err != nil {
		return nil, err
	}
	return &Template{nodes: nodes}, nil
}

// parseNodes parses until the close tag ending the current block, or
// end of input at the top level. It returns the parsed nodes and the
// source remaining after the consumed close tag.
func parseNodes(source string, depth int) ([]node, string, error) {
	var nodes []node
	for source != "" {
		openIdx := strings.Index(source, openPrefix)
		closeIdx := strings.Index(source, closeTag)

		if closeIdx >= 0 && (openIdx < 0 || closeIdx < openIdx) {
			if depth > 0 {
				if closeIdx > 0 {
					nodes = append(nodes, textNode(source[:closeIdx]))
				}
				return nodes, source[closeIdx+len(closeTag):], nil
			}
			// Stray close tag at the top level stays literal.
			nodes = append(nodes, textNode(source[:closeIdx+len(closeTag)]))
			source = source[closeIdx+len(closeTag):]
			continue
		}

		if openIdx < 0 {
			if depth > 0 {
				return nil, "", fmt.Errorf("unterminated conditional block")
			}
			nodes = append(nodes, textNode(source))
			return nodes, "", nil
		}

		if openIdx > 0 {
			nodes = append(nodes, textNode(source[:openIdx]))
			source = source[openIdx:]
		}

		end := strings.Index(source, openSuffix)
		if end < 0 {
			// Open tag never closed by "}}", keep as literal text.
			nodes = append(nodes, textNode(source))
			source = ""
			continue
		}
		flag := strings.TrimSpace(source[len(openPrefix):end])
		children, rest, err := parseNodes(source[end+len(openSuffix):], depth+1)
		if err != nil {
			return nil, "", err
		}
		nodes = append(nodes, condNode{flag: flag, children: children})
		source = rest
	}
	if depth > 0 {
		return nil, "", fmt.Errorf("unterminated conditional block")
	}
	return nodes, "", nil
}

// Render resolves conditional blocks against data, then substitutes the
// {{transcript}} and {{personalNotes}} placeholders. Substitution is a
// single pass, so placeholder-like text inside the data values is left
// alone.
func (t *Template) Render(data Data) string {
	var sb strings.Builder
	for _, n := range t.nodes {
		n.render(&sb, data)
	}
	return strings.NewReplacer(
		"{{transcript}}", data.Transcript,
		"{{personalNotes}}", data.PersonalNotes,
	).Replace(sb.String())
}
