package prompt

import (
	"fmt"
	"strings"
)

// Builder helps construct prompts programmatically.
type Builder struct {
	parts []string
}

// NewBuilder creates a new prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add adds text to the prompt.
func (b *Builder) Add(text string) *Builder {
	b.parts = append(b.parts, text)
	return b
}

// AddSection adds a markdown section with header.
func (b *Builder) AddSection(header, content string) *Builder {
	b.parts = append(b.parts, fmt.Sprintf("## %s\n\n%s", header, content))
	return b
}

// AddList adds a bulleted list.
func (b *Builder) AddList(header string, items []string) *Builder {
	var buf strings.Builder
	if header != "" {
		buf.WriteString("## ")
		buf.WriteString(header)
		buf.WriteString("\n\n")
	}
	for _, item := range items {
		buf.WriteString("- ")
		buf.WriteString(item)
		buf.WriteString("\n")
	}
	b.parts = append(b.parts, buf.String())
	return b
}

// Build returns the constructed prompt.
func (b *Builder) Build() string {
	return strings.Join(b.parts, "\n\n")
}

// Clear resets the builder.
func (b *Builder) Clear() {
	b.parts = nil
}
