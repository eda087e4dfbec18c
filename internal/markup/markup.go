// Package markup converts markdown notes for mail bodies and terminal
// previews.
package markup

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Converter turns markdown into HTML.
type Converter interface {
	ToHTML(markdown string) (string, error)
}

// GoldmarkConverter is the default Converter. It understands GitHub
// flavored markdown and passes raw HTML in the note through unchanged.
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewConverter returns a GoldmarkConverter.
func NewConverter() *GoldmarkConverter {
	return &GoldmarkConverter{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// ToHTML renders markdown to an HTML fragment.
func (c *GoldmarkConverter) ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}
