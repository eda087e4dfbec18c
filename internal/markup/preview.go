package markup

import (
	"log"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Previewer renders markdown for display in the terminal. Renderers are
// rebuilt only when the wrap width changes.
type Previewer struct {
	style string

	mu       sync.Mutex
	width    int
	renderer *glamour.TermRenderer
}

// NewPreviewer returns a Previewer using the named glamour style
// ("dark", "light", "notty", ...).
func NewPreviewer(style string) *Previewer {
	if style == "" {
		style = "dark"
	}
	return &Previewer{style: style}
}

// Render returns markdown formatted for a column of the given width. On
// any renderer failure the source text is returned unchanged.
func (p *Previewer) Render(markdown string, width int) string {
	if width < 20 {
		width = 20
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.renderer == nil || p.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(p.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Printf("creating markdown renderer: %v", err)
			return markdown
		}
		p.renderer = r
		p.width = width
	}

	out, err := p.renderer.Render(markdown)
	if err != nil {
		log.Printf("rendering markdown preview: %v", err)
		return markdown
	}
	return out
}
