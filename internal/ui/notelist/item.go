package notelist

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// NoteItem wraps a model.Note so it can be used in a bubbles/list.
type NoteItem struct {
	Note model.Note
}

// FilterValue returns the string used for filtering.
func (i NoteItem) FilterValue() string { return i.Note.Path }

// Title returns the note path for the list.
func (i NoteItem) Title() string { return i.Note.Path }

// Description returns a short summary line for the list.
func (i NoteItem) Description() string {
	parts := []string{
		humanSize(i.Note.Size),
		relativeTime(i.Note.ModTime),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering note lines.
type ItemDelegate struct{}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list item line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	ni, ok := item.(NoteItem)
	if !ok {
		return
	}
	note := ni.Note
	isSelected := index == m.Index()

	ext := note.Extension()
	badge := theme.ExtensionStyle(ext).Render(extLabel(ext))

	info := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(ni.Description())

	line := fmt.Sprintf("%s %s  %s", badge, note.Path, info)

	// Only markdown notes have actions.
	if !note.Eligible() {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// extLabel returns a fixed-width badge text for an extension.
func extLabel(ext string) string {
	if ext == "" {
		return "---"
	}
	ext = strings.ToUpper(ext)
	if len(ext) > 3 {
		ext = ext[:3]
	}
	return fmt.Sprintf("%-3s", ext)
}

// humanSize formats a byte count.
func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// relativeTime returns a human-friendly relative time string.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 02, 2006")
	}
}
