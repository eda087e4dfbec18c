package preview

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// Reader gives access to note content.
type Reader interface {
	ReadCached(ctx context.Context, note model.Note) (string, error)
}

// LoadedMsg carries the content of a note for the preview pane.
type LoadedMsg struct {
	Note    model.Note
	Content string
	Err     error
}

// Limits are the size thresholds shown next to the character count.
type Limits struct {
	Warn int
	Max  int
}

// Model is the note preview pane.
type Model struct {
	note      *model.Note
	content   string
	length    int
	err       error
	loading   bool
	viewport  viewport.Model
	previewer *markup.Previewer
	limits    Limits
	width     int
	height    int
}

// New creates a new preview pane model.
func New(p *markup.Previewer, limits Limits, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport:  vp,
		previewer: p,
		limits:    limits,
		width:     width,
		height:    height,
	}
}

// Load returns a command that reads note for display.
func Load(r Reader, note model.Note) tea.Cmd {
	return func() tea.Msg {
		content, err := r.ReadCached(context.Background(), note)
		return LoadedMsg{Note: note, Content: content, Err: err}
	}
}

// Init returns the initial command for the preview pane.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the preview pane.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(LoadedMsg); ok {
		// Ignore results for a note that is no longer selected.
		if m.note == nil || m.note.Path != msg.Note.Path {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		m.content = msg.Content
		m.length = utf8.RuneCountInString(msg.Content)
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil
	}

	// Delegate to viewport for scrolling
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// SetNote marks note as the one being previewed and clears old content.
func (m *Model) SetNote(note model.Note) {
	m.note = &note
	m.loading = true
	m.err = nil
	m.content = ""
	m.length = 0
}

// Note returns the previewed note, if any.
func (m Model) Note() (model.Note, bool) {
	if m.note == nil {
		return model.Note{}, false
	}
	return *m.note, true
}

// View renders the preview pane.
func (m Model) View() string {
	style := theme.PanelStyle.
		Width(m.width - 2).
		Height(m.height - 2)

	if m.note == nil {
		return style.Foreground(theme.ColorGray).Render("Select a note to preview it.")
	}
	if m.loading {
		return style.Foreground(theme.ColorGray).Render("Loading...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitle(), m.viewport.View())
}

// renderTitle renders the note name and its character count.
func (m Model) renderTitle() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render(m.note.Name())

	count := theme.SizeStyle(m.length, m.limits.Warn, m.limits.Max).
		Render(fmt.Sprintf("%d chars", m.length))

	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", count)
}

// renderContent renders the body placed in the viewport.
func (m Model) renderContent() string {
	if m.err != nil {
		return lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Render(fmt.Sprintf("Cannot read %s: %v", m.note.Path, m.err))
	}
	if !m.note.Eligible() {
		return theme.DimmedStyle.Render("Only markdown notes are previewed.")
	}
	return m.previewer.Render(m.content, m.width-4)
}

// SetSize updates the preview dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
	if m.note != nil && !m.loading {
		m.viewport.SetContent(m.renderContent())
	}
}
