package notelist

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// OpenMenuMsg is sent when the user asks for the actions of a note.
type OpenMenuMsg struct {
	Note model.Note
}

// SendMsg is sent when the user triggers a send shortcut on a note.
type SendMsg struct {
	Note model.Note
	HTML bool
}

// SelectionChangedMsg is sent when the highlighted note changes.
type SelectionChangedMsg struct {
	Note model.Note
}

// Model is the vault browser view component.
type Model struct {
	list        list.Model
	keys        *keys.KeyMap
	notes       []model.Note
	query       string
	searchMode  bool
	searchInput textinput.Model
	selected    string
	width       int
	height      int
}

// New creates a new note list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Notes"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "filter notes..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		keys:        k,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetNotes replaces the listed notes, keeping the selection on the same
// path when it still exists.
func (m *Model) SetNotes(notes []model.Note) tea.Cmd {
	m.notes = notes
	return m.applyFilter()
}

// applyFilter rebuilds the visible items from the current query.
func (m *Model) applyFilter() tea.Cmd {
	q := strings.ToLower(m.query)

	var items []list.Item
	keep := -1
	for _, n := range m.notes {
		if q != "" && !strings.Contains(strings.ToLower(n.Path), q) {
			continue
		}
		if n.Path == m.selected {
			keep = len(items)
		}
		items = append(items, NoteItem{Note: n})
	}

	cmd := m.list.SetItems(items)
	if keep >= 0 {
		m.list.Select(keep)
	}
	return tea.Batch(cmd, m.selectionChanged())
}

// Update handles messages for the note list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.query = strings.TrimSpace(m.searchInput.Value())
		return m, m.applyFilter()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.query = ""
		return m, m.applyFilter()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		note, ok := m.SelectedNote()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return OpenMenuMsg{Note: note}
		}

	case key.Matches(msg, m.keys.Send), key.Matches(msg, m.keys.SendHTML):
		note, ok := m.SelectedNote()
		if !ok {
			return m, nil
		}
		html := key.Matches(msg, m.keys.SendHTML)
		return m, func() tea.Msg {
			return SendMsg{Note: note, HTML: html}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, tea.Batch(cmd, m.selectionChanged())
}

// selectionChanged returns a command announcing the highlighted note when
// it differs from the last one announced.
func (m *Model) selectionChanged() tea.Cmd {
	note, ok := m.SelectedNote()
	if !ok || note.Path == m.selected {
		return nil
	}
	m.selected = note.Path
	return func() tea.Msg {
		return SelectionChangedMsg{Note: note}
	}
}

// SelectedNote returns the highlighted note.
func (m Model) SelectedNote() (model.Note, bool) {
	item, ok := m.list.SelectedItem().(NoteItem)
	if !ok {
		return model.Note{}, false
	}
	return item.Note, true
}

// Searching reports whether the filter input has focus.
func (m Model) Searching() bool {
	return m.searchMode
}

// Query returns the active filter.
func (m Model) Query() string {
	return m.query
}

// View renders the note list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no notes are listed.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.query != "" {
		return style.Render("No matching notes.\nPress / and clear the filter.")
	}

	return style.Render(
		"No notes found.\n\n" +
			"Start notemail with --vault pointing at a folder of markdown files.",
	)
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
