// Package contextmenu renders the per-note action menu.
package contextmenu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/menu"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// ActivateMsg is sent when the user picks an entry.
type ActivateMsg struct {
	Note   model.Note
	Action menu.Action
}

// CloseMsg is sent when the menu is dismissed without a choice.
type CloseMsg struct{}

// icons maps menu icon names to terminal glyphs.
var icons = map[string]string{
	"mail": "✉",
}

// Model is the context menu view.
type Model struct {
	menu   *menu.Menu
	cursor int
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new context menu model.
func New(k *keys.KeyMap, width, height int) Model {
	return Model{keys: k, width: width, height: height}
}

// Open shows m for a freshly built menu.
func (m *Model) Open(mn *menu.Menu) {
	m.menu = mn
	m.cursor = 0
}

// Update handles messages for the context menu.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.menu == nil {
		return m, nil
	}

	actions := m.menu.Actions()

	switch {
	case key.Matches(kmsg, m.keys.Back):
		return m, func() tea.Msg { return CloseMsg{} }

	case key.Matches(kmsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(kmsg, m.keys.Down):
		if m.cursor < len(actions)-1 {
			m.cursor++
		}

	case key.Matches(kmsg, m.keys.Select):
		if len(actions) == 0 {
			return m, func() tea.Msg { return CloseMsg{} }
		}
		note := m.menu.Note
		action := actions[m.cursor]
		return m, func() tea.Msg {
			return ActivateMsg{Note: note, Action: action}
		}
	}

	return m, nil
}

// View renders the context menu.
func (m Model) View() string {
	if m.menu == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render(m.menu.Note.Name())

	var lines []string
	if m.menu.Empty() {
		lines = append(lines, theme.DimmedStyle.Render("No actions for this file."))
	}
	for i, a := range m.menu.Actions() {
		line := fmt.Sprintf("%s %s", iconFor(a.Icon), a.Title)
		if i == m.cursor {
			line = theme.SelectedItemStyle.Render(line)
		} else {
			line = theme.ListItemStyle.Render(line)
		}
		lines = append(lines, line)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"))

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

func iconFor(name string) string {
	if g, ok := icons[name]; ok {
		return g
	}
	return "•"
}

// SetSize updates the menu dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
