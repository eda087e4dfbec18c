package help

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/export"
	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/theme"
)

// Model is the help overlay. Besides the key bindings it explains how the
// send shortcuts behave under the active size policy.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	policy export.Policy
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, policy export.Policy, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		policy: policy,
		width:  width,
		height: height,
	}
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	heading := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	m.help.Width = m.width - 4
	m.help.ShowAll = true

	sections := []string{heading.Render("Keyboard Shortcuts"), m.help.View(m.keys)}
	if m.policy.Name != "" {
		sections = append(sections,
			heading.MarginTop(1).Render("Sending"),
			m.sendingView(),
		)
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// sendingView describes each send shortcut and the size limits it is
// subject to.
func (m Model) sendingView() string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(4)
	row := func(b key.Binding, text string, style lipgloss.Style) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, keyStyle.Render(b.Help().Key), style.Render(text))
	}

	plain := lipgloss.NewStyle()
	rows := []string{row(m.keys.Send, "send the note as plain text", plain)}
	if m.policy.OfferHTML {
		rows = append(rows, row(m.keys.SendHTML, "convert the note to HTML and send it", plain))
	} else {
		rows = append(rows, row(m.keys.SendHTML,
			fmt.Sprintf("not available with the %s size policy", m.policy.Name), theme.DimmedStyle))
	}

	rows = append(rows, "", theme.HelpStyle.Render(fmt.Sprintf("Size policy: %s", m.policy.Name)))
	if m.policy.Warn > 0 {
		rows = append(rows, theme.HelpStyle.Render(
			fmt.Sprintf("  warns above %d characters", m.policy.Warn)))
	}
	refuse := fmt.Sprintf("  refuses from %d characters", m.policy.Max)
	if m.policy.ClipboardFallback {
		refuse += " and copies the file link instead"
	}
	rows = append(rows, theme.HelpStyle.Render(refuse))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
