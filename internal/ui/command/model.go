package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// Command is one palette entry.
type Command struct {
	Name        string
	Description string
}

// Commands lists the palette commands in display order.
var Commands = []Command{
	{"send", "send the selected note as plain text"},
	{"send html", "send the selected note converted to HTML"},
	{"settings", "edit the default recipient"},
	{"reset settings", "restore the default recipient"},
	{"history", "show recent exports"},
	{"rescan", "rescan the vault now"},
	{"preview", "toggle the note preview"},
	{"help", "show shortcuts and size limits"},
	{"quit", "leave notemail"},
}

// Matching returns the commands whose name starts with the typed input.
// Empty input matches every command.
func Matching(input string) []Command {
	input = strings.ToLower(strings.TrimLeft(input, " "))
	var out []Command
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, input) {
			out = append(out, c)
		}
	}
	return out
}

func names(cmds []Command) []string {
	out := make([]string, len(cmds))
	for i, c := range cmds {
		out[i] = c.Name
	}
	return out
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.ShowSuggestions = true
	ti.SetSuggestions(names(Commands))
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		cmd := strings.ToLower(strings.TrimSpace(m.input.Value()))
		m.input.Reset()
		if cmd != "" {
			return m, func() tea.Msg {
				return CommandMsg(cmd)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")

	matches := Matching(m.input.Value())
	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(16)
	rows := make([]string, 0, len(matches))
	for _, c := range matches {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top,
			nameStyle.Render(c.Name), theme.HelpStyle.Render(c.Description)))
	}
	if len(rows) == 0 {
		rows = append(rows, theme.DimmedStyle.Render("no matching command"))
	}
	list := lipgloss.NewStyle().MarginTop(1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View(), list)

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
