package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// program runs the settings form on its own, outside the main TUI.
type program struct {
	m Model
}

func (p *program) Init() tea.Cmd {
	return p.m.Init()
}

func (p *program) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		return p, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.m, cmd = p.m.Update(msg)
	return p, cmd
}

func (p *program) View() string {
	return p.m.View() + "\n" +
		"enter/esc done | ctrl+r reset\n"
}

// Run shows the settings form until the user leaves it. Every edit is
// already saved when Run returns.
func Run(store Store, opts ...tea.ProgramOption) error {
	p := &program{m: New(store, 72, 12)}
	if _, err := tea.NewProgram(p, opts...).Run(); err != nil {
		return fmt.Errorf("running settings form: %w", err)
	}
	return nil
}
