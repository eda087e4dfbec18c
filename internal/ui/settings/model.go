// Package settings is the form that edits the persisted settings record.
package settings

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// DoneMsg is sent when the user leaves the settings form.
type DoneMsg struct{}

// Store is the part of the settings manager the form uses.
type Store interface {
	Settings() *model.Settings
	Save(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Mode is the current screen of the settings view.
type Mode int

const (
	ModeEdit Mode = iota
	ModeConfirmReset
)

// formBindings holds the values huh writes into. It lives on the heap so
// the pointers handed to the form stay valid across Model copies.
type formBindings struct {
	recipient    string
	confirmReset bool
}

// Model is the Bubble Tea model for the settings form.
type Model struct {
	mode    Mode
	store   Store
	form    *huh.Form
	confirm *huh.Form
	b       *formBindings

	// statusMsg is transient feedback about the last save or reset.
	statusMsg string

	width, height int
}

// New creates a settings view over store.
func New(store Store, width, height int) Model {
	return Model{
		store:  store,
		b:      &formBindings{},
		width:  width,
		height: height,
	}
}

// Init builds the form from the live record.
func (m *Model) Init() tea.Cmd {
	m.mode = ModeEdit
	m.statusMsg = ""
	m.b.recipient = m.store.Settings().DefaultRecipient
	m.form = m.buildForm()
	return m.form.Init()
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default recipient").
				Description("Email address used as the compose recipient").
				Placeholder("name@example.com").
				Value(&m.b.recipient),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m *Model) buildConfirmForm() *huh.Form {
	m.b.confirmReset = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset settings to defaults?").
				Description(fmt.Sprintf("The default recipient becomes %s.", model.DefaultRecipient)).
				Affirmative("Reset").
				Negative("Cancel").
				Value(&m.b.confirmReset),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

// Update handles messages and dispatches based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case ModeEdit:
			switch msg.String() {
			case "esc":
				return m, done
			case "ctrl+r":
				m.mode = ModeConfirmReset
				m.confirm = m.buildConfirmForm()
				return m, m.confirm.Init()
			}
		case ModeConfirmReset:
			if msg.String() == "esc" {
				m.mode = ModeEdit
				return m, nil
			}
		}
	}

	if m.mode == ModeConfirmReset {
		return m.updateConfirm(msg)
	}
	return m.updateForm(msg)
}

// updateForm forwards msg to the form and persists the recipient whenever
// the bound value has changed.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if live := m.store.Settings(); live.DefaultRecipient != m.b.recipient {
		live.DefaultRecipient = m.b.recipient
		m.save()
	}

	if m.form.State == huh.StateCompleted || m.form.State == huh.StateAborted {
		return m, done
	}

	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		if m.b.confirmReset {
			return m.reset()
		}
		m.mode = ModeEdit
		return m, nil
	case huh.StateAborted:
		m.mode = ModeEdit
		return m, nil
	}

	return m, cmd
}

// save writes the live record. It runs on the UI loop, which is the only
// writer of the live record.
func (m *Model) save() {
	if err := m.store.Save(context.Background()); err != nil {
		log.Printf("settings: %v", err)
		m.statusMsg = fmt.Sprintf("Error saving settings: %v", err)
		return
	}
	m.statusMsg = "Saved"
}

// reset discards the stored record and rebuilds the form from the
// defaults.
func (m Model) reset() (Model, tea.Cmd) {
	if err := m.store.Reset(context.Background()); err != nil {
		log.Printf("settings: %v", err)
		m.mode = ModeEdit
		m.statusMsg = fmt.Sprintf("Error resetting settings: %v", err)
		return m, nil
	}

	cmd := m.Init()
	m.statusMsg = "Settings reset to defaults"
	return m, cmd
}

func done() tea.Msg { return DoneMsg{} }

// View renders the settings view.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Settings")

	var body string
	switch {
	case m.mode == ModeConfirmReset && m.confirm != nil:
		body = m.confirm.View()
	case m.form != nil:
		body = m.form.View()
	}

	parts := []string{title, body}
	if m.statusMsg != "" {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			MarginTop(1).
			Render(m.statusMsg))
	}

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// StatusMessage returns the feedback from the last save or reset.
func (m Model) StatusMessage() string {
	return m.statusMsg
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) formWidth() int {
	w := m.width - 8
	if w < 30 {
		w = 30
	}
	return w
}
