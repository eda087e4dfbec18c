package app

import (
	"context"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/notemail/internal/export"
	"github.com/nhle/notemail/internal/menu"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/notice"
)

// runAction activates a menu entry off the UI loop. Failures have already
// been reported through the notifier, so they are only logged here.
func runAction(note model.Note, action menu.Action) tea.Cmd {
	if action.OnActivate == nil {
		return nil
	}
	return func() tea.Msg {
		if err := action.OnActivate(context.Background()); err != nil {
			log.Printf("%s on %s: %v", action.Title, note.Path, err)
		}
		return nil
	}
}

// activate rebuilds the menu for note and runs the entry titled title.
// Building here, on the UI loop, means the action sees the settings as they
// are now rather than as they were when a menu was opened.
func (m *Model) activate(note model.Note, title string) (tea.Cmd, bool) {
	for _, a := range m.registry.Build(note).Actions() {
		if a.Title == title {
			return runAction(note, a), true
		}
	}
	return nil, false
}

// send runs the menu entry matching the send shortcut for note.
func (m *Model) send(note model.Note, asHTML bool) tea.Cmd {
	title := export.TitleSend
	if asHTML {
		title = export.TitleSendHTML
	}

	if cmd, ok := m.activate(note, title); ok {
		return cmd
	}

	switch {
	case !note.Eligible():
		m.notices.Notify(notice.Notice{Level: notice.LevelWarning, Text: export.ErrNotEligible.Error()})
	case asHTML:
		m.notices.Notify(notice.Notice{
			Level: notice.LevelWarning,
			Text:  fmt.Sprintf("HTML export is not available with the %s size policy", m.exporter.Policy().Name),
		})
	}
	return nil
}

// executeCommand handles a command string from the command palette.
func (m Model) executeCommand(name string) (tea.Model, tea.Cmd) {
	switch name {
	case "send", "send html":
		note, ok := m.notes.SelectedNote()
		if !ok {
			return m, nil
		}
		return m, m.send(note, name == "send html")
	case "settings":
		cmd := m.openSettings()
		return m, cmd
	case "reset settings":
		if err := m.settings.Reset(context.Background()); err != nil {
			log.Printf("resetting settings: %v", err)
			m.notices.Notify(notice.Notice{Level: notice.LevelError, Text: "Failed to reset settings"})
			return m, nil
		}
		m.notices.Notify(notice.Notice{Level: notice.LevelInfo, Text: "Settings reset to defaults"})
		return m, nil
	case "history":
		cmd := m.openHistory()
		return m, cmd
	case "rescan", "refresh":
		m.poller.Refresh()
		return m, nil
	case "preview":
		m.showPreview = !m.showPreview
		m.resize()
		return m, nil
	case "help":
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil
	case "quit", "q":
		m.poller.Stop()
		return m, tea.Quit
	default:
		m.notices.Notify(notice.Notice{Level: notice.LevelWarning, Text: fmt.Sprintf("Unknown command: %s", name)})
		return m, nil
	}
}
