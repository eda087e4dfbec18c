package app

import (
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/export"
	"github.com/nhle/notemail/internal/history"
	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/menu"
	"github.com/nhle/notemail/internal/notice"
	appsync "github.com/nhle/notemail/internal/sync"
	"github.com/nhle/notemail/internal/ui"
	"github.com/nhle/notemail/internal/ui/command"
	"github.com/nhle/notemail/internal/ui/contextmenu"
	helpview "github.com/nhle/notemail/internal/ui/help"
	historyview "github.com/nhle/notemail/internal/ui/history"
	"github.com/nhle/notemail/internal/ui/notelist"
	"github.com/nhle/notemail/internal/ui/preview"
	settingsview "github.com/nhle/notemail/internal/ui/settings"
)

// noticeTTL is how long a notice stays on screen.
const noticeTTL = 6 * time.Second

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewMenu
	ViewSettings
	ViewHistory
	ViewHelp
	ViewCommand
)

// Vault is the part of the note store the TUI reads from.
type Vault interface {
	appsync.Lister
	preview.Reader
	Root() string
	Invalidate(rel string)
}

// Options wires the root model to the rest of the program.
type Options struct {
	Vault    Vault
	Changes  <-chan string
	Settings settingsview.Store
	Exporter *export.Exporter

	// History may be nil to disable the history view.
	History history.Store

	// Notices must be the notifier the Exporter reports to.
	Notices *notice.Channel

	Previewer    *markup.Previewer
	PollInterval time.Duration
}

// noticeExpiredMsg clears the notice with the given sequence number.
type noticeExpiredMsg struct {
	seq int
}

// Model is the root Bubble Tea model that manages view routing,
// layout, the vault scanner and the export actions.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	keys         *keys.KeyMap

	vault    Vault
	settings settingsview.Store
	exporter *export.Exporter
	registry *menu.Registry
	notices  *notice.Channel
	poller   *appsync.Poller

	notes        notelist.Model
	preview      preview.Model
	menuView     contextmenu.Model
	settingsView settingsview.Model
	historyView  historyview.Model
	helpView     helpview.Model
	commandView  command.Model

	showPreview bool
	notice      *notice.Notice
	noticeSeq   int
	ready       bool
}

// New creates the root application model.
func New(opts Options) Model {
	k := keys.DefaultKeyMap()

	registry := &menu.Registry{}
	registry.Register(opts.Exporter)

	previewer := opts.Previewer
	if previewer == nil {
		previewer = markup.NewPreviewer("")
	}
	policy := opts.Exporter.Policy()

	return Model{
		currentView:  ViewBrowser,
		keys:         k,
		vault:        opts.Vault,
		settings:     opts.Settings,
		exporter:     opts.Exporter,
		registry:     registry,
		notices:      opts.Notices,
		poller:       appsync.New(opts.Vault, opts.Changes, opts.PollInterval),
		notes:        notelist.New(k, 80, 24),
		preview:      preview.New(previewer, preview.Limits{Warn: policy.Warn, Max: policy.Max}, 80, 24),
		menuView:     contextmenu.New(k, 80, 24),
		settingsView: settingsview.New(opts.Settings, 80, 24),
		historyView:  historyview.New(opts.History, k, 80, 24),
		helpView:     helpview.New(k, policy, 80, 24),
		commandView:  command.New(80, 24),
		showPreview:  true,
	}
}

// Init starts the vault scanner and the notice listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.notes.Init(),
		m.poller.Start(),
		m.notices.Wait(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.ScanResultMsg:
		return m.handleScan(msg)

	case notice.Msg:
		n := notice.Notice(msg)
		m.notice = &n
		m.noticeSeq++
		seq := m.noticeSeq
		return m, tea.Batch(
			m.notices.Wait(),
			tea.Tick(noticeTTL, func(time.Time) tea.Msg { return noticeExpiredMsg{seq: seq} }),
		)

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
		return m, nil

	case notelist.SelectionChangedMsg:
		m.preview.SetNote(msg.Note)
		return m, preview.Load(m.vault, msg.Note)

	case preview.LoadedMsg:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd

	case notelist.OpenMenuMsg:
		m.menuView.Open(m.registry.Build(msg.Note))
		m.previousView = m.currentView
		m.currentView = ViewMenu
		return m, nil

	case notelist.SendMsg:
		return m, m.send(msg.Note, msg.HTML)

	case contextmenu.ActivateMsg:
		m.currentView = ViewBrowser
		cmd, _ := m.activate(msg.Note, msg.Action.Title)
		return m, cmd

	case contextmenu.CloseMsg:
		m.currentView = ViewBrowser
		return m, nil

	case settingsview.DoneMsg:
		m.currentView = ViewBrowser
		return m, nil

	case historyview.CloseMsg:
		m.currentView = ViewBrowser
		return m, nil

	case historyview.LoadedMsg:
		var cmd tea.Cmd
		m.historyView, cmd = m.historyView.Update(msg)
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.poller.Stop()
			return m, tea.Quit
		}
		if m.capturesKeys() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			if m.currentView == ViewBrowser {
				m.poller.Stop()
				return m, tea.Quit
			}

		case key.Matches(msg, m.keys.Help) && m.currentView != ViewCommand:
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case key.Matches(msg, m.keys.Command):
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			cmd := m.commandView.Focus()
			return m, cmd

		case key.Matches(msg, m.keys.Back):
			if m.currentView == ViewHelp || m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
		}

		if m.currentView == ViewBrowser {
			switch {
			case key.Matches(msg, m.keys.Settings):
				cmd := m.openSettings()
				return m, cmd
			case key.Matches(msg, m.keys.History):
				cmd := m.openHistory()
				return m, cmd
			case key.Matches(msg, m.keys.Refresh):
				m.poller.Refresh()
				return m, nil
			case key.Matches(msg, m.keys.Preview):
				m.showPreview = !m.showPreview
				m.resize()
				return m, nil
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// capturesKeys reports whether the active view consumes every key itself,
// so global shortcuts must not fire.
func (m Model) capturesKeys() bool {
	switch m.currentView {
	case ViewSettings:
		return true
	case ViewCommand:
		return false
	case ViewBrowser:
		return m.notes.Searching()
	}
	return false
}

// handleScan applies a vault scan to the list and refreshes the preview
// when its note changed on disk.
func (m Model) handleScan(msg appsync.ScanResultMsg) (tea.Model, tea.Cmd) {
	for _, rel := range msg.Changed {
		m.vault.Invalidate(rel)
	}

	cmds := []tea.Cmd{m.poller.WaitForNextResult()}
	if msg.Error != nil {
		log.Printf("scanning vault: %v", msg.Error)
		return m, tea.Batch(cmds...)
	}

	cmds = append(cmds, m.notes.SetNotes(msg.Notes))
	if note, ok := m.preview.Note(); ok {
		for _, rel := range msg.Changed {
			if rel == note.Path {
				cmds = append(cmds, preview.Load(m.vault, note))
				break
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) openSettings() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewSettings
	return m.settingsView.Init()
}

func (m *Model) openHistory() tea.Cmd {
	m.previousView = m.currentView
	m.currentView = ViewHistory
	return m.historyView.Init()
}

// resize distributes the content area between the panes.
func (m *Model) resize() {
	if !m.ready {
		return
	}
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()

	left, right := m.layout.SplitWidth()
	if m.showPreview {
		m.notes.SetSize(left, h)
	} else {
		m.notes.SetSize(w, h)
	}
	m.preview.SetSize(right, h)
	m.menuView.SetSize(right, h)
	m.settingsView.SetSize(w, h)
	m.historyView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBrowser:
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			if m.showPreview && !m.notes.Searching() && isScrollKey(kmsg) {
				m.preview, cmd = m.preview.Update(msg)
			} else {
				m.notes, cmd = m.notes.Update(msg)
			}
			break
		}
		if !m.showPreview {
			m.notes, cmd = m.notes.Update(msg)
			break
		}
		var listCmd, previewCmd tea.Cmd
		m.notes, listCmd = m.notes.Update(msg)
		m.preview, previewCmd = m.preview.Update(msg)
		cmd = tea.Batch(listCmd, previewCmd)
	case ViewMenu:
		m.menuView, cmd = m.menuView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHistory:
		m.historyView, cmd = m.historyView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// isScrollKey reports whether k scrolls the preview pane rather than
// moving through the list.
func isScrollKey(k tea.KeyMsg) bool {
	switch k.String() {
	case "ctrl+u", "ctrl+d":
		return true
	}
	return false
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("notemail · "+filepath.Base(m.vault.Root()), m.scanStatus())
	content := m.renderContent()
	noticeLine := m.layout.RenderNotice(m.notice)
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, noticeLine, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBrowser:
		if !m.showPreview {
			return m.notes.View()
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, m.notes.View(), m.preview.View())
	case ViewMenu:
		return lipgloss.JoinHorizontal(lipgloss.Top, m.notes.View(), m.menuView.View())
	case ViewSettings:
		return m.settingsView.View()
	case ViewHistory:
		return m.historyView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	default:
		return ""
	}
}

// scanStatus returns a short string describing the vault scanner.
func (m Model) scanStatus() string {
	status := m.poller.Status()
	switch status.State {
	case appsync.SyncRunning:
		return "scanning"
	case appsync.SyncError:
		return "⚠ scan failed"
	}
	if status.LastScan.IsZero() {
		return "starting"
	}
	if status.Count == 1 {
		return "1 note"
	}
	return fmt.Sprintf("%d notes", status.Count)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | tab complete | enter execute | esc back"
	case ViewMenu:
		return "j/k move | enter run | esc close"
	case ViewSettings:
		if msg := m.settingsView.StatusMessage(); msg != "" {
			return msg
		}
		return "changes save as you type | ctrl+r reset | esc back"
	case ViewHistory:
		return "r reload | X clear | esc back"
	default:
		if m.notes.Searching() {
			return "enter apply | esc clear"
		}
		if q := m.notes.Query(); q != "" {
			return fmt.Sprintf("filter: %s | / edit", q)
		}
		return "q quit | ? help | enter actions | m send | M send html | / search | s settings | h history"
	}
}
