// Package history shows recent export outcomes.
package history

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/history"
	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/theme"
)

// CloseMsg signals the parent to leave the history view.
type CloseMsg struct{}

// LoadedMsg carries records read from the store.
type LoadedMsg struct {
	Records []model.ExportRecord
	Counts  map[model.ExportOutcome]int
	Err     error
}

// Limit is the number of records shown.
const Limit = 200

// Model is the export history view.
type Model struct {
	store   history.Store
	keys    *keys.KeyMap
	table   table.Model
	records []model.ExportRecord
	counts  map[model.ExportOutcome]int
	err     error
	width   int
	height  int
}

// New creates a history view. store may be nil when history is disabled.
func New(store history.Store, k *keys.KeyMap, width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(height-4),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.ColorWhite).
		Background(theme.ColorBlue)
	t.SetStyles(s)

	return Model{
		store:  store,
		keys:   k,
		table:  t,
		width:  width,
		height: height,
	}
}

func columns(width int) []table.Column {
	noteWidth := width - 16 - 6 - 16 - 9 - 12
	if noteWidth < 12 {
		noteWidth = 12
	}
	return []table.Column{
		{Title: "When", Width: 16},
		{Title: "Note", Width: noteWidth},
		{Title: "Mode", Width: 6},
		{Title: "Outcome", Width: 16},
		{Title: "Chars", Width: 9},
	}
}

// Init loads the records.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	s := m.store
	if s == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		recs, err := s.Recent(ctx, history.Filter{Limit: Limit})
		if err != nil {
			return LoadedMsg{Err: err}
		}
		counts, err := s.CountByOutcome(ctx)
		return LoadedMsg{Records: recs, Counts: counts, Err: err}
	}
}

// Update handles messages for the history view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.err = msg.Err
		m.records = msg.Records
		m.counts = msg.Counts
		m.table.SetRows(rows(msg.Records))
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg { return CloseMsg{} }
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case msg.String() == "X":
			return m, m.clear()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) clear() tea.Cmd {
	s := m.store
	if s == nil {
		return nil
	}
	reload := m.load()
	return func() tea.Msg {
		if err := s.Clear(context.Background()); err != nil {
			return LoadedMsg{Err: err}
		}
		return reload()
	}
}

func rows(recs []model.ExportRecord) []table.Row {
	out := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		outcome := string(r.Outcome)
		if r.Warned {
			outcome += " (warned)"
		}
		out = append(out, table.Row{
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.NotePath,
			string(r.Mode),
			outcome,
			fmt.Sprintf("%d", r.Length),
		})
	}
	return out
}

// View renders the history view.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Export history")

	var body string
	switch {
	case m.store == nil:
		body = theme.DimmedStyle.Render("History is disabled. Start notemail with --history to enable it.")
	case m.err != nil:
		body = lipgloss.NewStyle().Foreground(theme.ColorRed).Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.records) == 0:
		body = theme.DimmedStyle.Render("No exports yet.")
	default:
		body = m.table.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, m.summary(), body)
}

// summary renders the per-outcome counts.
func (m Model) summary() string {
	if len(m.counts) == 0 {
		return ""
	}

	outcomes := make([]string, 0, len(m.counts))
	for o := range m.counts {
		outcomes = append(outcomes, string(o))
	}
	sort.Strings(outcomes)

	parts := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		oc := model.ExportOutcome(o)
		parts = append(parts, theme.OutcomeStyle(oc).Render(fmt.Sprintf("%s %d", o, m.counts[oc])))
	}
	return strings.Join(parts, " ")
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetColumns(columns(width))
	m.table.SetHeight(height - 4)
}
