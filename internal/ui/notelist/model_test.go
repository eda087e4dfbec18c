package notelist

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notemail/internal/keys"
	"github.com/nhle/notemail/internal/model"
)

func sampleNotes() []model.Note {
	return []model.Note{
		{Path: "daily/2026-05-01.md", IsFile: true, Size: 120},
		{Path: "ideas.md", IsFile: true, Size: 4096},
		{Path: "logo.png", IsFile: true, Size: 2 << 20},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestSelectOpensMenu(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetNotes(sampleNotes())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, OpenMenuMsg{Note: sampleNotes()[0]}, msgs[0])
}

func TestSendShortcuts(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetNotes(sampleNotes())

	_, cmd := m.Update(keyRunes("M"))
	msgs := run(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, SendMsg{Note: sampleNotes()[0], HTML: true}, msgs[0])

	_, cmd = m.Update(keyRunes("m"))
	msgs = run(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, SendMsg{Note: sampleNotes()[0], HTML: false}, msgs[0])
}

func TestFilterNarrowsList(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetNotes(sampleNotes())

	m, _ = m.Update(keyRunes("/"))
	require.True(t, m.Searching())

	for _, r := range "IDEA" {
		m, _ = m.Update(keyRunes(string(r)))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, m.Searching())
	assert.Equal(t, "IDEA", m.Query())

	note, ok := m.SelectedNote()
	require.True(t, ok)
	assert.Equal(t, "ideas.md", note.Path)

	m, _ = m.Update(keyRunes("/"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Query())
}

func TestSetNotesKeepsSelection(t *testing.T) {
	m := New(keys.DefaultKeyMap(), 80, 20)
	m.SetNotes(sampleNotes())

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	note, _ := m.SelectedNote()
	require.Equal(t, "ideas.md", note.Path)

	notes := append([]model.Note{{Path: "aaa.md", IsFile: true}}, sampleNotes()...)
	m.SetNotes(notes)

	note, _ = m.SelectedNote()
	assert.Equal(t, "ideas.md", note.Path)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "120 B", humanSize(120))
	assert.Equal(t, "4.0 KB", humanSize(4096))
	assert.Equal(t, "2.0 MB", humanSize(2<<20))
}

func TestRelativeTime(t *testing.T) {
	assert.Equal(t, "", relativeTime(time.Time{}))
	assert.Equal(t, "just now", relativeTime(time.Now()))
	assert.Equal(t, "5m ago", relativeTime(time.Now().Add(-5*time.Minute-time.Second)))
}

func TestExtLabel(t *testing.T) {
	assert.Equal(t, "MD ", extLabel("md"))
	assert.Equal(t, "---", extLabel(""))
	assert.Equal(t, "JPE", extLabel("jpeg"))
}
