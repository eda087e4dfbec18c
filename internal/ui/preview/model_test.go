package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
)

type stubReader map[string]string

func (s stubReader) ReadCached(_ context.Context, note model.Note) (string, error) {
	c, ok := s[note.Path]
	if !ok {
		return "", errors.New("missing")
	}
	return c, nil
}

func newModel() Model {
	return New(markup.NewPreviewer("notty"), Limits{Warn: 10, Max: 20}, 60, 20)
}

func TestLoadAndRender(t *testing.T) {
	m := newModel()
	note := model.Note{Path: "agenda.md", IsFile: true}
	m.SetNote(note)
	assert.Contains(t, m.View(), "Loading...")

	msg := Load(stubReader{"agenda.md": "# Agenda\n\nbudget"}, note)()
	m, _ = m.Update(msg)

	out := m.View()
	assert.Contains(t, out, "agenda.md")
	assert.Contains(t, out, "16 chars")
	assert.Contains(t, out, "budget")
}

func TestStaleResultIgnored(t *testing.T) {
	m := newModel()
	m.SetNote(model.Note{Path: "b.md", IsFile: true})

	m, _ = m.Update(LoadedMsg{Note: model.Note{Path: "a.md"}, Content: "old"})
	assert.Contains(t, m.View(), "Loading...")
}

func TestReadErrorShown(t *testing.T) {
	m := newModel()
	note := model.Note{Path: "gone.md", IsFile: true}
	m.SetNote(note)

	m, _ = m.Update(Load(stubReader{}, note)())
	assert.Contains(t, m.View(), "Cannot read gone.md")
}

func TestNonMarkdownIsNotRendered(t *testing.T) {
	m := newModel()
	note := model.Note{Path: "data.csv", IsFile: true}
	m.SetNote(note)

	m, _ = m.Update(LoadedMsg{Note: note, Content: "a,b"})
	assert.Contains(t, m.View(), "Only markdown notes are previewed.")

	got, ok := m.Note()
	require.True(t, ok)
	assert.Equal(t, "data.csv", got.Path)
}
