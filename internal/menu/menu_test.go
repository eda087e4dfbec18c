package menu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notemail/internal/model"
)

func TestRegistryBuildsInRegistrationOrder(t *testing.T) {
	var r Registry
	r.Register(ContributorFunc(func(model.Note) []Action {
		return []Action{{Title: "first", Icon: "mail"}}
	}))
	r.Register(ContributorFunc(func(model.Note) []Action {
		return []Action{{Title: "second"}, {Title: "third"}}
	}))

	m := r.Build(model.Note{Path: "a.md", IsFile: true})

	require.Len(t, m.Actions(), 3)
	assert.Equal(t, "first", m.Actions()[0].Title)
	assert.Equal(t, "mail", m.Actions()[0].Icon)
	assert.Equal(t, "third", m.Actions()[2].Title)
	assert.Equal(t, "a.md", m.Note.Path)
}

func TestRegistryEmptyMenu(t *testing.T) {
	var r Registry
	r.Register(ContributorFunc(func(model.Note) []Action { return nil }))

	m := r.Build(model.Note{Path: "a.txt", IsFile: true})
	assert.True(t, m.Empty())
}

func TestAddActionKeepsCallback(t *testing.T) {
	called := false
	var m Menu
	m.AddAction("Run", "", func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, m.Actions()[0].OnActivate(context.Background()))
	assert.True(t, called)
}
