// Package menu defines the per-file context menu and the contract for
// contributing entries to it.
package menu

import (
	"context"

	"github.com/nhle/notemail/internal/model"
)

// Action is one activatable menu entry.
type Action struct {
	Title string
	Icon  string

	// OnActivate runs the action. It is called off the UI loop.
	OnActivate func(ctx context.Context) error
}

// Contributor adds entries to the menu built for a note.
type Contributor interface {
	Contribute(note model.Note) []Action
}

// ContributorFunc adapts a function to Contributor.
type ContributorFunc func(note model.Note) []Action

// Contribute calls f(note).
func (f ContributorFunc) Contribute(note model.Note) []Action { return f(note) }

// Menu is the context menu for a single note.
type Menu struct {
	Note    model.Note
	actions []Action
}

// AddAction appends an entry.
func (m *Menu) AddAction(title, icon string, onActivate func(ctx context.Context) error) {
	m.actions = append(m.actions, Action{
		Title:      title,
		Icon:       icon,
		OnActivate: onActivate,
	})
}

// Actions returns the entries in insertion order.
func (m *Menu) Actions() []Action {
	return m.actions
}

// Empty reports whether no entry was contributed.
func (m *Menu) Empty() bool {
	return len(m.actions) == 0
}

// Registry holds the contributors subscribed to menu construction.
type Registry struct {
	contributors []Contributor
}

// Register subscribes c to every subsequent Build.
func (r *Registry) Register(c Contributor) {
	r.contributors = append(r.contributors, c)
}

// Build constructs the menu for note by asking every contributor in
// registration order.
func (r *Registry) Build(note model.Note) *Menu {
	m := &Menu{Note: note}
	for _, c := range r.contributors {
		for _, a := range c.Contribute(note) {
			m.AddAction(a.Title, a.Icon, a.OnActivate)
		}
	}
	return m
}
