package help

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/notemail/internal/export"
	"github.com/nhle/notemail/internal/keys"
)

func TestViewListsBindings(t *testing.T) {
	m := New(keys.DefaultKeyMap(), export.RichPolicy, 100, 40)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
	assert.Contains(t, view, "command palette")
	assert.Contains(t, view, "history")
}

func TestSendingUnderRichPolicy(t *testing.T) {
	m := New(keys.DefaultKeyMap(), export.RichPolicy, 100, 40)

	view := m.View()
	assert.Contains(t, view, "Sending")
	assert.Contains(t, view, "send the note as plain text")
	assert.Contains(t, view, "convert the note to HTML and send it")
	assert.Contains(t, view, "Size policy: rich")
	assert.Contains(t, view, "warns above 100000 characters")
	assert.Contains(t, view, "refuses from 500000 characters and copies the file link instead")
}

func TestSendingUnderSimplePolicy(t *testing.T) {
	m := New(keys.DefaultKeyMap(), export.SimplePolicy, 100, 40)

	view := m.View()
	assert.Contains(t, view, "not available with the simple size policy")
	assert.NotContains(t, view, "convert the note to HTML")
	assert.NotContains(t, view, "warns above")
	assert.Contains(t, view, "refuses from 16000 characters")
	assert.NotContains(t, view, "copies the file link")
}

func TestViewWithoutPolicy(t *testing.T) {
	m := New(keys.DefaultKeyMap(), export.Policy{}, 100, 40)
	assert.NotContains(t, m.View(), "Sending")
}
