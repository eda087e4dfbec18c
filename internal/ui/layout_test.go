package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/nhle/notemail/internal/notice"
)

func TestContentHeightExcludesChrome(t *testing.T) {
	l := NewLayout(80, 24)
	assert.Equal(t, 21, l.ContentHeight())

	assert.Equal(t, 0, NewLayout(80, 2).ContentHeight())
}

func TestSplitWidth(t *testing.T) {
	left, right := NewLayout(100, 30).SplitWidth()
	assert.Equal(t, 40, left)
	assert.Equal(t, 60, right)

	left, right = NewLayout(30, 30).SplitWidth()
	assert.Equal(t, 24, left)
	assert.Equal(t, 6, right)
}

func TestBarsSpanFullWidth(t *testing.T) {
	l := NewLayout(60, 20)

	assert.Equal(t, 60, lipgloss.Width(l.RenderHeader("notemail", "12 notes")))
	assert.Equal(t, 60, lipgloss.Width(l.RenderStatusBar("q quit")))
}

func TestRenderNotice(t *testing.T) {
	l := NewLayout(60, 20)

	out := l.RenderNotice(&notice.Notice{Level: notice.LevelInfo, Text: "File link copied to clipboard"})
	assert.Contains(t, out, "File link copied to clipboard")

	assert.NotContains(t, l.RenderNotice(nil), "clipboard")
}
