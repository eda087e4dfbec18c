package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/notice"
	"github.com/nhle/notemail/internal/theme"
)

// Layout manages the terminal layout dimensions: a header, the content
// area, a notice line and the status bar.
type Layout struct {
	Width           int
	Height          int
	HeaderHeight    int
	NoticeHeight    int
	StatusBarHeight int
}

// NewLayout creates a Layout with the given terminal dimensions.
// The header, notice line and status bar are one row each.
func NewLayout(width, height int) Layout {
	return Layout{
		Width:           width,
		Height:          height,
		HeaderHeight:    1,
		NoticeHeight:    1,
		StatusBarHeight: 1,
	}
}

// ContentWidth returns the full available width.
func (l Layout) ContentWidth() int {
	return l.Width
}

// ContentHeight returns the height available for the main content area.
func (l Layout) ContentHeight() int {
	h := l.Height - l.HeaderHeight - l.NoticeHeight - l.StatusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// SplitWidth divides the content width between the note list and the
// preview pane.
func (l Layout) SplitWidth() (left, right int) {
	left = l.Width * 2 / 5
	if left < 24 {
		left = 24
	}
	if left > l.Width {
		left = l.Width
	}
	return left, l.Width - left
}

// RenderHeader renders the top header bar with a title and vault status.
func (l Layout) RenderHeader(title string, status string) string {
	titleRendered := theme.HeaderStyle.Render(title)

	statusRendered := theme.HeaderStyle.
		Align(lipgloss.Right).
		Render(status)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		l.fill(theme.HeaderStyle, lipgloss.Width(titleRendered)+lipgloss.Width(statusRendered)),
		statusRendered,
	)
}

// RenderNotice renders the most recent notice, or an empty line.
func (l Layout) RenderNotice(n *notice.Notice) string {
	if n == nil {
		return lipgloss.NewStyle().Width(l.Width).Render("")
	}
	return notice.Style(n.Level).
		Padding(0, 1).
		MaxWidth(l.Width).
		Render(n.Text)
}

// RenderStatusBar renders the bottom status bar with keyboard hints.
func (l Layout) RenderStatusBar(hints string) string {
	rendered := theme.StatusBarStyle.Render(hints)
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		rendered,
		l.fill(theme.StatusBarStyle, lipgloss.Width(rendered)),
	)
}

// fill pads a bar rendered in style out to the full width.
func (l Layout) fill(style lipgloss.Style, used int) string {
	gap := l.Width - used
	if gap < 0 {
		gap = 0
	}
	return lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
}

// RenderWithFrame composes a full terminal view by vertically joining
// the header, content area, notice line and status bar.
func (l Layout) RenderWithFrame(
	header string,
	content string,
	noticeLine string,
	statusBar string,
) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		content,
		noticeLine,
		statusBar,
	)
}
