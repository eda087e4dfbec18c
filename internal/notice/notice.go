// Package notice delivers short transient messages to the user.
package notice

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/notemail/internal/theme"
)

// Level classifies a notice for styling.
type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

// String returns the lower-case level name.
func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a single user-visible message.
type Notice struct {
	Level Level
	Text  string
}

// Notifier shows notices. Implementations must not block.
type Notifier interface {
	Notify(n Notice)
}

// Func adapts a function to Notifier.
type Func func(Notice)

// Notify calls f(n).
func (f Func) Notify(n Notice) { f(n) }

// Msg is the tea.Msg produced by Channel.Wait.
type Msg Notice

// Channel buffers notices produced off the UI loop so a Bubble Tea program
// can pick them up one at a time.
type Channel struct {
	ch chan Notice
}

// NewChannel returns a Channel holding up to size pending notices.
func NewChannel(size int) *Channel {
	if size <= 0 {
		size = 16
	}
	return &Channel{ch: make(chan Notice, size)}
}

// Notify queues n. When the buffer is full the notice is logged and dropped.
func (c *Channel) Notify(n Notice) {
	select {
	case c.ch <- n:
	default:
		log.Printf("notice dropped (%s): %s", n.Level, n.Text)
	}
}

// Wait returns a tea.Cmd that blocks until the next notice arrives. Call it
// again after handling each Msg to keep listening.
func (c *Channel) Wait() tea.Cmd {
	return func() tea.Msg {
		n, ok := <-c.ch
		if !ok {
			return nil
		}
		return Msg(n)
	}
}

// Writer prints notices as styled lines, for command-line use.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer printing to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Notify prints n followed by a newline.
func (w *Writer) Notify(n Notice) {
	fmt.Fprintln(w.w, Style(n.Level).Render(n.Text))
}

// Style returns the text style used for a level.
func Style(l Level) lipgloss.Style {
	switch l {
	case LevelWarning:
		return lipgloss.NewStyle().Foreground(theme.ColorYellow)
	case LevelError:
		return lipgloss.NewStyle().Foreground(theme.ColorRed)
	default:
		return lipgloss.NewStyle().Foreground(theme.ColorGreen)
	}
}
