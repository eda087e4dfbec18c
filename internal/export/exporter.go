// Package export turns a markdown note into a pre-filled email draft in the
// user's mail client.
package export

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nhle/notemail/internal/clipboard"
	"github.com/nhle/notemail/internal/launcher"
	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/menu"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/notice"
)

// Menu entry titles and icon.
const (
	TitleSend     = "Send via email"
	TitleSendHTML = "Send via email as HTML"
	Icon          = "mail"
)

// Notice texts shown during an export.
const (
	MsgReadFailed     = "Something went wrong while reading the file"
	MsgConvertFailed  = "Something went wrong while converting the file"
	MsgTooLarge       = "The file is too large to be sent via email"
	MsgTooLargeCopied = "The file is too large to be sent via email. But file link is copied to clipboard, you can attach it manually."
	MsgLargeWarning   = "Warning: large file size may cause issues with some email clients"
	MsgLinkCopied     = "File link copied to clipboard"
	MsgLinkCopyFailed = "Failed to copy file link to clipboard"
	MsgOpenMailFailed = "Failed to open the mail client"
)

// Reader gives access to note content and location.
type Reader interface {
	ReadCached(ctx context.Context, note model.Note) (string, error)
	AbsPath(note model.Note) string
}

// Recorder stores the outcome of each export.
type Recorder interface {
	Record(ctx context.Context, rec model.ExportRecord) error
}

// Deps bundles the collaborators an Exporter calls.
type Deps struct {
	Reader    Reader
	Converter markup.Converter
	Clipboard clipboard.Writer
	Opener    launcher.Opener
	Notifier  notice.Notifier

	// Recorder is optional.
	Recorder Recorder
}

// Result describes a finished export.
type Result struct {
	Outcome model.ExportOutcome

	// Length is the note length in characters. Zero when the read failed.
	Length int

	// Warned is set when the large-file warning was shown.
	Warned bool

	// Copied is set when the clipboard fallback succeeded.
	Copied bool

	// URI is the compose link handed to the mail client.
	URI string
}

// Exporter contributes the send actions to note menus and runs exports.
type Exporter struct {
	settings *model.Settings
	deps     Deps
	policy   Policy
	now      func() time.Time
}

// New returns an Exporter reading the recipient from the live settings
// record on every export.
func New(settings *model.Settings, deps Deps, policy Policy) *Exporter {
	return &Exporter{
		settings: settings,
		deps:     deps,
		policy:   policy,
		now:      time.Now,
	}
}

// Policy returns the size policy in effect.
func (e *Exporter) Policy() Policy {
	return e.policy
}

// Contribute implements menu.Contributor. Only markdown files get entries.
//
// The returned actions carry the recipient as it is when Contribute runs.
// Hosts build the menu again at activation, on the goroutine that owns the
// settings record, so a displayed menu never holds a stale recipient.
func (e *Exporter) Contribute(note model.Note) []menu.Action {
	if !note.Eligible() {
		return nil
	}

	recipient := e.settings.DefaultRecipient

	actions := []menu.Action{{
		Title: TitleSend,
		Icon:  Icon,
		OnActivate: func(ctx context.Context) error {
			_, err := e.run(ctx, note, false, recipient)
			return err
		},
	}}

	if e.policy.OfferHTML {
		actions = append(actions, menu.Action{
			Title: TitleSendHTML,
			Icon:  Icon,
			OnActivate: func(ctx context.Context) error {
				_, err := e.run(ctx, note, true, recipient)
				return err
			},
		})
	}

	return actions
}

// Export sends note to the current default recipient. A note that is too
// large is a policy outcome, not an error; read, conversion and launcher
// failures are returned after the user has been notified.
func (e *Exporter) Export(ctx context.Context, note model.Note, asHTML bool) (Result, error) {
	if !note.Eligible() {
		return Result{}, ErrNotEligible
	}
	return e.run(ctx, note, asHTML, e.settings.DefaultRecipient)
}

func (e *Exporter) run(ctx context.Context, note model.Note, asHTML bool, recipient string) (res Result, err error) {
	mode := model.ExportModeText
	if asHTML {
		mode = model.ExportModeHTML
	}
	defer func() { e.record(ctx, note, mode, res) }()

	content, err := e.deps.Reader.ReadCached(ctx, note)
	if err != nil {
		log.Printf("export %s: %v", note.Path, err)
		e.notify(notice.LevelError, MsgReadFailed)
		return Result{Outcome: model.OutcomeReadFailed}, &ReadError{Path: note.Path, Err: err}
	}

	res.Length = utf8.RuneCountInString(content)

	switch e.policy.Classify(res.Length) {
	case SizeTooLarge:
		res.Outcome = model.OutcomeTooLarge
		if !e.policy.ClipboardFallback {
			e.notify(notice.LevelError, MsgTooLarge)
			return res, nil
		}
		e.notify(notice.LevelWarning, MsgTooLargeCopied)
		res.Copied = e.copyLink(ctx, note)
		return res, nil
	case SizeWarn:
		res.Warned = true
		e.notify(notice.LevelWarning, MsgLargeWarning)
	}

	body := ""
	if strings.TrimSpace(content) != "" {
		body = content
		if asHTML {
			body, err = e.deps.Converter.ToHTML(content)
			if err != nil {
				log.Printf("export %s: %v", note.Path, err)
				e.notify(notice.LevelError, MsgConvertFailed)
				res.Outcome = model.OutcomeConvertFailed
				return res, err
			}
		}
	}

	req := model.ComposeRequest{
		Recipient: recipient,
		Subject:   note.BaseName(),
		Body:      body,
	}
	res.URI = req.URI()

	if err := e.deps.Opener.Open(ctx, res.URI); err != nil {
		log.Printf("export %s: %v", note.Path, err)
		e.notify(notice.LevelError, MsgOpenMailFailed)
		res.Outcome = model.OutcomeHandoffFailed
		return res, err
	}

	res.Outcome = model.OutcomeSent
	return res, nil
}

// copyLink places the note's absolute path on the clipboard. Failures are
// logged and reported, never retried.
func (e *Exporter) copyLink(ctx context.Context, note model.Note) bool {
	if err := e.deps.Clipboard.WriteText(ctx, e.deps.Reader.AbsPath(note)); err != nil {
		log.Printf("copying file link for %s: %v", note.Path, err)
		e.notify(notice.LevelError, MsgLinkCopyFailed)
		return false
	}
	e.notify(notice.LevelInfo, MsgLinkCopied)
	return true
}

func (e *Exporter) notify(level notice.Level, text string) {
	if e.deps.Notifier == nil {
		return
	}
	e.deps.Notifier.Notify(notice.Notice{Level: level, Text: text})
}

func (e *Exporter) record(ctx context.Context, note model.Note, mode model.ExportMode, res Result) {
	if e.deps.Recorder == nil {
		return
	}
	rec := model.ExportRecord{
		ID:        uuid.New().String(),
		NotePath:  note.Path,
		Mode:      mode,
		Outcome:   res.Outcome,
		Length:    res.Length,
		Warned:    res.Warned,
		CreatedAt: e.now().UTC(),
	}
	if err := e.deps.Recorder.Record(ctx, rec); err != nil {
		log.Printf("recording export of %s: %v", note.Path, err)
	}
}
