// Package draft writes a note as an unsent RFC 5322 message that mail
// clients open as a draft.
package draft

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/spf13/afero"

	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
)

// Extension is the file extension used for written drafts.
const Extension = ".eml"

// Draft is the content of one message.
type Draft struct {
	Recipient string
	Subject   string
	Text      string

	// HTML, when set, is sent as the preferred alternative to Text.
	HTML string

	Date time.Time
}

// Reader gives access to note content.
type Reader interface {
	ReadCached(ctx context.Context, note model.Note) (string, error)
}

// FromNote builds the draft for note addressed to recipient. The subject
// is the note's base name; a note holding only whitespace gets an empty
// body.
func FromNote(ctx context.Context, r Reader, conv markup.Converter, note model.Note, recipient string, asHTML bool) (Draft, error) {
	content, err := r.ReadCached(ctx, note)
	if err != nil {
		return Draft{}, err
	}

	d := Draft{
		Recipient: recipient,
		Subject:   note.BaseName(),
		Date:      time.Now(),
	}
	if strings.TrimSpace(content) == "" {
		return d, nil
	}

	d.Text = content
	if asHTML {
		d.HTML, err = conv.ToHTML(content)
		if err != nil {
			return Draft{}, err
		}
	}
	return d, nil
}

// Write encodes d as a MIME message. Plain drafts are a single text/plain
// part; HTML drafts are multipart/alternative with the markdown source as
// the text fallback.
func Write(w io.Writer, d Draft) error {
	var h mail.Header
	if d.Date.IsZero() {
		d.Date = time.Now()
	}
	h.SetDate(d.Date)
	h.SetSubject(d.Subject)
	if err := h.GenerateMessageID(); err != nil {
		return fmt.Errorf("generating message id: %w", err)
	}
	h.Set("X-Unsent", "1")

	if d.Recipient != "" {
		if addr, err := mail.ParseAddress(d.Recipient); err == nil {
			h.SetAddressList("To", []*mail.Address{addr})
		} else {
			h.Set("To", d.Recipient)
		}
	}

	if d.HTML == "" {
		h.SetContentType("text/plain", map[string]string{"charset": "utf-8"})
		h.Set("Content-Transfer-Encoding", "quoted-printable")

		body, err := mail.CreateSingleInlineWriter(w, h)
		if err != nil {
			return fmt.Errorf("creating message: %w", err)
		}
		if _, err := io.WriteString(body, d.Text); err != nil {
			return fmt.Errorf("writing body: %w", err)
		}
		return body.Close()
	}

	mw, err := mail.CreateWriter(w, h)
	if err != nil {
		return fmt.Errorf("creating message: %w", err)
	}

	iw, err := mw.CreateInline()
	if err != nil {
		return fmt.Errorf("creating alternative part: %w", err)
	}

	if err := writePart(iw, "text/plain", d.Text); err != nil {
		return err
	}
	if err := writePart(iw, "text/html", d.HTML); err != nil {
		return err
	}

	if err := iw.Close(); err != nil {
		return fmt.Errorf("closing alternative part: %w", err)
	}
	return mw.Close()
}

func writePart(iw *mail.InlineWriter, contentType, body string) error {
	var ph mail.InlineHeader
	ph.SetContentType(contentType, map[string]string{"charset": "utf-8"})
	ph.Set("Content-Transfer-Encoding", "quoted-printable")

	pw, err := iw.CreatePart(ph)
	if err != nil {
		return fmt.Errorf("creating %s part: %w", contentType, err)
	}
	if _, err := io.WriteString(pw, body); err != nil {
		return fmt.Errorf("writing %s part: %w", contentType, err)
	}
	return pw.Close()
}

// WriteFile writes d to path on fsys, creating parent directories. A nil
// fsys selects the operating system file system.
func WriteFile(fsys afero.Fs, path string, d Draft) error {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating draft directory: %w", err)
	}

	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("creating draft %s: %w", path, err)
	}

	if err := Write(f, d); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing draft %s: %w", path, err)
	}
	return nil
}

// DefaultPath returns the draft file name for note in dir.
func DefaultPath(dir string, note model.Note) string {
	return filepath.Join(dir, note.BaseName()+Extension)
}
