package draft

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
)

type mapReader map[string]string

func (m mapReader) ReadCached(_ context.Context, note model.Note) (string, error) {
	c, ok := m[note.Path]
	if !ok {
		return "", errors.New("not found")
	}
	return c, nil
}

// readParts parses a written message the way a mail client would and
// returns the header and each inline part keyed by media type.
func readParts(t *testing.T, raw []byte) (mail.Header, map[string]string) {
	t.Helper()

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	require.NoError(t, err)

	parts := make(map[string]string)
	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		if h, ok := p.Header.(*mail.InlineHeader); ok {
			ct, _, err := h.ContentType()
			require.NoError(t, err)
			body, err := io.ReadAll(p.Body)
			require.NoError(t, err)
			// Quoted-printable turns line breaks into CRLF.
			parts[ct] = strings.ReplaceAll(string(body), "\r\n", "\n")
		}
	}
	return mr.Header, parts
}

func TestWritePlainDraft(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Draft{
		Recipient: "team@corp.io",
		Subject:   "Weekly notes",
		Text:      "Hello **world**\nÜmlaut line",
		Date:      time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "X-Unsent: 1")

	h, parts := readParts(t, buf.Bytes())

	subject, err := h.Subject()
	require.NoError(t, err)
	assert.Equal(t, "Weekly notes", subject)

	to, err := h.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "team@corp.io", to[0].Address)

	assert.Equal(t, "Hello **world**\nÜmlaut line", parts["text/plain"])
	assert.NotContains(t, parts, "text/html")
}

func TestWriteHTMLDraftHasAlternatives(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Draft{
		Recipient: "a@b.c",
		Subject:   "Meeting",
		Text:      "Hello **world**",
		HTML:      "<p>Hello <strong>world</strong></p>\n",
	})
	require.NoError(t, err)

	_, parts := readParts(t, buf.Bytes())
	assert.Equal(t, "Hello **world**", parts["text/plain"])
	assert.Equal(t, "<p>Hello <strong>world</strong></p>\n", parts["text/html"])
}

func TestWriteKeepsUnparseableRecipient(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Draft{Recipient: "not an address", Subject: "s", Text: "x"}))

	assert.Contains(t, buf.String(), "To: not an address")
}

func TestFromNote(t *testing.T) {
	r := mapReader{
		"projects/Plan.md": "# Plan",
		"blank.md":         "  \n",
	}
	conv := markup.NewConverter()
	ctx := context.Background()

	d, err := FromNote(ctx, r, conv, model.Note{Path: "projects/Plan.md", IsFile: true}, "x@y.z", true)
	require.NoError(t, err)
	assert.Equal(t, "Plan", d.Subject)
	assert.Equal(t, "x@y.z", d.Recipient)
	assert.Equal(t, "# Plan", d.Text)
	assert.Contains(t, d.HTML, "<h1>Plan</h1>")

	d, err = FromNote(ctx, r, conv, model.Note{Path: "blank.md", IsFile: true}, "x@y.z", true)
	require.NoError(t, err)
	assert.Empty(t, d.Text)
	assert.Empty(t, d.HTML)

	_, err = FromNote(ctx, r, conv, model.Note{Path: "missing.md", IsFile: true}, "x@y.z", false)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	note := model.Note{Path: "daily/Today.md", IsFile: true}
	path := DefaultPath("/drafts/out", note)

	assert.Equal(t, filepath.Join("/drafts/out", "Today.eml"), path)
	require.NoError(t, WriteFile(fs, path, Draft{Subject: "Today", Text: "hi"}))

	raw, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	_, parts := readParts(t, raw)
	assert.Equal(t, "hi", parts["text/plain"])
}

func TestWriteFileReportsCreateFailure(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	err := WriteFile(fs, "/drafts/Today.eml", Draft{Subject: "Today"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "draft")
}
