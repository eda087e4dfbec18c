package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeURIComponent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"unreserved untouched", "AZaz09-_.!~*'()", "AZaz09-_.!~*'()"},
		{"space", "Hello world", "Hello%20world"},
		{"reserved", "a&b=c?d/e#f+g", "a%26b%3Dc%3Fd%2Fe%23f%2Bg"},
		{"newline", "line1\nline2", "line1%0Aline2"},
		{"markdown", "Hello **world**", "Hello%20**world**"},
		{"multibyte", "café", "caf%C3%A9"},
		{"emoji", "✉", "%E2%9C%89"},
		{"percent", "100%", "100%25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EncodeURIComponent(tt.in))
		})
	}
}

func TestComposeRequestURI(t *testing.T) {
	req := ComposeRequest{
		Recipient: "me@example.com",
		Subject:   "Meeting notes",
		Body:      "<p>Hi & bye</p>",
	}

	assert.Equal(t,
		"mailto:me@example.com?subject=Meeting%20notes&body=%3Cp%3EHi%20%26%20bye%3C%2Fp%3E",
		req.URI(),
	)
}

func TestComposeRequestURIEmptyBody(t *testing.T) {
	req := ComposeRequest{Recipient: "a@b.c", Subject: "x"}
	assert.Equal(t, "mailto:a@b.c?subject=x&body=", req.URI())
}

func TestNoteNames(t *testing.T) {
	n := Note{Path: "projects/q3 plan.md", IsFile: true}

	assert.Equal(t, "q3 plan.md", n.Name())
	assert.Equal(t, "q3 plan", n.BaseName())
	assert.Equal(t, "md", n.Extension())
	assert.True(t, n.Eligible())
}

func TestNoteEligible(t *testing.T) {
	tests := []struct {
		note Note
		want bool
	}{
		{Note{Path: "notes.md", IsFile: true}, true},
		{Note{Path: "notes.txt", IsFile: true}, false},
		{Note{Path: "notes.MD", IsFile: true}, false},
		{Note{Path: "archive.md", IsFile: false}, false},
		{Note{Path: "README", IsFile: true}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.note.Eligible(), tt.note.Path)
	}
}

func TestMergeSettings(t *testing.T) {
	require.Equal(t, DefaultSettings(), MergeSettings(nil))
	require.Equal(t, DefaultSettings(), MergeSettings(&PartialSettings{}))

	addr := "team@example.org"
	got := MergeSettings(&PartialSettings{DefaultRecipient: &addr})
	assert.Equal(t, "team@example.org", got.DefaultRecipient)

	empty := ""
	got = MergeSettings(&PartialSettings{DefaultRecipient: &empty})
	assert.Equal(t, "", got.DefaultRecipient, "persisted empty value wins over default")
}
