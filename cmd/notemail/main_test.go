package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOpener struct {
	uris []string
}

func (o *fakeOpener) Open(_ context.Context, uri string) error {
	o.uris = append(o.uris, uri)
	return nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	c.text = text
	return nil
}

type fixture struct {
	vault     string
	flags     []string
	opener    *fakeOpener
	clipboard *fakeClipboard
}

func newFixture(t *testing.T, files map[string]string) *fixture {
	t.Helper()

	dir := t.TempDir()
	vault := filepath.Join(dir, "vault")
	require.NoError(t, os.MkdirAll(vault, 0o755))
	for name, content := range files {
		p := filepath.Join(vault, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}

	f := &fixture{
		vault: vault,
		flags: []string{
			"--vault", vault,
			"--settings", filepath.Join(dir, "config", "data.json"),
			"--history", filepath.Join(dir, "config", "history.db"),
		},
		opener:    &fakeOpener{},
		clipboard: &fakeClipboard{},
	}

	oldOpener, oldClipboard := systemOpener, systemClipboard
	systemOpener, systemClipboard = f.opener, f.clipboard
	t.Cleanup(func() {
		systemOpener, systemClipboard = oldOpener, oldClipboard
	})

	return f
}

func (f *fixture) run(t *testing.T, cmd string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	all := append([]string{cmd}, f.flags...)
	all = append(all, args...)
	err := run(context.Background(), all, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestSendOpensComposeLink(t *testing.T) {
	f := newFixture(t, map[string]string{"Meeting.md": "Hello **world**"})

	_, _, err := f.run(t, "send", filepath.Join(f.vault, "Meeting.md"))
	require.NoError(t, err)

	require.Len(t, f.opener.uris, 1)
	assert.Equal(t, "mailto:example@example.com?subject=Meeting&body=Hello%20**world**", f.opener.uris[0])
}

func TestSendUsesSavedRecipient(t *testing.T) {
	f := newFixture(t, map[string]string{"Meeting.md": "Hi"})
	settingsPath := f.flags[3]
	require.NoError(t, os.MkdirAll(filepath.Dir(settingsPath), 0o755))
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"defaultRecipient": "team@corp.io"}`), 0o644))

	_, _, err := f.run(t, "send", "--html", filepath.Join(f.vault, "Meeting.md"))
	require.NoError(t, err)

	require.Len(t, f.opener.uris, 1)
	assert.Equal(t, "mailto:team@corp.io?subject=Meeting&body=%3Cp%3EHi%3C%2Fp%3E%0A", f.opener.uris[0])
}

func TestSendTooLargeFailsWithNotice(t *testing.T) {
	f := newFixture(t, map[string]string{"big.md": strings.Repeat("a", 16_000)})

	_, stderr, err := f.run(t, "send", "--policy", "simple", filepath.Join(f.vault, "big.md"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too_large")
	assert.Contains(t, stderr, "The file is too large to be sent via email")
	assert.Empty(t, f.opener.uris)
	assert.Empty(t, f.clipboard.text)
}

func TestSendRejectsOtherFiles(t *testing.T) {
	f := newFixture(t, map[string]string{"diagram.png": "x"})

	_, _, err := f.run(t, "send", filepath.Join(f.vault, "diagram.png"))
	require.Error(t, err)
	assert.Empty(t, f.opener.uris)
}

func TestSendRejectsPathOutsideVault(t *testing.T) {
	f := newFixture(t, nil)
	outside := filepath.Join(t.TempDir(), "x.md")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	_, _, err := f.run(t, "send", outside)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the vault")
}

func TestSendHTMLRejectedBySimplePolicy(t *testing.T) {
	f := newFixture(t, map[string]string{"a.md": "x"})

	_, _, err := f.run(t, "send", "--html", "--policy", "simple", filepath.Join(f.vault, "a.md"))
	require.Error(t, err)
	assert.Empty(t, f.opener.uris)
}

func TestHistoryListsExports(t *testing.T) {
	f := newFixture(t, map[string]string{
		"Meeting.md": "Hello",
		"big.md":     strings.Repeat("a", 16_000),
	})

	_, _, err := f.run(t, "send", filepath.Join(f.vault, "Meeting.md"))
	require.NoError(t, err)
	_, _, err = f.run(t, "send", "--policy", "simple", filepath.Join(f.vault, "big.md"))
	require.Error(t, err)

	out, _, err := f.run(t, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Meeting.md")
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "big.md")
	assert.Contains(t, out, "too_large")
}

func TestHistoryEmpty(t *testing.T) {
	f := newFixture(t, nil)

	out, _, err := f.run(t, "history")
	require.NoError(t, err)
	assert.Equal(t, "No exports yet.\n", out)
}

func TestDraftWritesNextToVault(t *testing.T) {
	f := newFixture(t, map[string]string{"notes/Plan.md": "Ship it"})

	out, _, err := f.run(t, "draft", filepath.Join(f.vault, "notes", "Plan.md"))
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(f.vault, "Plan.eml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Subject: Plan")
	assert.Contains(t, string(data), "example@example.com")
	assert.Contains(t, string(data), "Ship it")
}

func TestDraftToStdout(t *testing.T) {
	f := newFixture(t, map[string]string{"Plan.md": "Ship it"})

	out, _, err := f.run(t, "draft", "--html", "--out", "-", filepath.Join(f.vault, "Plan.md"))
	require.NoError(t, err)
	assert.Contains(t, out, "multipart/alternative")
	assert.Contains(t, out, "text/html")
}

func TestSettingsShowAndReset(t *testing.T) {
	f := newFixture(t, nil)
	settingsPath := f.flags[3]
	require.NoError(t, os.MkdirAll(filepath.Dir(settingsPath), 0o755))
	require.NoError(t, os.WriteFile(settingsPath, []byte(`{"default_recipient": "me@home.org"}`), 0o644))

	out, _, err := f.run(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "me@home.org")
	assert.Contains(t, out, settingsPath)

	// The subcommand comes before the flags.
	var stdout bytes.Buffer
	args := append([]string{"settings", "reset"}, f.flags...)
	require.NoError(t, run(context.Background(), args, &stdout, &bytes.Buffer{}))
	assert.Equal(t, "Settings reset to defaults\n", stdout.String())

	_, err = os.Stat(settingsPath)
	assert.True(t, os.IsNotExist(err))

	out, _, err = f.run(t, "settings", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "example@example.com")
}

func TestUnknownCommand(t *testing.T) {
	err := run(context.Background(), []string{"frobnicate"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown command "frobnicate"`)
}

func TestHelp(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"help"}, &stdout, &bytes.Buffer{}))
	assert.Contains(t, stdout.String(), "notemail send")
}
