package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/nhle/notemail/internal/draft"
	"github.com/nhle/notemail/internal/markup"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/internal/notice"
)

// runSend performs one export of the named note, printing notices to
// stderr. It fails unless the compose link was handed off.
func runSend(ctx context.Context, args []string, stderr io.Writer) error {
	fs := newFlagSet("send")
	asHTML := fs.Bool("html", false, "convert the note to HTML")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: notemail send [--html] FILE")
	}

	e, err := openEnv(ctx, fs, true)
	if err != nil {
		return err
	}
	defer e.Close()

	note, err := e.vault.Resolve(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	exp, err := e.exporter(notice.NewWriter(stderr))
	if err != nil {
		return err
	}
	if *asHTML && !exp.Policy().OfferHTML {
		return fmt.Errorf("HTML export is not available with the %s size policy", exp.Policy().Name)
	}

	res, err := exp.Export(ctx, note, *asHTML)
	if err != nil {
		return err
	}
	if res.Outcome != model.OutcomeSent {
		return fmt.Errorf("%s was not sent: %s", note.Path, res.Outcome)
	}
	return nil
}

// runDraft writes the named note as an .eml draft and prints its path.
// --out - writes the message to stdout instead.
func runDraft(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("draft")
	asHTML := fs.Bool("html", false, "include an HTML alternative")
	out := fs.String("out", "", "output file (default: <vault>/<note>.eml, - for stdout)")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: notemail draft [--html] [--out FILE] FILE")
	}

	e, err := openEnv(ctx, fs, false)
	if err != nil {
		return err
	}
	defer e.Close()

	note, err := e.vault.Resolve(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if !note.Eligible() {
		return fmt.Errorf("%s: only markdown files can be drafted", note.Path)
	}

	d, err := draft.FromNote(ctx, e.vault, markup.NewConverter(), note, e.settings.Settings().DefaultRecipient, *asHTML)
	if err != nil {
		return fmt.Errorf("building draft: %w", err)
	}

	if *out == "-" {
		return draft.Write(stdout, d)
	}

	path := *out
	if path == "" {
		path = draft.DefaultPath(e.vault.Root(), note)
	}
	if err := draft.WriteFile(nil, path, d); err != nil {
		return err
	}
	fmt.Fprintln(stdout, path)
	return nil
}
