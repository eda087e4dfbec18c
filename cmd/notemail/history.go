package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nhle/notemail/internal/history"
	"github.com/nhle/notemail/internal/theme"
)

func runHistory(ctx context.Context, args []string, stdout io.Writer) error {
	fs := newFlagSet("history")
	limit := fs.Int("limit", 20, "number of exports to list")
	if help, err := parseFlags(fs, args); help || err != nil {
		return err
	}

	e, err := openEnv(ctx, fs, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if e.history == nil {
		return errors.New("history is disabled")
	}

	recs, err := e.history.Recent(ctx, history.Filter{Limit: *limit})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Fprintln(stdout, "No exports yet.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.ColorGray)).
		Headers("WHEN", "NOTE", "MODE", "OUTCOME", "CHARS")
	for _, r := range recs {
		outcome := string(r.Outcome)
		if r.Warned {
			outcome += " (warned)"
		}
		t.Row(
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.NotePath,
			string(r.Mode),
			outcome,
			fmt.Sprintf("%d", r.Length),
		)
	}

	fmt.Fprintln(stdout, t.String())
	return nil
}
