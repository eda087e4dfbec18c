package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/notemail/internal/history"
	"github.com/nhle/notemail/internal/model"
	"github.com/nhle/notemail/tests/testutil"
)

func record(path string, outcome model.ExportOutcome, at time.Time) model.ExportRecord {
	return model.ExportRecord{
		NotePath:  path,
		Mode:      model.ExportModeText,
		Outcome:   outcome,
		Length:    42,
		CreatedAt: at,
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := testutil.NewTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Record(ctx, record("a.md", model.OutcomeSent, base)))
	require.NoError(t, s.Record(ctx, record("b.md", model.OutcomeTooLarge, base.Add(time.Minute))))
	warned := record("c.md", model.OutcomeSent, base.Add(2*time.Minute))
	warned.Mode = model.ExportModeHTML
	warned.Warned = true
	require.NoError(t, s.Record(ctx, warned))

	recs, err := s.Recent(ctx, history.Filter{})
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "c.md", recs[0].NotePath)
	assert.Equal(t, model.ExportModeHTML, recs[0].Mode)
	assert.True(t, recs[0].Warned)
	assert.NotEmpty(t, recs[0].ID)
	assert.True(t, recs[0].CreatedAt.Equal(base.Add(2*time.Minute)))

	assert.Equal(t, "b.md", recs[1].NotePath)
	assert.Equal(t, model.OutcomeTooLarge, recs[1].Outcome)
	assert.Equal(t, "a.md", recs[2].NotePath)
	assert.Equal(t, 42, recs[2].Length)
}

func TestRecentFilters(t *testing.T) {
	s := testutil.NewTestHistory(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	for i, p := range []string{"a.md", "b.md", "a.md", "a.md"} {
		outcome := model.OutcomeSent
		if i == 2 {
			outcome = model.OutcomeReadFailed
		}
		require.NoError(t, s.Record(ctx, record(p, outcome, base.Add(time.Duration(i)*time.Minute))))
	}

	path := "a.md"
	recs, err := s.Recent(ctx, history.Filter{NotePath: &path})
	require.NoError(t, err)
	assert.Len(t, recs, 3)

	failed := model.OutcomeReadFailed
	recs, err = s.Recent(ctx, history.Filter{Outcome: &failed})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "a.md", recs[0].NotePath)

	recs, err = s.Recent(ctx, history.Filter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestCountByOutcomeAndClear(t *testing.T) {
	s := testutil.NewTestHistory(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Record(ctx, record("a.md", model.OutcomeSent, now)))
	require.NoError(t, s.Record(ctx, record("b.md", model.OutcomeSent, now)))
	require.NoError(t, s.Record(ctx, record("c.md", model.OutcomeTooLarge, now)))

	counts, err := s.CountByOutcome(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts[model.OutcomeSent])
	assert.Equal(t, 1, counts[model.OutcomeTooLarge])
	assert.Zero(t, counts[model.OutcomeReadFailed])

	require.NoError(t, s.Clear(ctx))

	recs, err := s.Recent(ctx, history.Filter{})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecordFillsIDAndTime(t *testing.T) {
	s := testutil.NewTestHistory(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, model.ExportRecord{
		NotePath: "n.md",
		Mode:     model.ExportModeText,
		Outcome:  model.OutcomeSent,
	}))

	recs, err := s.Recent(ctx, history.Filter{})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.NotEmpty(t, recs[0].ID)
	assert.False(t, recs[0].CreatedAt.IsZero())
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	ctx := context.Background()

	s, err := history.NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Record(ctx, record("a.md", model.OutcomeSent, time.Now())))
	require.NoError(t, s.Close())

	s, err = history.NewSQLiteStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	recs, err := s.Recent(ctx, history.Filter{})
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestSQLiteStoreSatisfiesRecorder(t *testing.T) {
	var _ history.Store = testutil.NewTestHistory(t)
}
