package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/notemail/internal/model"
)

// SQLiteStore implements Store using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, enables
// WAL mode, and runs any pending schema migrations. Use ":memory:" for a
// throwaway database.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// An in-memory database exists per connection.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// Record appends rec. A missing ID or timestamp is filled in.
func (s *SQLiteStore) Record(ctx context.Context, rec model.ExportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exports (id, note_path, mode, outcome, length, warned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.NotePath, string(rec.Mode), string(rec.Outcome),
		rec.Length, boolToInt(rec.Warned), rec.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording export of %s: %w", rec.NotePath, err)
	}
	return nil
}

// Recent returns records matching filter, newest first.
func (s *SQLiteStore) Recent(ctx context.Context, filter Filter) ([]model.ExportRecord, error) {
	var conditions []string
	var args []interface{}

	if filter.NotePath != nil {
		conditions = append(conditions, "note_path = ?")
		args = append(args, *filter.NotePath)
	}
	if filter.Outcome != nil {
		conditions = append(conditions, "outcome = ?")
		args = append(args, string(*filter.Outcome))
	}

	query := "SELECT id, note_path, mode, outcome, length, warned, created_at FROM exports"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying exports: %w", err)
	}
	defer rows.Close()

	var records []model.ExportRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// CountByOutcome returns how many exports ended in each outcome.
func (s *SQLiteStore) CountByOutcome(ctx context.Context) (map[model.ExportOutcome]int, error) {
	var rows []struct {
		Outcome string `db:"outcome"`
		N       int    `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT outcome, COUNT(*) AS n FROM exports GROUP BY outcome",
	)
	if err != nil {
		return nil, fmt.Errorf("counting exports: %w", err)
	}

	counts := make(map[model.ExportOutcome]int, len(rows))
	for _, r := range rows {
		counts[model.ExportOutcome(r.Outcome)] = r.N
	}
	return counts, nil
}

// Clear deletes every record.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM exports"); err != nil {
		return fmt.Errorf("clearing export history: %w", err)
	}
	return nil
}

// scanRecord scans a single export row.
func scanRecord(rows *sqlx.Rows) (model.ExportRecord, error) {
	var (
		rec       model.ExportRecord
		mode      string
		outcome   string
		warned    int
		createdAt time.Time
	)

	err := rows.Scan(
		&rec.ID, &rec.NotePath, &mode, &outcome,
		&rec.Length, &warned, &createdAt,
	)
	if err != nil {
		return model.ExportRecord{}, fmt.Errorf("scanning export row: %w", err)
	}

	rec.Mode = model.ExportMode(mode)
	rec.Outcome = model.ExportOutcome(outcome)
	rec.Warned = warned != 0
	rec.CreatedAt = createdAt

	return rec, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
