package history

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS exports (
	id         TEXT PRIMARY KEY,
	note_path  TEXT NOT NULL,
	mode       TEXT NOT NULL CHECK(mode IN ('text', 'html')),
	outcome    TEXT NOT NULL,
	length     INTEGER NOT NULL DEFAULT 0,
	warned     INTEGER NOT NULL DEFAULT 0 CHECK(warned IN (0, 1)),
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_exports_created_at ON exports(created_at);
CREATE INDEX IF NOT EXISTS idx_exports_note_path ON exports(note_path);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE INDEX IF NOT EXISTS idx_exports_outcome ON exports(outcome);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
}
