package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'timelinedb' component.
	//
	// Timestamps are stored as canonical ISO-8601 text (YYYY-MM-DDTHH:MM:SS)
	// so lexicographic comparison matches chronological order. Tags are stored
	// as a JSON array in a single TEXT column.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS lifelog_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS events (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    description TEXT,
    category TEXT NOT NULL DEFAULT 'personal',
    timestamp TEXT NOT NULL,
    tags TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp);

CREATE INDEX IF NOT EXISTS idx_events_category_timestamp ON events(category, timestamp);
`
)
