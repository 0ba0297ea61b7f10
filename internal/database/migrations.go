package database

// migrationsSQL contains all database migrations.
// Migrations are applied in order by version number.
var migrationsSQL = map[int]string{
	1: migrationV1Bookmarks,
	2: migrationV2RawtimeIndex,
}

// migrationV1Bookmarks creates the bookmarks table.
//
// rawtime and drift are stored exactly as the Instant holds them; the era is
// the sign of rawtime and is not stored separately.
const migrationV1Bookmarks = `
-- Migration 001: bookmarks

CREATE TABLE IF NOT EXISTS bookmarks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,

    -- Lookup key used by the API and the CLI
    name TEXT NOT NULL UNIQUE CHECK (length(name) BETWEEN 1 AND 128),

    rawtime REAL NOT NULL,
    drift REAL NOT NULL DEFAULT 0,

    note TEXT,

    created_at TEXT NOT NULL DEFAULT (datetime('now')),
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`

// migrationV2RawtimeIndex supports range listing in chronological order.
const migrationV2RawtimeIndex = `
-- Migration 002: chronological index

CREATE INDEX IF NOT EXISTS idx_bookmarks_rawtime ON bookmarks (rawtime);
`
