package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// querier is satisfied by both *DB and *Tx, so each query is written once.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// Helper Functions
// =============================================================================

// parseTimestamp parses a timestamp from SQLite TEXT format.
// Tries multiple formats and returns nil if parsing fails.
func parseTimestamp(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05.999999"} {
		if t, err := time.Parse(layout, ns.String); err == nil {
			return &t
		}
	}
	return nil
}

const bookmarkColumns = `id, name, rawtime, drift, note, created_at, updated_at`

// scanner is a *sql.Row or *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBookmark(s scanner) (*Bookmark, error) {
	var b Bookmark
	var note, createdAt, updatedAt sql.NullString

	if err := s.Scan(&b.ID, &b.Name, &b.Rawtime, &b.Drift, &note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		b.Note = &note.String
	}
	b.CreatedAt = parseTimestamp(createdAt)
	b.UpdatedAt = parseTimestamp(updatedAt)
	return &b, nil
}

// =============================================================================
// Bookmark Queries
// =============================================================================

// CreateBookmark inserts b and sets its ID. Returns ErrDuplicate if the
// name is taken.
func (db *DB) CreateBookmark(ctx context.Context, b *Bookmark) error {
	return createBookmark(ctx, db, b)
}

// CreateBookmark inserts b within the transaction.
func (tx *Tx) CreateBookmark(ctx context.Context, b *Bookmark) error {
	return createBookmark(ctx, tx, b)
}

func createBookmark(ctx context.Context, q querier, b *Bookmark) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid bookmark: %w", err)
	}

	result, err := q.ExecContext(ctx,
		`INSERT INTO bookmarks (name, rawtime, drift, note) VALUES (?, ?, ?, ?)`,
		b.Name, b.Rawtime, b.Drift, b.Note,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert bookmark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get bookmark id: %w", err)
	}
	b.ID = id
	return nil
}

// UpsertBookmark inserts b or, if the name exists, replaces its rawtime,
// drift and note.
func (db *DB) UpsertBookmark(ctx context.Context, b *Bookmark) error {
	return upsertBookmark(ctx, db, b)
}

// UpsertBookmark inserts or replaces b within the transaction.
func (tx *Tx) UpsertBookmark(ctx context.Context, b *Bookmark) error {
	return upsertBookmark(ctx, tx, b)
}

func upsertBookmark(ctx context.Context, q querier, b *Bookmark) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("invalid bookmark: %w", err)
	}

	err := q.QueryRowContext(ctx, `
		INSERT INTO bookmarks (name, rawtime, drift, note)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET
			rawtime = excluded.rawtime,
			drift = excluded.drift,
			note = excluded.note,
			updated_at = datetime('now')
		RETURNING id
	`, b.Name, b.Rawtime, b.Drift, b.Note).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("upsert bookmark: %w", err)
	}
	return nil
}

// GetBookmark retrieves a bookmark by name.
// Returns ErrNotFound if no bookmark has that name.
func (db *DB) GetBookmark(ctx context.Context, name string) (*Bookmark, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+bookmarkColumns+` FROM bookmarks WHERE name = ?`, name)

	b, err := scanBookmark(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("query bookmark %q: %w", name, err)
	}
	return b, nil
}

// ListBookmarks returns bookmarks in chronological order.
func (db *DB) ListBookmarks(ctx context.Context, opts ListOptions) ([]Bookmark, error) {
	var (
		where []string
		args  []any
	)
	if opts.From != nil {
		where = append(where, "rawtime >= ?")
		args = append(args, *opts.From)
	}
	if opts.To != nil {
		where = append(where, "rawtime <= ?")
		args = append(args, *opts.To)
	}

	limit := opts.Limit
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	offset := max(opts.Offset, 0)

	query := `SELECT ` + bookmarkColumns + ` FROM bookmarks`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY rawtime, name LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	bookmarks := []Bookmark{}
	for rows.Next() {
		b, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bookmarks: %w", err)
	}

	return bookmarks, nil
}

// DeleteBookmark removes a bookmark by name.
// Returns ErrNotFound if no bookmark has that name.
func (db *DB) DeleteBookmark(ctx context.Context, name string) error {
	result, err := db.ExecContext(ctx, `DELETE FROM bookmarks WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete bookmark %q: %w", name, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountBookmarks returns the number of stored bookmarks.
func (db *DB) CountBookmarks(ctx context.Context) (int, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookmarks`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return n, nil
}
