package database

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/instant"
)

// testDB creates a temporary in-memory database for testing.
func testDB(t *testing.T) *DB {
	t.Helper()

	// Use in-memory database for tests
	cfg := Config{
		Path:            ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}

	// Quiet logger for tests
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	db, err := Open(cfg, logger)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	// Run migrations
	ctx := context.Background()
	if _, err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// seedBookmarks stores a few bookmarks on both sides of the era boundary.
func seedBookmarks(t *testing.T, db *DB) {
	t.Helper()
	ctx := context.Background()

	seeds := []struct {
		name string
		f    calendar.Fields
		era  calendar.Era
	}{
		{"ides", calendar.Fields{Year: 44, Month: 3, Day: 15}, calendar.BC},
		{"launch", calendar.Fields{Year: 2025, Month: 10, Day: 2}, calendar.AC},
		{"y2k", calendar.Fields{Year: 2000, Month: 1, Day: 1}, calendar.AC},
	}
	for _, s := range seeds {
		i, err := instant.FromTuple(s.f, s.era, 0)
		if err != nil {
			t.Fatalf("FromTuple(%s) error = %v", s.name, err)
		}
		if err := db.CreateBookmark(ctx, NewBookmark(s.name, i, nil)); err != nil {
			t.Fatalf("CreateBookmark(%s) error = %v", s.name, err)
		}
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testDB(t)

	n, err := db.Migrate(context.Background())
	if err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second Migrate() applied %d migrations, want 0", n)
	}
}

func TestHealth(t *testing.T) {
	db := testDB(t)
	if err := db.Health(context.Background()); err != nil {
		t.Errorf("Health() error = %v", err)
	}
}

func TestCreateAndGetBookmark(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	i, err := instant.FromTuple(calendar.Fields{Year: 2025, Month: 9, Day: 19, Hour: 12}, calendar.AC, 3600.25)
	if err != nil {
		t.Fatalf("FromTuple() error = %v", err)
	}

	b := NewBookmark("meeting", i, strPtr("weekly sync"))
	if err := db.CreateBookmark(ctx, b); err != nil {
		t.Fatalf("CreateBookmark() error = %v", err)
	}
	if b.ID == 0 {
		t.Error("CreateBookmark() did not set ID")
	}

	got, err := db.GetBookmark(ctx, "meeting")
	if err != nil {
		t.Fatalf("GetBookmark() error = %v", err)
	}
	if got.CreatedAt == nil {
		t.Error("GetBookmark() CreatedAt not parsed")
	}
	opts := cmpopts.IgnoreFields(Bookmark{}, "CreatedAt", "UpdatedAt")
	if diff := cmp.Diff(b, got, opts); diff != "" {
		t.Errorf("GetBookmark() mismatch (-want +got):\n%s", diff)
	}

	restored, err := got.Instant()
	if err != nil {
		t.Fatalf("Instant() error = %v", err)
	}
	if !restored.Equals(i) || restored.Drift() != i.Drift() {
		t.Errorf("Instant() = %v (drift %v), want %v (drift %v)", restored.Rawtime(), restored.Drift(), i.Rawtime(), i.Drift())
	}
	if restored.String() != "(2025-09-19 12:00:00) AC" {
		t.Errorf("Instant().String() = %q", restored.String())
	}
}

func TestCreateBookmark_Duplicate(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	if err := db.CreateBookmark(ctx, &Bookmark{Name: "dup", Rawtime: 1}); err != nil {
		t.Fatalf("first CreateBookmark() error = %v", err)
	}

	err := db.CreateBookmark(ctx, &Bookmark{Name: "dup", Rawtime: 2})
	if err != ErrDuplicate {
		t.Errorf("CreateBookmark() duplicate error = %v, want ErrDuplicate", err)
	}
}

func TestCreateBookmark_Invalid(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	tests := []struct {
		name string
		b    *Bookmark
	}{
		{"empty name", &Bookmark{Name: "", Rawtime: 1}},
		{"NaN rawtime", &Bookmark{Name: "x", Rawtime: math.NaN()}},
		{"infinite drift", &Bookmark{Name: "x", Drift: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := db.CreateBookmark(ctx, tt.b); err == nil {
				t.Error("CreateBookmark() error = nil, want validation error")
			}
		})
	}
}

func TestGetBookmark_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := db.GetBookmark(context.Background(), "missing")
	if !IsNotFound(err) {
		t.Errorf("GetBookmark() error = %v, want ErrNotFound", err)
	}
}

func TestListBookmarks(t *testing.T) {
	db := testDB(t)
	seedBookmarks(t, db)
	ctx := context.Background()

	y2k, err := instant.FromTuple(calendar.Fields{Year: 2000, Month: 1, Day: 1}, calendar.AC, 0)
	if err != nil {
		t.Fatalf("FromTuple() error = %v", err)
	}

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{"all in order", ListOptions{}, []string{"ides", "y2k", "launch"}},
		{"AC only", ListOptions{From: floatPtr(0)}, []string{"y2k", "launch"}},
		{"BC only", ListOptions{To: floatPtr(0)}, []string{"ides"}},
		{"up to y2k", ListOptions{To: floatPtr(y2k.Rawtime())}, []string{"ides", "y2k"}},
		{"paged", ListOptions{Limit: 1, Offset: 1}, []string{"y2k"}},
		{"past the end", ListOptions{Offset: 10}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.ListBookmarks(ctx, tt.opts)
			if err != nil {
				t.Fatalf("ListBookmarks() error = %v", err)
			}
			names := []string{}
			for _, b := range got {
				names = append(names, b.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("ListBookmarks() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDeleteBookmark(t *testing.T) {
	db := testDB(t)
	seedBookmarks(t, db)
	ctx := context.Background()

	if err := db.DeleteBookmark(ctx, "y2k"); err != nil {
		t.Fatalf("DeleteBookmark() error = %v", err)
	}
	if err := db.DeleteBookmark(ctx, "y2k"); !IsNotFound(err) {
		t.Errorf("second DeleteBookmark() error = %v, want ErrNotFound", err)
	}

	n, err := db.CountBookmarks(ctx)
	if err != nil {
		t.Fatalf("CountBookmarks() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountBookmarks() = %d, want 2", n)
	}
}

func TestUpsertBookmark(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	b := &Bookmark{Name: "moving", Rawtime: 100}
	if err := db.UpsertBookmark(ctx, b); err != nil {
		t.Fatalf("UpsertBookmark() insert error = %v", err)
	}
	firstID := b.ID

	b2 := &Bookmark{Name: "moving", Rawtime: 200, Note: strPtr("moved")}
	if err := db.UpsertBookmark(ctx, b2); err != nil {
		t.Fatalf("UpsertBookmark() update error = %v", err)
	}
	if b2.ID != firstID {
		t.Errorf("UpsertBookmark() ID = %d, want %d", b2.ID, firstID)
	}

	got, err := db.GetBookmark(ctx, "moving")
	if err != nil {
		t.Fatalf("GetBookmark() error = %v", err)
	}
	if got.Rawtime != 200 || got.Note == nil || *got.Note != "moved" {
		t.Errorf("GetBookmark() = %+v", got)
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.CreateBookmark(ctx, &Bookmark{Name: "temp", Rawtime: 1}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want boom", err)
	}

	if _, err := db.GetBookmark(ctx, "temp"); !IsNotFound(err) {
		t.Errorf("GetBookmark() after rollback error = %v, want ErrNotFound", err)
	}
}

func TestWithTx_Commit(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	err := db.WithTx(ctx, func(tx *Tx) error {
		if err := tx.CreateBookmark(ctx, &Bookmark{Name: "a", Rawtime: 1}); err != nil {
			return err
		}
		return tx.UpsertBookmark(ctx, &Bookmark{Name: "b", Rawtime: -1})
	})
	if err != nil {
		t.Fatalf("WithTx() error = %v", err)
	}

	n, err := db.CountBookmarks(ctx)
	if err != nil {
		t.Fatalf("CountBookmarks() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountBookmarks() = %d, want 2", n)
	}
}

func TestBookmark_Era(t *testing.T) {
	if got := (&Bookmark{Rawtime: -1}).Era(); got != calendar.BC {
		t.Errorf("Era() = %v, want BC", got)
	}
	if got := (&Bookmark{Rawtime: 0}).Era(); got != calendar.AC {
		t.Errorf("Era() = %v, want AC", got)
	}
	if got := (&Bookmark{Rawtime: -100, Drift: 3600}).Era(); got != calendar.AC {
		t.Errorf("Era() with drift = %v, want AC", got)
	}
}
