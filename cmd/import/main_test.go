package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/database"
	"github.com/zapponejosh/rawtime/internal/instant"
)

type memWriter struct {
	saved map[string]*database.Bookmark
	fail  error
}

func (m *memWriter) UpsertBookmark(_ context.Context, b *database.Bookmark) error {
	if m.fail != nil {
		return m.fail
	}
	if m.saved == nil {
		m.saved = make(map[string]*database.Bookmark)
	}
	m.saved[b.Name] = b
	return nil
}

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func TestResolve(t *testing.T) {
	engine := instant.NewEngine(calendar.DefaultFloors())

	tests := []struct {
		name    string
		item    database.ImportBookmark
		want    float64
		wantErr error
	}{
		{
			name: "stamp with template",
			item: database.ImportBookmark{Stamp: "02/10/2025", Template: "d m y"},
			want: 739891 * calendar.SecondsPerDay,
		},
		{
			name: "stamp with default template",
			item: database.ImportBookmark{Stamp: "2025-10-02 00:00:00"},
			want: 739891 * calendar.SecondsPerDay,
		},
		{
			name: "BC stamp",
			item: database.ImportBookmark{Stamp: "5", Template: "y", Era: "BC"},
			want: -1827 * calendar.SecondsPerDay,
		},
		{
			name: "seconds with drift",
			item: database.ImportBookmark{Seconds: ptr(100.0), Drift: 40},
			want: 60,
		},
		{
			name:    "bad era",
			item:    database.ImportBookmark{Stamp: "1", Template: "y", Era: "CE"},
			wantErr: calendar.ErrInvalidField,
		},
		{
			name:    "count mismatch",
			item:    database.ImportBookmark{Stamp: "1 2 3", Template: "y m"},
			wantErr: calendar.ErrTooManyValues,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolve(engine, tt.item)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve() error = %v", err)
			}
			if got.Rawtime() != tt.want {
				t.Errorf("Rawtime() = %v, want %v", got.Rawtime(), tt.want)
			}
		})
	}

	if _, err := resolve(engine, database.ImportBookmark{Name: "empty"}); err == nil {
		t.Error("resolve() with neither seconds nor stamp should fail")
	}
}

func TestImportBookmarks(t *testing.T) {
	engine := instant.NewEngine(calendar.DefaultFloors())
	items := []database.ImportBookmark{
		{Name: "ides", Stamp: "15/03/44", Template: "d m y", Era: "BC"},
		{Name: "launch", Seconds: ptr(63926582400.0), Note: ptr("go live")},
	}

	w := &memWriter{}
	var stats ImportStats
	if err := importBookmarks(context.Background(), w, engine, items, quiet(), &stats); err != nil {
		t.Fatalf("importBookmarks() error = %v", err)
	}

	want := ImportStats{Bookmarks: 2, FromStamp: 1, FromSeconds: 1, BC: 1}
	if diff := cmp.Diff(want, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if w.saved["launch"].Note == nil || *w.saved["launch"].Note != "go live" {
		t.Errorf("launch note = %v", w.saved["launch"].Note)
	}
	if w.saved["ides"].Rawtime >= 0 {
		t.Errorf("ides rawtime = %v, want negative", w.saved["ides"].Rawtime)
	}

	w.fail = errors.New("disk full")
	if err := importBookmarks(context.Background(), w, engine, items, quiet(), &ImportStats{}); err == nil {
		t.Error("importBookmarks() should surface writer errors")
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "bookmarks.json")
	dbPath := filepath.Join(dir, "rawtime.db")

	doc := `{
	  "metadata": {"source": "test", "generated_at": "2025-10-02"},
	  "bookmarks": [
	    {"name": "y2k", "stamp": "2000-01-01", "template": "y m d"},
	    {"name": "epoch", "seconds": 0}
	  ]
	}`
	if err := os.WriteFile(jsonPath, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	// Running twice upserts instead of failing.
	for i := 0; i < 2; i++ {
		if err := run(jsonPath, dbPath, quiet()); err != nil {
			t.Fatalf("run() error = %v", err)
		}
	}

	db, err := database.Open(database.DefaultConfig(dbPath), quiet())
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	n, err := db.CountBookmarks(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("CountBookmarks() = %d, want 2", n)
	}
}
