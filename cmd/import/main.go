// Command import loads a bookmarks JSON file into the SQLite database.
//
// Usage:
//
//	go run ./cmd/import -json data/bookmarks.json -db data/rawtime.db
//
// This tool:
// 1. Creates/opens the SQLite database
// 2. Runs migrations to ensure schema is current
// 3. Parses the bookmarks JSON file
// 4. Encodes and upserts every bookmark in a single transaction
//
// The import is idempotent: a bookmark that already exists is overwritten.
//
// Input format:
//
//	{
//	  "metadata": {"source": "...", "generated_at": "..."},
//	  "bookmarks": [
//	    {"name": "ides", "stamp": "15/03/44", "template": "d m y", "era": "BC"},
//	    {"name": "launch", "seconds": 63926582400, "drift": 3600, "note": "go live"}
//	  ]
//	}
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/database"
	"github.com/zapponejosh/rawtime/internal/instant"
)

// defaultTemplate applies to stamps that name no template.
const defaultTemplate = "y m d h mi s"

func main() {
	// Parse command line flags
	jsonPath := flag.String("json", "data/bookmarks.json", "Path to bookmarks JSON file")
	dbPath := flag.String("db", "data/rawtime.db", "Path to SQLite database")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	// Setup logger
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// Run import
	if err := run(*jsonPath, *dbPath, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(jsonPath, dbPath string, logger *slog.Logger) error {
	ctx := context.Background()
	startTime := time.Now()

	// =========================================================================
	// Step 1: Read and parse JSON
	// =========================================================================
	logger.Info("reading JSON file", slog.String("path", jsonPath))

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("read JSON file: %w", err)
	}

	var importData database.ImportData
	if err := json.Unmarshal(data, &importData); err != nil {
		return fmt.Errorf("parse JSON: %w", err)
	}

	logger.Info("parsed JSON",
		slog.Int("bookmarks", len(importData.Bookmarks)),
		slog.String("source", importData.Metadata.Source),
		slog.String("generated_at", importData.Metadata.GeneratedAt),
	)

	// =========================================================================
	// Step 2: Open database and run migrations
	// =========================================================================
	logger.Info("opening database", slog.String("path", dbPath))

	db, err := database.Open(database.DefaultConfig(dbPath), logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	migrated, err := db.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Info("migrations complete", slog.Int("applied", migrated))

	// =========================================================================
	// Step 3: Import data in a transaction
	// =========================================================================
	logger.Info("starting import")

	engine := instant.NewEngine(calendar.DefaultFloors())
	var stats ImportStats
	err = db.WithTx(ctx, func(tx *database.Tx) error {
		return importBookmarks(ctx, tx, engine, importData.Bookmarks, logger, &stats)
	})
	if err != nil {
		return fmt.Errorf("import data: %w", err)
	}

	// =========================================================================
	// Step 4: Verify import
	// =========================================================================
	total, err := db.CountBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("count bookmarks: %w", err)
	}

	elapsed := time.Since(startTime)

	logger.Info("import verified",
		slog.Int("total_bookmarks", total),
		slog.Duration("elapsed", elapsed),
	)

	// Print summary
	fmt.Println()
	fmt.Println("=== Import Summary ===")
	fmt.Printf("Bookmarks imported:  %d\n", stats.Bookmarks)
	fmt.Printf("  from stamps:       %d\n", stats.FromStamp)
	fmt.Printf("  from seconds:      %d\n", stats.FromSeconds)
	fmt.Printf("  BC:                %d\n", stats.BC)
	fmt.Printf("Bookmarks in store:  %d\n", total)
	fmt.Printf("Time elapsed:        %v\n", elapsed.Round(time.Millisecond))

	return nil
}

// ImportStats tracks import statistics.
type ImportStats struct {
	Bookmarks   int
	FromStamp   int
	FromSeconds int
	BC          int
}

// bookmarkWriter is the part of database.Tx the import needs.
type bookmarkWriter interface {
	UpsertBookmark(ctx context.Context, b *database.Bookmark) error
}

// importBookmarks encodes and upserts every bookmark.
func importBookmarks(ctx context.Context, w bookmarkWriter, engine *instant.Engine, items []database.ImportBookmark, logger *slog.Logger, stats *ImportStats) error {
	for idx, item := range items {
		i, err := resolve(engine, item)
		if err != nil {
			return fmt.Errorf("bookmark %d (%s): %w", idx+1, item.Name, err)
		}

		b := database.NewBookmark(item.Name, i, item.Note)
		if err := w.UpsertBookmark(ctx, b); err != nil {
			return fmt.Errorf("upsert bookmark %d (%s): %w", idx+1, item.Name, err)
		}

		stats.Bookmarks++
		if item.Seconds != nil {
			stats.FromSeconds++
		} else {
			stats.FromStamp++
		}
		if b.Era() == calendar.BC {
			stats.BC++
		}

		logger.Debug("bookmark imported",
			slog.String("name", item.Name),
			slog.Float64("rawtime", b.Rawtime),
		)
	}

	return nil
}

// resolve builds the instant an import entry describes. Seconds win over a
// stamp when both are present.
func resolve(engine *instant.Engine, item database.ImportBookmark) (instant.Instant, error) {
	if item.Seconds != nil {
		return engine.FromSeconds(*item.Seconds, item.Drift)
	}
	if item.Stamp == "" {
		return instant.Instant{}, fmt.Errorf("needs either seconds or a stamp")
	}

	era, err := calendar.ParseEra(item.Era)
	if err != nil {
		return instant.Instant{}, err
	}
	template := item.Template
	if template == "" {
		template = defaultTemplate
	}
	return engine.FromStamp(item.Stamp, template, era, item.Drift)
}
