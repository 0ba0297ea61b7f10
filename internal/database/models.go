package database

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/instant"
)

// MaxNameLength is the longest bookmark name the schema accepts.
const MaxNameLength = 128

// Bookmark is a named, stored Instant.
type Bookmark struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Rawtime   float64    `json:"rawtime"`
	Drift     float64    `json:"drift"`
	Note      *string    `json:"note,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// NewBookmark captures i under name.
func NewBookmark(name string, i instant.Instant, note *string) *Bookmark {
	return &Bookmark{
		Name:    name,
		Rawtime: i.Rawtime(),
		Drift:   i.Drift(),
		Note:    note,
	}
}

// Instant rebuilds the stored Instant.
func (b *Bookmark) Instant() (instant.Instant, error) {
	return instant.FromRawtime(b.Rawtime, b.Drift)
}

// Era is the era of the stored instant: the sign of rawtime with drift
// added back.
func (b *Bookmark) Era() calendar.Era {
	if b.Drift == 0 {
		return calendar.EraOf(b.Rawtime)
	}
	return calendar.EraOf(b.Rawtime + b.Drift)
}

// Validate checks a bookmark before it is written.
func (b *Bookmark) Validate() error {
	var errs []error
	if b.Name == "" || len(b.Name) > MaxNameLength {
		errs = append(errs, fmt.Errorf("name must be 1 to %d bytes, got %d", MaxNameLength, len(b.Name)))
	}
	if math.IsNaN(b.Rawtime) || math.IsInf(b.Rawtime, 0) {
		errs = append(errs, fmt.Errorf("rawtime must be finite, got %v", b.Rawtime))
	}
	if math.IsNaN(b.Drift) || math.IsInf(b.Drift, 0) {
		errs = append(errs, fmt.Errorf("drift must be finite, got %v", b.Drift))
	}
	return errors.Join(errs...)
}

// ListOptions filters and pages ListBookmarks. Results are ordered by
// rawtime, earliest first.
type ListOptions struct {
	From   *float64 // inclusive lower rawtime bound
	To     *float64 // inclusive upper rawtime bound
	Limit  int      // 0 means DefaultListLimit
	Offset int
}

// DefaultListLimit and MaxListLimit bound a page of bookmarks.
const (
	DefaultListLimit = 50
	MaxListLimit     = 500
)

// =============================================================================
// Import Types
// =============================================================================

// ImportData is the JSON document read by cmd/import.
type ImportData struct {
	Metadata struct {
		Source      string `json:"source"`
		GeneratedAt string `json:"generated_at"`
	} `json:"metadata"`
	Bookmarks []ImportBookmark `json:"bookmarks"`
}

// ImportBookmark describes one bookmark either as a stamp with a template or
// as a raw seconds value.
type ImportBookmark struct {
	Name     string   `json:"name"`
	Stamp    string   `json:"stamp,omitempty"`
	Template string   `json:"template,omitempty"`
	Era      string   `json:"era,omitempty"`
	Seconds  *float64 `json:"seconds,omitempty"`
	Drift    float64  `json:"drift,omitempty"`
	Note     *string  `json:"note,omitempty"`
}
