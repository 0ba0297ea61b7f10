package calendar

import (
	"fmt"
	"math"
)

// Tuple is a canonical calendar tuple. After normalization every field is in
// its nominal range: Month 1..12, Day 1..DaysInMonth, Hour 0..23,
// Minute 0..59 and Second in [0, 60).
//
// Year carries the magnitude only; the era (AC/BC) lives on the Instant.
type Tuple struct {
	Year   int     `json:"year"`
	Month  int     `json:"month"`
	Day    int     `json:"day"`
	Hour   int     `json:"hour"`
	Minute int     `json:"minute"`
	Second float64 `json:"second"`
}

// Fields is the Normalizer's input: six raw fields that may be fractional or
// out of range (month 14, day 0, second 125.5, year 2025.5).
type Fields struct {
	Year   float64 `json:"year"`
	Month  float64 `json:"month"`
	Day    float64 `json:"day"`
	Hour   float64 `json:"hour"`
	Minute float64 `json:"minute"`
	Second float64 `json:"second"`
}

// DefaultFields is what construction starts from before template values are
// applied: year 0, January 1, midnight.
func DefaultFields() Fields {
	return Fields{Month: 1, Day: 1}
}

// Slice returns the fields in y, m, d, h, mi, s order.
func (f Fields) Slice() []float64 {
	return []float64{f.Year, f.Month, f.Day, f.Hour, f.Minute, f.Second}
}

// FieldsFromSlice builds Fields from up to six values in y, m, d, h, mi, s
// order. Missing trailing values keep their defaults.
func FieldsFromSlice(values []float64) Fields {
	f := DefaultFields()
	targets := []*float64{&f.Year, &f.Month, &f.Day, &f.Hour, &f.Minute, &f.Second}
	for i, v := range values {
		if i >= len(targets) {
			break
		}
		*targets[i] = v
	}
	return f
}

// Fields converts a canonical tuple back to normalizer input.
func (t Tuple) Fields() Fields {
	return Fields{
		Year:   float64(t.Year),
		Month:  float64(t.Month),
		Day:    float64(t.Day),
		Hour:   float64(t.Hour),
		Minute: float64(t.Minute),
		Second: t.Second,
	}
}

// Slice returns the tuple in y, m, d, h, mi, s order.
func (t Tuple) Slice() []float64 {
	return t.Fields().Slice()
}

// Valid reports whether every field of t is in its nominal range.
func (t Tuple) Valid() bool {
	if t.Month < 1 || t.Month > 12 {
		return false
	}
	if t.Day < 1 || t.Day > daysIn(t.Year, t.Month) {
		return false
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return false
	}
	return t.Second >= 0 && t.Second < 60
}

// String renders the tuple as YYYY-MM-DD HH:MM:SS without an era.
func (t Tuple) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%s",
		t.Year, t.Month, t.Day, t.Hour, t.Minute, FormatSecond(t.Second))
}

// FormatSecond renders seconds zero-padded to two integer digits. Whole
// seconds print without a fraction; fractional seconds keep up to four
// decimals.
func FormatSecond(s float64) string {
	if s == math.Trunc(s) {
		return fmt.Sprintf("%02d", int(s))
	}
	out := fmt.Sprintf("%07.4f", s)
	// trim trailing zeros of the fraction
	for out[len(out)-1] == '0' {
		out = out[:len(out)-1]
	}
	if out[len(out)-1] == '.' {
		out = out[:len(out)-1]
	}
	return out
}

// Era distinguishes instants after (AC) and before (BC) the epoch.
type Era int

const (
	AC Era = iota
	BC
)

// String returns "AC" or "BC".
func (e Era) String() string {
	if e == BC {
		return "BC"
	}
	return "AC"
}

// ParseEra accepts "AC"/"BC" in upper or lower case, with or without dots.
func ParseEra(s string) (Era, error) {
	switch s {
	case "", "AC", "ac", "A.C", "a.c", "A.C.", "a.c.":
		return AC, nil
	case "BC", "bc", "B.C", "b.c", "B.C.", "b.c.":
		return BC, nil
	}
	return AC, NewError(ErrInvalidField, "ParseEra", s, "", `era must be "AC" or "BC"`)
}

// EraOf derives the era from the sign of a rawtime. Negative zero is BC so
// that a BC instant at the epoch keeps its era.
func EraOf(rawtime float64) Era {
	if math.Signbit(rawtime) {
		return BC
	}
	return AC
}

// round4 rounds to four decimal places.
func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

// finite reports whether x is neither NaN nor infinite.
func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
