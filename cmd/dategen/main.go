package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zapponejosh/rawtime/internal/calendar"
	"github.com/zapponejosh/rawtime/internal/instant"
	"github.com/zapponejosh/rawtime/internal/render"
)

// This script walks every day of a year through the engine and reports
// any day whose encoding, decoding, weekday or day arithmetic disagree.
// It prints the year's key dates first.

func main() {
	year := flag.Int("year", 2025, "Year to generate dates for")
	era := flag.String("era", "AC", "Era of the year (AC or BC)")
	drift := flag.Float64("drift", 0, "Drift in seconds applied to every instant")
	flag.Parse()

	e, err := calendar.ParseEra(*era)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	mismatches, err := generate(os.Stdout, *year, e, *drift)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if mismatches > 0 {
		os.Exit(1)
	}
}

// keyDate is a named date of the year.
type keyDate struct {
	name string
	date calendar.Tuple
}

func keyDates(year int) []keyDate {
	return []keyDate{
		{"Ash Wednesday", calendar.AshWednesday(year)},
		{"Easter", calendar.Easter(year)},
		{"Ascension", calendar.Ascension(year)},
		{"Pentecost", calendar.Pentecost(year)},
		{"Advent Start", calendar.Advent(year)},
		{"Christmas", calendar.Tuple{Year: year, Month: 12, Day: 25}},
	}
}

// generate writes the report for year and returns the number of days that
// failed a check.
func generate(w io.Writer, year int, era calendar.Era, drift float64) (int, error) {
	fmt.Fprintf(w, "=== Date Generator for %04d %s ===\n\n", year, era)

	// Feasts are only defined for AC years.
	if era == calendar.AC {
		fmt.Fprintln(w, "Key Dates:")
		for _, k := range keyDates(year) {
			i, err := instant.FromTuple(k.date.Fields(), era, drift)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", k.name, err)
			}
			s, err := i.Format(render.Date, render.Plain)
			if err != nil {
				return 0, fmt.Errorf("%s: %w", k.name, err)
			}
			fmt.Fprintf(w, "  %-15s %s %-9s rawtime %.0f\n", k.name+":", s, calendar.DayName(k.date), i.Rawtime())
		}
		fmt.Fprintln(w)
	}

	days := 0
	var failures []string
	d := calendar.Tuple{Year: year, Month: 1, Day: 1}
	for d.Year == year {
		if msg := checkDay(d, era, drift); msg != "" {
			failures = append(failures, msg)
		}
		days++
		d = calendar.AddDays(d, 1)
	}

	fmt.Fprintf(w, "Days checked:  %d\n", days)
	fmt.Fprintf(w, "Mismatches:    %d\n", len(failures))
	for _, f := range failures {
		fmt.Fprintf(w, "  - %s\n", f)
	}
	return len(failures), nil
}

// checkDay encodes d at noon and returns a description of the first check
// that fails, or "" when all pass.
func checkDay(d calendar.Tuple, era calendar.Era, drift float64) string {
	d.Hour = 12
	i, err := instant.FromTuple(d.Fields(), era, drift)
	if err != nil {
		return fmt.Sprintf("%s: encode: %v", d, err)
	}

	got, err := i.Tuple()
	if err != nil {
		return fmt.Sprintf("%s: decode: %v", d, err)
	}
	if got != d {
		return fmt.Sprintf("%s: decoded as %s", d, got)
	}
	if i.Era() != era {
		return fmt.Sprintf("%s: era %s, want %s", d, i.Era(), era)
	}

	// Adding a day moves AC dates forward and BC dates back.
	next, err := i.Add(instant.Number(calendar.SecondsPerDay))
	if err != nil {
		return fmt.Sprintf("%s: add: %v", d, err)
	}
	if next.Era() == era {
		nt, err := next.Tuple()
		if err != nil {
			return fmt.Sprintf("%s: decode next: %v", d, err)
		}
		want := calendar.AddDays(d, 1)
		if era == calendar.BC {
			want = calendar.AddDays(d, -1)
		}
		if nt != want {
			return fmt.Sprintf("%s: next day %s, want %s", d, nt, want)
		}
	}

	if era == calendar.AC && calendar.WeekdayOf(calendar.AddDays(d, 7)) != calendar.WeekdayOf(d) {
		return fmt.Sprintf("%s: weekday drifts over a week", d)
	}
	return ""
}
