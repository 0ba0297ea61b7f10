// Package render turns calendar projections into display strings of the form
// "(YYYY-MM-DD HH:MM:SS) AC".
package render

import (
	"fmt"
	"strings"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Kind names which fields a projection carries.
type Kind int

const (
	Unset Kind = iota
	Full
	Date
	Time
	Year
	Month
	Day
	Hour
	Minute
	Second
)

var kindNames = map[Kind]string{
	Unset:  "unset",
	Full:   "fulldatetime",
	Date:   "date",
	Time:   "time",
	Year:   "year",
	Month:  "month",
	Day:    "day",
	Hour:   "hour",
	Minute: "minute",
	Second: "second",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String. "full" is accepted for Full.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "full" || s == "" {
		return Full, nil
	}
	for k, name := range kindNames {
		if name == s && k != Unset {
			return k, nil
		}
	}
	return Unset, calendar.NewError(calendar.ErrInvalidField, "ParseKind", s, "",
		"kind must be one of full, date, time, year, month, day, hour, minute, second")
}

// Style selects the era labels.
type Style string

const (
	// Plain renders "AC" / "BC".
	Plain Style = "plain"
	// Dotted renders "A.C" / "B.C".
	Dotted Style = "dotted"
)

// Label returns the era label for the style.
func (s Style) Label(era calendar.Era) string {
	if s == Dotted {
		if era == calendar.BC {
			return "B.C"
		}
		return "A.C"
	}
	return era.String()
}

// Valid reports whether s is a known style.
func (s Style) Valid() bool {
	return s == Plain || s == Dotted
}

// Format renders the fields selected by kind, zero-padded, followed by the
// era label. Unset (or unknown) kinds are rejected with ErrInvalidField.
func Format(kind Kind, t calendar.Tuple, era calendar.Era, style Style) (string, error) {
	sec := calendar.FormatSecond(t.Second)

	var body string
	switch kind {
	case Full:
		body = fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%s", t.Year, t.Month, t.Day, t.Hour, t.Minute, sec)
	case Date:
		body = fmt.Sprintf("%04d-%02d-%02d", t.Year, t.Month, t.Day)
	case Time:
		body = fmt.Sprintf("%02d:%02d:%s", t.Hour, t.Minute, sec)
	case Year:
		body = fmt.Sprintf("%04d", t.Year)
	case Month:
		body = fmt.Sprintf("%02d", t.Month)
	case Day:
		body = fmt.Sprintf("%02d", t.Day)
	case Hour:
		body = fmt.Sprintf("%02d", t.Hour)
	case Minute:
		body = fmt.Sprintf("%02d", t.Minute)
	case Second:
		body = sec
	default:
		return "", calendar.NewError(calendar.ErrInvalidField, "render.Format", kind.String(), "",
			"extract a projection before rendering it")
	}

	return "(" + body + ") " + style.Label(era), nil
}
