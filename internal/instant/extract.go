package instant

import (
	"math"

	"github.com/zapponejosh/rawtime/internal/calendar"
)

// Field extraction comes in three modes. Each is a separate value built from
// the Instant, so choosing a mode never changes the Instant itself:
//
//	c, _ := i.Components() // c.Year() is the decoded calendar year
//	e := i.Elapsed()       // e.Year() is years elapsed since the anchor
//	s, _ := i.Isolated()   // s.Year() is a new Instant for Jan 1 of that year

const (
	cycleDays    = 146097
	cycleSeconds = cycleDays * calendar.SecondsPerDay
	cycleYears   = 400
	cycleMonths  = 12 * cycleYears
)

// Components exposes the decoded calendar fields one at a time.
type Components struct {
	t calendar.Tuple
}

// Components decodes the Instant for component access.
func (i Instant) Components() (Components, error) {
	t, err := i.Tuple()
	if err != nil {
		return Components{}, err
	}
	return Components{t: t}, nil
}

// Year returns the calendar year.
func (c Components) Year() float64 { return float64(c.t.Year) }

// Month returns the month, 1..12.
func (c Components) Month() float64 { return float64(c.t.Month) }

// Day returns the day of the month.
func (c Components) Day() float64 { return float64(c.t.Day) }

// Hour returns the hour, 0..23.
func (c Components) Hour() float64 { return float64(c.t.Hour) }

// Minute returns the minute, 0..59.
func (c Components) Minute() float64 { return float64(c.t.Minute) }

// Second returns the second including its fraction.
func (c Components) Second() float64 { return c.t.Second }

// Date returns year, month and day.
func (c Components) Date() [3]float64 {
	return [3]float64{c.Year(), c.Month(), c.Day()}
}

// Time returns hour, minute and second.
func (c Components) Time() [3]float64 {
	return [3]float64{c.Hour(), c.Minute(), c.Second()}
}

// Elapsed converts the rawtime into amounts of each unit. Values are worked
// out on the magnitude and carry the era's sign. Drift is not added back:
// the amounts are measured from the anchor.
type Elapsed struct {
	seconds float64
	sign    float64
}

// Elapsed returns the converted view of i. The sign follows rawtime, which
// is measured from the anchor.
func (i Instant) Elapsed() Elapsed {
	sign := 1.0
	if math.Signbit(i.rawtime) {
		sign = -1
	}
	return Elapsed{seconds: math.Abs(i.rawtime), sign: sign}
}

func (e Elapsed) signed(x float64) float64 {
	return e.sign*x + 0
}

// Year counts whole and partial Gregorian years, each year weighted by its
// own length.
func (e Elapsed) Year() float64 {
	cycles := math.Floor(e.seconds / cycleSeconds)
	rem := e.seconds - cycles*cycleSeconds

	year := 0
	for {
		span := float64(calendar.DaysInYear(year) * calendar.SecondsPerDay)
		if rem < span {
			return e.signed(cycles*cycleYears + float64(year) + rem/span)
		}
		rem -= span
		year++
	}
}

// Month counts whole and partial months, each weighted by its own length.
func (e Elapsed) Month() float64 {
	cycles := math.Floor(e.seconds / cycleSeconds)
	rem := e.seconds - cycles*cycleSeconds

	months := 0
	for year := 0; ; year++ {
		for month := 1; month <= 12; month++ {
			n, _ := calendar.DaysInMonth(year, month)
			span := float64(n * calendar.SecondsPerDay)
			if rem < span {
				return e.signed(cycles*cycleMonths + float64(months) + rem/span)
			}
			rem -= span
			months++
		}
	}
}

// Day is the number of days elapsed, with its fraction.
func (e Elapsed) Day() float64 { return e.signed(e.seconds / calendar.SecondsPerDay) }

// Hour is the number of hours elapsed.
func (e Elapsed) Hour() float64 { return e.signed(e.seconds / calendar.SecondsPerHour) }

// Minute is the number of minutes elapsed.
func (e Elapsed) Minute() float64 { return e.signed(e.seconds / calendar.SecondsPerMinute) }

// Second is the rawtime magnitude carrying its sign.
func (e Elapsed) Second() float64 { return e.signed(e.seconds) }

// Date is the number of whole days elapsed.
func (e Elapsed) Date() float64 {
	return e.signed(math.Floor(e.seconds / calendar.SecondsPerDay))
}

// Time is the number of seconds into the current day.
func (e Elapsed) Time() float64 {
	return e.signed(math.Mod(e.seconds, calendar.SecondsPerDay))
}

// Isolated builds sub-instants that keep one part of the Instant and reset
// the rest to its default. Sub-instants share the era, drift and floors of
// the Instant they came from.
type Isolated struct {
	t      calendar.Tuple
	era    calendar.Era
	drift  float64
	engine *Engine
}

// Isolated decodes the Instant for sub-instant extraction.
func (i Instant) Isolated() (Isolated, error) {
	t, err := i.Tuple()
	if err != nil {
		return Isolated{}, err
	}
	return Isolated{t: t, era: i.Era(), drift: i.drift, engine: NewEngine(i.floors)}, nil
}

func (s Isolated) build(f calendar.Fields) (Instant, error) {
	return s.engine.FromTuple(f, s.era, s.drift)
}

// Year keeps the year: Jan 1 of that year at midnight.
func (s Isolated) Year() (Instant, error) {
	return s.build(calendar.Fields{Year: float64(s.t.Year), Month: 1, Day: 1})
}

// Month keeps the month: the first of that month in year 1.
func (s Isolated) Month() (Instant, error) {
	return s.build(calendar.Fields{Year: 1, Month: float64(s.t.Month), Day: 1})
}

// Day keeps the day of month. Year and month start at 0 and are raised to
// their floors by normalization.
func (s Isolated) Day() (Instant, error) {
	return s.build(calendar.Fields{Day: float64(s.t.Day)})
}

// Hour keeps the hour on 0001-01-01.
func (s Isolated) Hour() (Instant, error) {
	return s.build(calendar.Fields{Year: 1, Month: 1, Day: 1, Hour: float64(s.t.Hour)})
}

// Minute keeps the minute on 0001-01-01.
func (s Isolated) Minute() (Instant, error) {
	return s.build(calendar.Fields{Year: 1, Month: 1, Day: 1, Minute: float64(s.t.Minute)})
}

// Second keeps the second on 0001-01-01.
func (s Isolated) Second() (Instant, error) {
	return s.build(calendar.Fields{Year: 1, Month: 1, Day: 1, Second: s.t.Second})
}

// Date keeps year, month and day at midnight.
func (s Isolated) Date() (Instant, error) {
	return s.build(calendar.Fields{Year: float64(s.t.Year), Month: float64(s.t.Month), Day: float64(s.t.Day)})
}

// Time keeps hour, minute and second on 0001-01-01.
func (s Isolated) Time() (Instant, error) {
	return s.build(calendar.Fields{
		Year: 1, Month: 1, Day: 1,
		Hour: float64(s.t.Hour), Minute: float64(s.t.Minute), Second: s.t.Second,
	})
}
