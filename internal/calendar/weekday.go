package calendar

import "fmt"

// Weekday is a day of the week, Sunday = 0.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

var dayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// String returns the day name (Sunday, Monday, etc.)
func (w Weekday) String() string {
	return dayNames[floorMod(int(w), 7)]
}

// WeekdayOf returns the day of the week of the tuple's date.
// Year 0, January 1 (day offset 0) was a Saturday.
func WeekdayOf(t Tuple) Weekday {
	days := daysBeforeYear(t.Year) + daysBeforeMonth(t.Year, clampMonth(t.Month)) + t.Day - 1
	return Weekday(floorMod(days+int(Saturday), 7))
}

// DayName returns the day of week name of the tuple's date.
func DayName(t Tuple) string {
	return WeekdayOf(t).String()
}

// AddDays moves the date of t by n days, keeping the time of day.
func AddDays(t Tuple, n int) Tuple {
	days := daysBeforeYear(t.Year) + daysBeforeMonth(t.Year, clampMonth(t.Month)) + t.Day - 1 + n
	t.Year, t.Month, t.Day = dateFromDays(days)
	return t
}

// Ordinal returns the ordinal form of a number (1st, 2nd, 3rd, 4th, etc.)
func Ordinal(n int) string {
	switch {
	case n%100 >= 11 && n%100 <= 13:
		return fmt.Sprintf("%dth", n)
	case n%10 == 1:
		return fmt.Sprintf("%dst", n)
	case n%10 == 2:
		return fmt.Sprintf("%dnd", n)
	case n%10 == 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

func clampMonth(m int) int {
	return min(max(m, 1), 12)
}
