package calendar

// Easter returns the date of Easter Sunday for a given year using the
// computus algorithm for the Gregorian calendar.
//
// The algorithm is based on the method described by J.M. Oudin (1940)
// and is valid for all years of the proleptic Gregorian calendar.
func Easter(year int) Tuple {
	a := floorMod(year, 19)
	b := floorDiv(year, 100)
	c := floorMod(year, 100)
	d := floorDiv(b, 4)
	e := floorMod(b, 4)
	f := floorDiv(b+8, 25)
	g := floorDiv(b-f+1, 3)
	h := floorMod(19*a+b-d-g+15, 30)
	i := c / 4
	k := c % 4
	l := floorMod(32+2*e+2*i-h-k, 7)
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return Tuple{Year: year, Month: month, Day: day}
}

// Advent returns the first Sunday of Advent, the fourth Sunday before
// Christmas. It always falls between November 27 and December 3.
func Advent(year int) Tuple {
	christmas := Tuple{Year: year, Month: 12, Day: 25}
	back := int(WeekdayOf(christmas))
	if back == 0 {
		back = 7
	}
	return AddDays(christmas, -back-21)
}

// AshWednesday is 46 days before Easter.
func AshWednesday(year int) Tuple {
	return AddDays(Easter(year), -46)
}

// Ascension is 39 days after Easter (always a Thursday).
func Ascension(year int) Tuple {
	return AddDays(Easter(year), 39)
}

// Pentecost is 49 days after Easter.
func Pentecost(year int) Tuple {
	return AddDays(Easter(year), 49)
}
