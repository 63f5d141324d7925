// Package astro provides the astronomical substrate for prayer-time
// calculation: Julian day conversion and a low-order solar ephemeris.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian day of the standard epoch J2000.0 (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// ToJulianDay converts a Gregorian calendar date to a continuous Julian day.
// dayFraction is the time of day in [0,1), so 0.5 is civil noon.
func ToJulianDay(year, month, day int, dayFraction float64) float64 {
	// January and February count as months 13 and 14 of the previous year.
	if month <= 2 {
		year--
		month += 12
	}

	a := year / 100
	b := 2 - a + a/4 // Gregorian century correction

	jd := math.Floor(365.25*float64(year+4716)) +
		math.Floor(30.6001*float64(month+1)) +
		float64(day) + float64(b) - 1524.5

	return jd + dayFraction
}

// FromJulianDay is the exact inverse of ToJulianDay.
func FromJulianDay(jd float64) (year, month, day int, dayFraction float64) {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 { // Gregorian reform boundary
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}

	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day = int(b - d - math.Floor(30.6001*e))
	if e < 14 {
		month = int(e - 1)
	} else {
		month = int(e - 13)
	}
	if month > 2 {
		year = int(c - 4716)
	} else {
		year = int(c - 4715)
	}

	return year, month, day, f
}

// JulianDayNumber returns the integer Julian day number containing the given
// civil date (the JDN of the noon that falls on that date).
func JulianDayNumber(year, month, day int) int64 {
	return int64(math.Floor(ToJulianDay(year, month, day, 0.5)))
}

// TimeToJulianDay converts an absolute instant to a Julian day.
// The instant is read in UTC; sub-second precision is preserved.
func TimeToJulianDay(t time.Time) float64 {
	u := t.UTC()
	frac := (float64(u.Hour()) +
		float64(u.Minute())/60 +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/3600) / 24
	return ToJulianDay(u.Year(), int(u.Month()), u.Day(), frac)
}
