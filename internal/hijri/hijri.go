// Package hijri converts Julian day numbers to the tabular civil Islamic
// calendar (the Kuwaiti-variant arithmetic calendar, not moon sighting).
package hijri

import (
	"errors"
	"fmt"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/astro"
)

// ErrBeforeEpoch is returned for Julian day numbers before 1 Muharram 1 AH.
var ErrBeforeEpoch = errors.New("julian day before the Islamic calendar epoch")

// epochJDN is the Julian day number of 1 Muharram, year 1 AH
// (Thursday, 15 July 622 CE Julian). This is the epoch variant that maps
// Gregorian 2024-03-11 to 2 Ramaḍān 1445.
const epochJDN int64 = 1948439

// The 30-year tabular cycle spans 10631 days with 11 leap years of 355
// days; common years have 354. Months alternate 30/29 days, the last month
// taking 30 in a leap year.
const (
	cycleDays    = 10631
	commonYear   = 354
	leapsInCycle = 11
)

// MonthNames are the twelve Hijri months, index 0 = Muḥarram.
var MonthNames = [12]string{
	"Muḥarram", "Ṣafar", "Rabīʿ al-Awwal", "Rabīʿ al-Thānī",
	"Jumādā al-Ūlā", "Jumādā al-Ākhirah", "Rajab", "Shaʿbān",
	"Ramaḍān", "Shawwāl", "Dhū al-Qaʿdah", "Dhū al-Ḥijjah",
}

// weekdayNames indexed by (JDN+1) mod 7.
var weekdayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Date is a derived snapshot of a Hijri calendar date.
type Date struct {
	Day        int    `json:"day"`         // 1..30
	MonthIndex int    `json:"month_index"` // 0..11
	MonthName  string `json:"month_name"`
	Year       int    `json:"year"`
	Weekday    string `json:"weekday"`
}

// Format renders the date as "D MonthName YYYY AH".
func (d Date) Format() string {
	return fmt.Sprintf("%d %s %d AH", d.Day, d.MonthName, d.Year)
}

// IsLeapYear reports whether the Hijri year is one of the 11 leap positions
// of its 30-year cycle.
func IsLeapYear(year int) bool {
	return (11*year+14)%30 < 11
}

// yearStartJDN returns the JDN of 1 Muharram of the given year.
func yearStartJDN(year int) int64 {
	y := int64(year)
	return epochJDN + (y-1)*commonYear + (3+leapsInCycle*y)/30
}

// monthStartJDN returns the JDN of day 1 of the given month (1..12).
func monthStartJDN(year, month int) int64 {
	// Months alternate 30/29: the first day of month m is preceded by
	// ceil(29.5*(m-1)) days within the year.
	return yearStartJDN(year) + int64(month-1)*59/2 + int64(month-1)%2
}

// FromJulianDayNumber converts a Julian day number to a Hijri date.
// offsetDays shifts the input, absorbing local sighting adjustments
// (typically -2..+2). JDNs before the calendar epoch are rejected.
func FromJulianDayNumber(jdn int64, offsetDays int) (Date, error) {
	d := jdn + int64(offsetDays)
	if d < epochJDN {
		return Date{}, fmt.Errorf("%w: jdn %d (offset %d)", ErrBeforeEpoch, jdn, offsetDays)
	}

	days := d - epochJDN
	year := int((30*days + 10646) / cycleDays)

	// Floored division can land one year high on the last day of a year.
	for yearStartJDN(year) > d {
		year--
	}

	month := 1
	for month < 12 && monthStartJDN(year, month+1) <= d {
		month++
	}
	day := int(d - monthStartJDN(year, month) + 1)

	return Date{
		Day:        day,
		MonthIndex: month - 1,
		MonthName:  MonthNames[month-1],
		Year:       year,
		Weekday:    weekdayNames[(d+1)%7],
	}, nil
}

// FromTime converts the civil date of t (in its own location) to Hijri.
func FromTime(t time.Time, offsetDays int) (Date, error) {
	y, m, d := t.Date()
	return FromJulianDayNumber(astro.JulianDayNumber(y, int(m), d), offsetDays)
}
