// Package schedule aggregates per-day prayer times into daily, monthly and
// yearly schedules. Every day is computed independently; the aggregator
// keeps no state and performs no cross-day memoization, so callers may fan
// out over a date range however they like.
package schedule

import (
	"fmt"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/hijri"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
)

// Day is a single day's schedule: the civil date, its Hijri rendering, and
// the ordered event list.
type Day struct {
	Date   time.Time      `json:"date"`
	Hijri  hijri.Date     `json:"hijri"`
	Events []prayer.Event `json:"events"`
	Times  *prayer.Times  `json:"-"`
}

// Month wraps the schedules of every day of one Gregorian month.
type Month struct {
	Label string `json:"label"` // "March 2024"
	Days  []*Day `json:"days"`
}

// Year wraps the schedules of every day of one Gregorian year.
type Year struct {
	Label string `json:"label"` // "2024"
	Days  []*Day `json:"days"`
}

// Aggregator builds schedules for a fixed location and parameter set.
type Aggregator struct {
	calc        *prayer.Calculator
	hijriOffset int
}

// New validates the inputs and returns an Aggregator. hijriOffset is the
// sighting-adjustment day offset applied to every Hijri conversion.
func New(coords prayer.Coordinates, params prayer.Params, hijriOffset int) (*Aggregator, error) {
	calc, err := prayer.NewCalculator(coords, params)
	if err != nil {
		return nil, err
	}
	return &Aggregator{calc: calc, hijriOffset: hijriOffset}, nil
}

// Daily computes the schedule for the civil day containing date.
func (a *Aggregator) Daily(date time.Time) (*Day, error) {
	t, err := a.calc.ComputeDay(date)
	if err != nil {
		return nil, err
	}
	h, err := hijri.FromTime(t.Date, a.hijriOffset)
	if err != nil {
		return nil, fmt.Errorf("hijri conversion for %s: %w", t.Date.Format("2006-01-02"), err)
	}
	return &Day{Date: t.Date, Hijri: h, Events: t.Events, Times: t}, nil
}

// Monthly computes a schedule for every day of the month containing
// anchor. The day count is the exact Gregorian length of that month.
func (a *Aggregator) Monthly(anchor time.Time) (*Month, error) {
	loc, err := a.calc.Params.Location()
	if err != nil {
		return nil, err
	}
	local := anchor.In(loc)
	first := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)

	m := &Month{Label: first.Format("January 2006")}
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		day, err := a.Daily(d)
		if err != nil {
			return nil, err
		}
		m.Days = append(m.Days, day)
	}
	return m, nil
}

// Yearly computes a schedule for every day of the year containing anchor:
// 365 days, or 366 when the Gregorian leap rule applies.
func (a *Aggregator) Yearly(anchor time.Time) (*Year, error) {
	loc, err := a.calc.Params.Location()
	if err != nil {
		return nil, err
	}
	year := anchor.In(loc).Year()
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)

	y := &Year{Label: fmt.Sprintf("%d", year)}
	for d := first; d.Year() == year; d = d.AddDate(0, 0, 1) {
		day, err := a.Daily(d)
		if err != nil {
			return nil, err
		}
		y.Days = append(y.Days, day)
	}
	return y, nil
}

// Range computes schedules for n consecutive days starting at start.
// The CLI list/query commands build their tables from this.
func (a *Aggregator) Range(start time.Time, n int) ([]*Day, error) {
	if n < 1 {
		return nil, fmt.Errorf("day count must be positive, got %d", n)
	}
	days := make([]*Day, 0, n)
	for i := 0; i < n; i++ {
		day, err := a.Daily(start.AddDate(0, 0, i))
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}

// IsLeapYear applies the Gregorian rule: divisible by 4, not by 100 unless
// also by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
