// Package timeline maps a day's computed event instants into a continuous
// [0,1] progress domain for animation and visualization layers. The domain
// is anchored at the day's Fajr (0) and the following day's Fajr (1).
package timeline

import (
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/prayer"
)

// Timeline holds the normalized fraction of each event, non-decreasing in
// event order. Dhuhr is deliberately NOT its true normalized instant: it is
// pinned to the exact midpoint of the Sunrise and Maghrib fractions so the
// animated sun does not jitter with the equation of time across a month.
// DhuhrActual keeps the true fraction for tabular consumers.
type Timeline struct {
	Fajr        float64 `json:"fajr"` // always 0
	Sunrise     float64 `json:"sunrise"`
	Dhuhr       float64 `json:"dhuhr"`        // display fraction, pinned midpoint
	DhuhrActual float64 `json:"dhuhr_actual"` // true normalized instant
	Asr         float64 `json:"asr"`
	Maghrib     float64 `json:"maghrib"`
	Isha        float64 `json:"isha"`
	MidNight    float64 `json:"midnight"`
	LastThird   float64 `json:"last_third"`
	End         float64 `json:"end"` // always 1
}

// Fallback is the static timeline used when a required timing is missing.
// Fractions are fixed plausible positions; consumers never see NaN.
var Fallback = Timeline{
	Fajr:        0,
	Sunrise:     0.08,
	Dhuhr:       0.37,
	DhuhrActual: 0.37,
	Asr:         0.49,
	Maghrib:     0.66,
	Isha:        0.72,
	MidNight:    0.83,
	LastThird:   0.89,
	End:         1,
}

// progressCap is the value Progress reports from nextFajr onward. It is
// intentionally short of 1 so animations keyed on progress never consider
// the day finished before the next day's timeline takes over.
const progressCap = 0.999

// Build normalizes a day's times against the span from its Fajr to the
// next day's Fajr. A nil day, a zero anchor, or a non-positive span yields
// the static Fallback rather than undefined fractions.
func Build(day *prayer.Times, nextFajr time.Time) Timeline {
	if day == nil {
		return Fallback
	}
	span := nextFajr.Sub(day.Fajr)
	if day.Fajr.IsZero() || nextFajr.IsZero() || span <= 0 {
		return Fallback
	}

	frac := func(at time.Time) float64 {
		if at.IsZero() {
			return 0
		}
		return clamp01(float64(at.Sub(day.Fajr)) / float64(span))
	}

	tl := Timeline{
		Fajr:        0,
		Sunrise:     frac(day.Sunrise),
		DhuhrActual: frac(day.Dhuhr),
		Asr:         frac(day.Asr),
		Maghrib:     frac(day.Maghrib),
		Isha:        frac(day.Isha),
		MidNight:    frac(day.Midnight),
		LastThird:   frac(day.LastThird),
		End:         1,
	}
	// Pinned display position; see the type comment.
	tl.Dhuhr = (tl.Sunrise + tl.Maghrib) / 2
	return tl
}

// Progress maps an instant to the day's [0,1) progress domain: exactly 0
// at or before Fajr, progressCap at or after the next day's Fajr, and a
// linear interpolation in between. Monotonically non-decreasing in now.
func Progress(now time.Time, day *prayer.Times, nextFajr time.Time) float64 {
	if day == nil || day.Fajr.IsZero() || nextFajr.IsZero() {
		return 0
	}
	span := nextFajr.Sub(day.Fajr)
	if span <= 0 {
		return 0
	}
	if !now.After(day.Fajr) {
		return 0
	}
	if !now.Before(nextFajr) {
		return progressCap
	}
	p := float64(now.Sub(day.Fajr)) / float64(span)
	if p > progressCap {
		return progressCap
	}
	return p
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
