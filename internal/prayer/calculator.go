package prayer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/astro"
)

// Event names, in chronological order within a day.
const (
	Fajr      = "Fajr"
	Sunrise   = "Sunrise"
	Dhuhr     = "Dhuhr"
	Asr       = "Asr"
	Maghrib   = "Maghrib"
	Isha      = "Isha"
	Midnight  = "Midnight"
	LastThird = "Lastthird"
)

// AllEventNames lists every event the calculator produces, in order.
var AllEventNames = []string{
	Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha, Midnight, LastThird,
}

// DefaultEventNames are the events tracked by default.
var DefaultEventNames = []string{
	Fajr, Sunrise, Dhuhr, Asr, Maghrib, Isha,
}

// ShortNames maps event names to abbreviations for compact displays.
var ShortNames = map[string]string{
	Fajr:      "F",
	Sunrise:   "S",
	Dhuhr:     "D",
	Asr:       "A",
	Maghrib:   "M",
	Isha:      "I",
	Midnight:  "Mi",
	LastThird: "L3",
}

// IsEventName reports whether name is a known event, returning the
// canonical spelling.
func IsEventName(name string) (string, bool) {
	for _, n := range AllEventNames {
		if strings.EqualFold(n, name) {
			return n, true
		}
	}
	return "", false
}

// Event is a single named instant of the day. Time is absolute (UTC
// internally); Label is the local wall-clock rendering in the calculation
// timezone.
type Event struct {
	Name  string    `json:"name"`
	Time  time.Time `json:"time"`
	Label string    `json:"label"`
}

// Times holds one day's computed events. Events is strictly increasing by
// instant: Fajr < Sunrise < Dhuhr < Asr < Maghrib < Isha < Midnight <
// Lastthird.
type Times struct {
	Date time.Time // local midnight of the civil day

	Fajr      time.Time
	Sunrise   time.Time
	Dhuhr     time.Time
	Asr       time.Time
	Maghrib   time.Time
	Isha      time.Time
	Midnight  time.Time
	LastThird time.Time

	Events []Event
}

// ByName returns the event with the given (case-insensitive) name.
func (t *Times) ByName(name string) (Event, bool) {
	canonical, ok := IsEventName(name)
	if !ok {
		return Event{}, false
	}
	for _, e := range t.Events {
		if e.Name == canonical {
			return e, true
		}
	}
	return Event{}, false
}

// Current returns the latest event whose instant is at or before now.
// ok is false when now precedes the day's Fajr; the caller should then
// fall back to the previous day's Isha (see CurrentEvent).
func (t *Times) Current(now time.Time) (Event, bool) {
	var cur Event
	found := false
	for _, e := range t.Events {
		if !e.Time.After(now) {
			cur = e
			found = true
		}
	}
	return cur, found
}

// Next returns the first event strictly after now, or ok=false when every
// event of the day has passed.
func (t *Times) Next(now time.Time) (Event, bool) {
	for _, e := range t.Events {
		if e.Time.After(now) {
			return e, true
		}
	}
	return Event{}, false
}

// Calculator derives prayer times for one location and parameter set. It
// holds no mutable state; concurrent use is safe.
type Calculator struct {
	Coords Coordinates
	Params Params
}

// NewCalculator validates its inputs once so every ComputeDay call is
// error-free on the parameter side.
func NewCalculator(coords Coordinates, params Params) (*Calculator, error) {
	if _, err := NewCoordinates(coords.Latitude, coords.Longitude); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if _, err := params.Location(); err != nil {
		return nil, err
	}
	return &Calculator{Coords: coords, Params: params}, nil
}

// ComputeDay derives all events for the civil day containing date (in the
// calculation timezone). Midnight and Lastthird are anchored on the next
// day's Fajr.
func (c *Calculator) ComputeDay(date time.Time) (*Times, error) {
	loc, err := c.Params.Location()
	if err != nil {
		return nil, err
	}

	local := date.In(loc)
	y, m, d := local.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	raw, ishaEstimated := c.solveDay(dayStart)

	// The night is split against the following day's Fajr.
	nextRaw, _ := c.solveDay(dayStart.AddDate(0, 0, 1))
	night := nextRaw.fajr.Sub(raw.maghrib)

	// A fallback Isha must divide the same night span as Midnight and
	// Lastthird, or it can land past both of them.
	if ishaEstimated {
		portion := c.Params.HighLatitudeRule.nightPortion(c.Params.IshaAngle)
		raw.isha = raw.maghrib.Add(scaleDuration(night, portion))
	}

	midnight := raw.maghrib.Add(night / 2)
	lastThird := raw.maghrib.Add(night * 2 / 3)

	t := &Times{
		Date:      dayStart,
		Fajr:      raw.fajr,
		Sunrise:   raw.sunrise,
		Dhuhr:     raw.dhuhr,
		Asr:       raw.asr,
		Maghrib:   raw.maghrib,
		Isha:      raw.isha,
		Midnight:  midnight,
		LastThird: lastThird,
	}
	enforceOrder([]*time.Time{
		&t.Fajr, &t.Sunrise, &t.Dhuhr, &t.Asr,
		&t.Maghrib, &t.Isha, &t.Midnight, &t.LastThird,
	})
	t.buildEvents(loc)
	return t, nil
}

// CurrentEvent resolves the event active at now, wrapping to the previous
// day's Isha when now precedes the day's Fajr.
func (c *Calculator) CurrentEvent(now time.Time) (Event, error) {
	today, err := c.ComputeDay(now)
	if err != nil {
		return Event{}, err
	}
	if cur, ok := today.Current(now); ok {
		return cur, nil
	}
	yesterday, err := c.ComputeDay(now.AddDate(0, 0, -1))
	if err != nil {
		return Event{}, err
	}
	isha, ok := yesterday.ByName(Isha)
	if !ok {
		return Event{}, fmt.Errorf("no isha event for previous day")
	}
	return isha, nil
}

// rawTimes are the directly-solved events of a single day, before the
// night-splitting events are attached.
type rawTimes struct {
	fajr, sunrise, dhuhr, asr, maghrib, isha time.Time
}

// horizonAltitude is the altitude of the sun's center at rise/set:
// 50 arcminutes below the horizon (34' refraction + 16' solar radius).
const horizonAltitude = -50.0 / 60.0

// solveDay computes the directly-solvable events for the civil day
// starting at dayStart (local midnight). ishaEstimated reports that Isha
// came from the high-latitude fallback rather than an altitude solve;
// ComputeDay re-derives it against the actual night span.
func (c *Calculator) solveDay(dayStart time.Time) (raw rawTimes, ishaEstimated bool) {
	lat, lon := c.Coords.Latitude, c.Coords.Longitude

	// Anchor every solve on the UTC day containing local noon.
	localNoon := dayStart.Add(12 * time.Hour).UTC()
	uy, um, ud := localNoon.Date()
	utcMidnight := time.Date(uy, um, ud, 0, 0, 0, 0, time.UTC)

	// Solar noon in UTC hours: mean noon shifted by the longitude offset
	// from the Greenwich meridian and the equation of time.
	noonEph := astro.SunEphemeris(astro.TimeToJulianDay(utcMidnight.Add(12 * time.Hour)))
	noonHours := 12 - lon/15 - noonEph.EquationOfTime/60

	atHours := func(h float64) time.Time {
		return utcMidnight.Add(time.Duration(h * float64(time.Hour)))
	}

	// solve finds the instant the sun crosses the given altitude, before
	// (morning) or after (evening) solar noon, refining the ephemeris once
	// at the first estimate. ok is false when no crossing exists that day.
	solve := func(altitude float64, morning bool) (time.Time, bool) {
		eph := noonEph
		hours := noonHours
		for pass := 0; pass < 2; pass++ {
			h, ok := astro.HourAngleForAltitude(lat, eph.Declination, altitude)
			if !ok {
				return time.Time{}, false
			}
			if morning {
				hours = noonHours - h/15
			} else {
				hours = noonHours + h/15
			}
			eph = astro.SunEphemeris(astro.TimeToJulianDay(atHours(hours)))
		}
		return atHours(hours), true
	}

	dhuhr := atHours(noonHours)

	sunrise, riseOK := solve(horizonAltitude, true)
	sunset, setOK := solve(horizonAltitude, false)
	if !riseOK || !setOK {
		// Polar day or night: no horizon crossing at all. Nominal ±6h
		// offsets from solar noon keep the schedule ordered and defined.
		sunrise = dhuhr.Add(-6 * time.Hour)
		sunset = dhuhr.Add(6 * time.Hour)
	}

	// Night runs sunset to the next sunrise; the symmetric same-day
	// approximation anchors the Fajr fallback and the provisional Isha
	// estimate below.
	night := 24*time.Hour - sunset.Sub(sunrise)

	fajr, ok := solve(-c.Params.FajrAngle, true)
	if !ok {
		portion := c.Params.HighLatitudeRule.nightPortion(c.Params.FajrAngle)
		fajr = sunrise.Add(-scaleDuration(night, portion))
	}

	var isha time.Time
	if c.Params.IshaInterval > 0 {
		isha = sunset.Add(time.Duration(c.Params.IshaInterval) * time.Minute)
	} else {
		isha, ok = solve(-c.Params.IshaAngle, false)
		if !ok {
			portion := c.Params.HighLatitudeRule.nightPortion(c.Params.IshaAngle)
			isha = sunset.Add(scaleDuration(night, portion))
			ishaEstimated = true
		}
	}

	// Asr: shadow length reaches the madhab multiplier plus the noon
	// shadow, i.e. altitude drops to atan(1/(k + tan|lat-decl|)).
	shadow := float64(c.Params.Madhab) + math.Tan(math.Abs(lat-noonEph.Declination)*math.Pi/180)
	asrAltitude := math.Atan(1/shadow) * 180 / math.Pi
	asr, ok := solve(asrAltitude, false)
	if !ok {
		asr = dhuhr.Add(sunset.Sub(dhuhr) / 2)
	}

	raw = rawTimes{
		fajr:    fajr,
		sunrise: sunrise,
		dhuhr:   dhuhr,
		asr:     asr,
		maghrib: sunset,
		isha:    isha,
	}
	enforceOrder([]*time.Time{
		&raw.fajr, &raw.sunrise, &raw.dhuhr, &raw.asr, &raw.maghrib, &raw.isha,
	})
	return raw, ishaEstimated
}

// enforceOrder nudges any event that failed to land after its predecessor
// (possible only under extreme-latitude fallbacks) so the strict ordering
// invariant always holds.
func enforceOrder(seq []*time.Time) {
	for i := 1; i < len(seq); i++ {
		if !seq[i].After(*seq[i-1]) {
			*seq[i] = seq[i-1].Add(time.Minute)
		}
	}
}

// scaleDuration multiplies a duration by a fraction without overflow for
// the sub-day magnitudes used here.
func scaleDuration(d time.Duration, f float64) time.Duration {
	return time.Duration(f * float64(d))
}

// buildEvents assembles the ordered event slice with local labels.
func (t *Times) buildEvents(loc *time.Location) {
	entries := []struct {
		name string
		at   time.Time
	}{
		{Fajr, t.Fajr},
		{Sunrise, t.Sunrise},
		{Dhuhr, t.Dhuhr},
		{Asr, t.Asr},
		{Maghrib, t.Maghrib},
		{Isha, t.Isha},
		{Midnight, t.Midnight},
		{LastThird, t.LastThird},
	}
	t.Events = make([]Event, 0, len(entries))
	for _, e := range entries {
		t.Events = append(t.Events, Event{
			Name:  e.name,
			Time:  e.at,
			Label: e.at.In(loc).Format("15:04"),
		})
	}
}

// TimeRemaining returns the duration from now until the event.
func TimeRemaining(e Event, now time.Time) time.Duration {
	return e.Time.Sub(now)
}

// FormatRemaining formats a duration as "Xh Ym" or "Ym" under an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return "0m"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
