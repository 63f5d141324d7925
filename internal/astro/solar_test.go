package astro

import (
	"math"
	"testing"
	"time"
)

// --- SunEphemeris ---

func TestSunEphemeris_EquinoxDeclination(t *testing.T) {
	// March equinox 2024 was at 03:06 UTC on the 20th; declination crosses
	// zero there.
	jd := TimeToJulianDay(time.Date(2024, 3, 20, 3, 6, 0, 0, time.UTC))
	eph := SunEphemeris(jd)

	if math.Abs(eph.Declination) > 0.1 {
		t.Errorf("declination at equinox = %f, want ~0", eph.Declination)
	}
}

func TestSunEphemeris_SolsticeDeclination(t *testing.T) {
	// June solstice 2024: declination peaks near the obliquity, +23.44.
	jd := TimeToJulianDay(time.Date(2024, 6, 20, 20, 51, 0, 0, time.UTC))
	eph := SunEphemeris(jd)

	if math.Abs(eph.Declination-23.44) > 0.1 {
		t.Errorf("declination at June solstice = %f, want ~23.44", eph.Declination)
	}

	// December solstice 2024: the mirror extreme.
	jd = TimeToJulianDay(time.Date(2024, 12, 21, 9, 21, 0, 0, time.UTC))
	eph = SunEphemeris(jd)

	if math.Abs(eph.Declination+23.44) > 0.1 {
		t.Errorf("declination at December solstice = %f, want ~-23.44", eph.Declination)
	}
}

func TestSunEphemeris_EquationOfTimeBounds(t *testing.T) {
	// The equation of time stays within about +-17 minutes year round.
	for day := 0; day < 365; day += 5 {
		at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC).AddDate(0, 0, day)
		eph := SunEphemeris(TimeToJulianDay(at))
		if math.Abs(eph.EquationOfTime) > 17 {
			t.Errorf("equation of time on %s = %f min, out of physical bounds",
				at.Format("2006-01-02"), eph.EquationOfTime)
		}
	}
}

func TestSunEphemeris_EquationOfTimeExtremes(t *testing.T) {
	// Early November is the positive extreme (~+16.4 min), mid February the
	// negative one (~-14.2 min).
	nov := SunEphemeris(TimeToJulianDay(time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC)))
	if nov.EquationOfTime < 15.5 || nov.EquationOfTime > 17 {
		t.Errorf("EoT in early November = %f, want ~16.4", nov.EquationOfTime)
	}

	feb := SunEphemeris(TimeToJulianDay(time.Date(2024, 2, 11, 12, 0, 0, 0, time.UTC)))
	if feb.EquationOfTime > -13 || feb.EquationOfTime < -15 {
		t.Errorf("EoT in mid February = %f, want ~-14.2", feb.EquationOfTime)
	}
}

// --- SunPosition ---

func TestSunPosition_NoonAltitude(t *testing.T) {
	// At solar noon on the equinox at the equator the sun is near the
	// zenith.
	pos := SunPosition(0, 0, time.Date(2024, 3, 20, 12, 7, 0, 0, time.UTC))
	if pos.Altitude < 88 {
		t.Errorf("equatorial noon equinox altitude = %f, want near 90", pos.Altitude)
	}
}

func TestSunPosition_MidnightBelowHorizon(t *testing.T) {
	pos := SunPosition(51.5, 0, time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	if pos.Altitude > -30 {
		t.Errorf("London midnight altitude = %f, want well below horizon", pos.Altitude)
	}
}

func TestSunPosition_AzimuthEastInMorning(t *testing.T) {
	pos := SunPosition(51.5, 0, time.Date(2024, 3, 20, 8, 0, 0, 0, time.UTC))
	if pos.Azimuth < 90 || pos.Azimuth > 180 {
		t.Errorf("morning azimuth = %f, want between east and south", pos.Azimuth)
	}
}

// --- HourAngleForAltitude ---

func TestHourAngleForAltitude_EquatorSunrise(t *testing.T) {
	// Zero declination at the equator: the geometric horizon crossing is at
	// exactly 90 degrees of hour angle.
	h, ok := HourAngleForAltitude(0, 0, 0)
	if !ok {
		t.Fatal("expected a solution at the equator")
	}
	if math.Abs(h-90) > 1e-9 {
		t.Errorf("hour angle = %f, want 90", h)
	}
}

func TestHourAngleForAltitude_PolarNoSolution(t *testing.T) {
	// Above the arctic circle in midsummer the sun never reaches 18 degrees
	// below the horizon.
	if _, ok := HourAngleForAltitude(69.6, 23.4, -18); ok {
		t.Error("expected no solution for astronomical twilight in polar summer")
	}

	// Polar winter: the sun never rises at all.
	if _, ok := HourAngleForAltitude(80, -23.4, -50.0/60.0); ok {
		t.Error("expected no solution for sunrise in polar winter")
	}
}

func TestHourAngleForAltitude_LongerDaysInSummer(t *testing.T) {
	// Positive declination at a northern latitude pushes sunrise earlier:
	// a larger hour angle than at the equinox.
	summer, ok := HourAngleForAltitude(51.5, 23.4, horizonTestAltitude)
	if !ok {
		t.Fatal("expected a summer solution")
	}
	equinox, ok := HourAngleForAltitude(51.5, 0, horizonTestAltitude)
	if !ok {
		t.Fatal("expected an equinox solution")
	}
	if summer <= equinox {
		t.Errorf("summer hour angle %f should exceed equinox %f", summer, equinox)
	}
}

const horizonTestAltitude = -50.0 / 60.0

// --- angle helpers ---

func TestNormalizeDeg(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-725, 355},
	}
	for _, tt := range tests {
		if got := normalizeDeg(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeDeg(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDeg180(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, -180},
		{190, -170},
		{-190, 170},
		{359, -1},
	}
	for _, tt := range tests {
		if got := normalizeDeg180(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("normalizeDeg180(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClampUnit(t *testing.T) {
	if got := clampUnit(1.0000001); got != 1 {
		t.Errorf("clampUnit(1.0000001) = %v, want 1", got)
	}
	if got := clampUnit(-1.0000001); got != -1 {
		t.Errorf("clampUnit(-1.0000001) = %v, want -1", got)
	}
	if got := clampUnit(0.5); got != 0.5 {
		t.Errorf("clampUnit(0.5) = %v, want 0.5", got)
	}
}
