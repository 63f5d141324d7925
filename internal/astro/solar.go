package astro

import (
	"math"
	"time"
)

// Position is the instantaneous state of the sun as seen from a point on
// Earth. All angles are degrees; EquationOfTime is minutes.
type Position struct {
	Declination    float64 `json:"declination"`      // angle of the sun above the celestial equator
	RightAscension float64 `json:"right_ascension"`  // [0,360)
	EquationOfTime float64 `json:"equation_of_time"` // apparent minus mean solar time, minutes
	HourAngle      float64 `json:"hour_angle"`       // displacement from the local meridian, positive west
	Altitude       float64 `json:"altitude"`         // angle above the horizon
	Azimuth        float64 `json:"azimuth"`          // [0,360), measured from north through east
}

// Ephemeris holds the observer-independent solar quantities for an instant.
// It is the piece of Position the prayer-time solves need on their own.
type Ephemeris struct {
	Declination    float64
	RightAscension float64
	EquationOfTime float64
}

// SunEphemeris computes declination, right ascension and the equation of
// time for the given Julian day, using a truncated Astronomical Almanac
// series. Accuracy is a few hundredths of a degree, which resolves prayer
// times well under a second.
func SunEphemeris(jd float64) Ephemeris {
	t := (jd - J2000) / 36525 // Julian centuries from J2000.0

	// Mean longitude and mean anomaly of the sun (degrees).
	l0 := normalizeDeg(280.46646 + 36000.76983*t + 0.0003032*t*t)
	m := normalizeDeg(357.52911 + 35999.05029*t - 0.0001537*t*t)
	mRad := radians(m)

	// Equation of center.
	c := (1.914602-0.004817*t-0.000014*t*t)*math.Sin(mRad) +
		(0.019993-0.000101*t)*math.Sin(2*mRad) +
		0.000289*math.Sin(3*mRad)

	trueLon := l0 + c

	// Apparent longitude, corrected for nutation and aberration.
	omega := 125.04 - 1934.136*t
	appLon := trueLon - 0.00569 - 0.00478*math.Sin(radians(omega))

	// Obliquity of the ecliptic, with the nutation correction.
	eps0 := 23.439291 - 0.0130042*t - 0.00000016*t*t + 0.000000504*t*t*t
	eps := eps0 + 0.00256*math.Cos(radians(omega))

	appLonRad := radians(appLon)
	epsRad := radians(eps)

	decl := degrees(math.Asin(math.Sin(epsRad) * math.Sin(appLonRad)))

	ra := degrees(math.Atan2(math.Cos(epsRad)*math.Sin(appLonRad), math.Cos(appLonRad)))
	ra = normalizeDeg(ra)

	// Equation of time as the divergence between the mean longitude and the
	// right ascension, in minutes (4 minutes per degree). 0.0057183 is the
	// constant aberration term.
	eot := 4 * normalizeDeg180(l0-0.0057183-ra)

	return Ephemeris{Declination: decl, RightAscension: ra, EquationOfTime: eot}
}

// SunPosition computes the full topocentric solar position for an observer
// at the given latitude/longitude (degrees) and instant. It is defined for
// any finite input and returns a plain numeric record.
func SunPosition(latitude, longitude float64, at time.Time) Position {
	jd := TimeToJulianDay(at)
	eph := SunEphemeris(jd)

	// True solar time in minutes from local solar midnight.
	u := at.UTC()
	utcMinutes := float64(u.Hour())*60 + float64(u.Minute()) +
		(float64(u.Second())+float64(u.Nanosecond())/1e9)/60
	solarMinutes := utcMinutes + eph.EquationOfTime + 4*longitude

	// Hour angle: zero at solar noon, positive west of the meridian.
	h := solarMinutes/4 - 180
	h = normalizeDeg180(h)

	latRad := radians(latitude)
	declRad := radians(eph.Declination)
	hRad := radians(h)

	sinAlt := math.Sin(latRad)*math.Sin(declRad) +
		math.Cos(latRad)*math.Cos(declRad)*math.Cos(hRad)
	alt := math.Asin(clampUnit(sinAlt))

	// Azimuth by the spherical law of cosines; the sign of the hour angle
	// resolves the east/west ambiguity.
	cosAz := (math.Sin(declRad) - math.Sin(latRad)*math.Sin(alt)) /
		(math.Cos(latRad) * math.Cos(alt))
	az := degrees(math.Acos(clampUnit(cosAz)))
	if h > 0 {
		az = 360 - az
	}

	return Position{
		Declination:    eph.Declination,
		RightAscension: eph.RightAscension,
		EquationOfTime: eph.EquationOfTime,
		HourAngle:      h,
		Altitude:       degrees(alt),
		Azimuth:        normalizeDeg(az),
	}
}

// HourAngleForAltitude solves the altitude equation for the hour angle (in
// degrees, always positive) at which the sun reaches the given altitude.
// ok is false when the sun never reaches that altitude on the given day
// (polar summer or winter for the requested depression).
func HourAngleForAltitude(latitude, declination, altitude float64) (h float64, ok bool) {
	latRad := radians(latitude)
	declRad := radians(declination)

	cosH := (math.Sin(radians(altitude)) - math.Sin(latRad)*math.Sin(declRad)) /
		(math.Cos(latRad) * math.Cos(declRad))
	if cosH < -1 || cosH > 1 {
		return 0, false
	}
	return degrees(math.Acos(cosH)), true
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// normalizeDeg wraps an angle into [0,360).
func normalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// normalizeDeg180 wraps an angle into [-180,180).
func normalizeDeg180(deg float64) float64 {
	deg = normalizeDeg(deg)
	if deg >= 180 {
		deg -= 360
	}
	return deg
}

// clampUnit guards asin/acos arguments against rounding drift past ±1.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
