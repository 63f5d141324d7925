// Package prayer derives the daily prayer and twilight events for a
// location from the solar ephemeris in internal/astro.
package prayer

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors returned by parameter validation and the calculator.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidParams     = errors.New("invalid calculation parameters")
)

// Coordinates is a validated geographic position in degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewCoordinates validates and constructs a Coordinates value.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("%w: latitude %v out of range [-90,90]", ErrInvalidCoordinate, lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinates{}, fmt.Errorf("%w: longitude %v out of range [-180,180]", ErrInvalidCoordinate, lon)
	}
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}

// Madhab selects the Asr shadow convention: the multiple of an object's own
// height its shadow must exceed (beyond the noon shadow) at Asr.
type Madhab int

const (
	Shafi  Madhab = 1
	Hanafi Madhab = 2
)

func (m Madhab) String() string {
	switch m {
	case Shafi:
		return "Shafi"
	case Hanafi:
		return "Hanafi"
	default:
		return fmt.Sprintf("Madhab(%d)", int(m))
	}
}

// ParseMadhab accepts a madhab by name (case-insensitive).
func ParseMadhab(s string) (Madhab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shafi", "shafii", "standard":
		return Shafi, nil
	case "hanafi":
		return Hanafi, nil
	default:
		return 0, fmt.Errorf("%w: unknown madhab %q", ErrInvalidParams, s)
	}
}

// HighLatitudeRule chooses the fallback used when the sun never reaches the
// required depression angle (polar summer/winter). The affected twilight
// event is then placed a fixed fraction of the night away from
// sunrise/sunset instead of being undefined.
type HighLatitudeRule int

const (
	// HighLatAngleBased uses angle/60 of the night. Default.
	HighLatAngleBased HighLatitudeRule = iota
	// HighLatMiddleOfNight uses half the night.
	HighLatMiddleOfNight
	// HighLatOneSeventh uses a seventh of the night.
	HighLatOneSeventh
)

func (r HighLatitudeRule) String() string {
	switch r {
	case HighLatAngleBased:
		return "angle-based"
	case HighLatMiddleOfNight:
		return "middle-of-night"
	case HighLatOneSeventh:
		return "one-seventh"
	default:
		return fmt.Sprintf("HighLatitudeRule(%d)", int(r))
	}
}

// ParseHighLatitudeRule accepts a rule by name (case-insensitive).
func ParseHighLatitudeRule(s string) (HighLatitudeRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "angle-based", "anglebased", "angle":
		return HighLatAngleBased, nil
	case "middle-of-night", "middleofnight", "middle":
		return HighLatMiddleOfNight, nil
	case "one-seventh", "oneseventh", "seventh":
		return HighLatOneSeventh, nil
	default:
		return 0, fmt.Errorf("%w: unknown high latitude rule %q", ErrInvalidParams, s)
	}
}

// nightPortion returns the fraction of the night the rule substitutes for
// an unsolvable twilight at the given depression angle.
func (r HighLatitudeRule) nightPortion(angle float64) float64 {
	switch r {
	case HighLatMiddleOfNight:
		return 1.0 / 2.0
	case HighLatOneSeventh:
		return 1.0 / 7.0
	default:
		return angle / 60.0
	}
}

// Params are the tunable inputs of the calculator. FajrAngle and IshaAngle
// are depression angles in degrees below the horizon. A positive
// IshaInterval (minutes after Maghrib) overrides IshaAngle entirely; the
// two are mutually exclusive.
type Params struct {
	FajrAngle        float64          `json:"fajr_angle"`
	IshaAngle        float64          `json:"isha_angle"`
	IshaInterval     int              `json:"isha_interval,omitempty"` // minutes after Maghrib
	Madhab           Madhab           `json:"madhab"`
	HighLatitudeRule HighLatitudeRule `json:"high_latitude_rule"`
	TimeZone         string           `json:"timezone"` // IANA name, e.g. "America/Toronto"
}

// Validate checks the parameter combination, naming the offending field.
func (p Params) Validate() error {
	if p.FajrAngle <= 0 {
		return fmt.Errorf("%w: fajr_angle must be positive, got %v", ErrInvalidParams, p.FajrAngle)
	}
	if p.IshaInterval < 0 {
		return fmt.Errorf("%w: isha_interval must not be negative, got %d", ErrInvalidParams, p.IshaInterval)
	}
	if p.IshaInterval == 0 && p.IshaAngle <= 0 {
		return fmt.Errorf("%w: isha_angle must be positive when no isha_interval is set, got %v", ErrInvalidParams, p.IshaAngle)
	}
	if p.Madhab != Shafi && p.Madhab != Hanafi {
		return fmt.Errorf("%w: madhab must be Shafi (1) or Hanafi (2), got %d", ErrInvalidParams, int(p.Madhab))
	}
	return nil
}

// Location resolves the IANA timezone name, defaulting to UTC when unset.
func (p Params) Location() (*time.Location, error) {
	if p.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidParams, p.TimeZone, err)
	}
	return loc, nil
}

// Method is a closed enumeration of calculation-method presets. Each
// variant carries its angle/interval constants, so an invalid method value
// is unrepresentable once parsed.
type Method int

const (
	MuslimWorldLeague Method = iota
	NorthAmerica             // ISNA
	Egypt
	Karachi
	UmmAlQura
	Gulf
	Kuwait
	Qatar
	Singapore
	Tehran
	France
	Russia
)

// Methods lists every preset in declaration order, for tables and docs.
var Methods = []Method{
	MuslimWorldLeague, NorthAmerica, Egypt, Karachi, UmmAlQura, Gulf,
	Kuwait, Qatar, Singapore, Tehran, France, Russia,
}

// methodSpec holds the constants a preset contributes to Params.
type methodSpec struct {
	name         string
	description  string
	fajrAngle    float64
	ishaAngle    float64
	ishaInterval int
}

var methodSpecs = map[Method]methodSpec{
	MuslimWorldLeague: {"MWL", "Muslim World League", 18, 17, 0},
	NorthAmerica:      {"NorthAmerica", "Islamic Society of North America (ISNA)", 15, 15, 0},
	Egypt:             {"Egypt", "Egyptian General Authority of Survey", 19.5, 17.5, 0},
	Karachi:           {"Karachi", "University of Islamic Sciences, Karachi", 18, 18, 0},
	UmmAlQura:         {"UmmAlQura", "Umm Al-Qura University, Makkah", 18.5, 0, 90},
	Gulf:              {"Gulf", "Gulf Region", 19.5, 0, 90},
	Kuwait:            {"Kuwait", "Kuwait", 18, 17.5, 0},
	Qatar:             {"Qatar", "Qatar", 18, 0, 90},
	Singapore:         {"Singapore", "Majlis Ugama Islam Singapura", 20, 18, 0},
	Tehran:            {"Tehran", "Institute of Geophysics, University of Tehran", 17.7, 14, 0},
	France:            {"France", "Union Organization Islamique de France", 12, 12, 0},
	Russia:            {"Russia", "Spiritual Administration of Muslims of Russia", 16, 15, 0},
}

func (m Method) String() string {
	if s, ok := methodSpecs[m]; ok {
		return s.name
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// Description returns the long organizational name of the preset.
func (m Method) Description() string {
	return methodSpecs[m].description
}

// Params expands the preset into calculator parameters with the given
// madhab, high-latitude rule, and timezone.
func (m Method) Params(madhab Madhab, rule HighLatitudeRule, timeZone string) Params {
	s := methodSpecs[m]
	return Params{
		FajrAngle:        s.fajrAngle,
		IshaAngle:        s.ishaAngle,
		IshaInterval:     s.ishaInterval,
		Madhab:           madhab,
		HighLatitudeRule: rule,
		TimeZone:         timeZone,
	}
}

// ParseMethod resolves a preset by name (case-insensitive).
func ParseMethod(s string) (Method, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for m, spec := range methodSpecs {
		if strings.ToLower(spec.name) == needle {
			return m, nil
		}
	}
	// A couple of aliases users reach for.
	switch needle {
	case "isna":
		return NorthAmerica, nil
	case "mwl", "muslimworldleague":
		return MuslimWorldLeague, nil
	case "makkah", "mecca":
		return UmmAlQura, nil
	}
	return 0, fmt.Errorf("%w: unknown calculation method %q", ErrInvalidParams, s)
}
