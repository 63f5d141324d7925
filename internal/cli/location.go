package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/mawaqit-dev/mawaqit/internal/config"
	"github.com/mawaqit-dev/mawaqit/internal/geo"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
)

// resolvedLocation holds the result of location resolution.
type resolvedLocation struct {
	Coords   prayer.Coordinates
	City     string // only known when auto-detected
	Country  string
	Timezone string // IANA hint, possibly empty
	Auto     bool
}

// String renders "City, Country" when known, otherwise the coordinates.
func (l resolvedLocation) String() string {
	if l.City != "" && l.Country != "" {
		return l.City + ", " + l.Country
	}
	return fmt.Sprintf("%.4f, %.4f", l.Coords.Latitude, l.Coords.Longitude)
}

// resolveLocation determines the effective location.
// Priority: configured/flag coordinates > cached geolocation > IP auto-detect.
// As in most geo tooling, (0,0) is treated as "not set".
func resolveLocation(cfg *config.Config, c *cache.Cache) (resolvedLocation, error) {
	if cfg.Latitude != 0 || cfg.Longitude != 0 {
		coords, err := prayer.NewCoordinates(cfg.Latitude, cfg.Longitude)
		if err != nil {
			return resolvedLocation{}, err
		}
		return resolvedLocation{Coords: coords, Timezone: cfg.TimeZone}, nil
	}

	// Try cached geolocation first.
	if c != nil {
		if cached := c.LoadGeo(); cached != nil {
			return locationFromGeo(cfg, cached, true)
		}
	}

	// Fall back to IP-based geolocation.
	detected, err := geo.DetectLocation()
	if err != nil {
		return resolvedLocation{}, fmt.Errorf("no location configured and auto-detection failed: %w", err)
	}

	if c != nil {
		_ = c.SaveGeo(detected) // best-effort
	}

	return locationFromGeo(cfg, detected, true)
}

func locationFromGeo(cfg *config.Config, loc *geo.Location, auto bool) (resolvedLocation, error) {
	coords, err := prayer.NewCoordinates(loc.Latitude, loc.Longitude)
	if err != nil {
		return resolvedLocation{}, fmt.Errorf("geolocation returned %v: %w", loc, err)
	}
	tz := cfg.TimeZone
	if tz == "" {
		tz = loc.Timezone
	}
	return resolvedLocation{
		Coords:   coords,
		City:     loc.City,
		Country:  loc.Country,
		Timezone: tz,
		Auto:     auto,
	}, nil
}

// buildParams expands the merged config into calculator parameters for the
// resolved location. An empty timezone falls back to UTC (the engine's
// default); times are then labeled in UTC.
func buildParams(cfg *config.Config, loc resolvedLocation) (prayer.Params, error) {
	method := cfg.MethodOrDefault(prayer.MuslimWorldLeague)
	madhab := cfg.MadhabOrDefault(prayer.Shafi)
	rule := cfg.HighLatitudeRuleOrDefault(prayer.HighLatAngleBased)

	params := method.Params(madhab, rule, loc.Timezone)
	if err := params.Validate(); err != nil {
		return prayer.Params{}, err
	}
	return params, nil
}

// buildAggregator wires config + location into a schedule aggregator.
func buildAggregator(cfg *config.Config, loc resolvedLocation) (*schedule.Aggregator, prayer.Params, error) {
	params, err := buildParams(cfg, loc)
	if err != nil {
		return nil, prayer.Params{}, err
	}
	agg, err := schedule.New(loc.Coords, params, cfg.HijriOffsetOrDefault(0))
	if err != nil {
		return nil, prayer.Params{}, err
	}
	return agg, params, nil
}

// selectedEvents resolves which events to show from config, defaulting to
// the main six.
func selectedEvents(cfg *config.Config) []string {
	if cfg.Prayers == "" {
		return prayer.DefaultEventNames
	}
	names := strings.Split(cfg.Prayers, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}

// goTimeFormat maps the config time_format to a Go layout.
func goTimeFormat(cfg *config.Config) string {
	if cfg.TimeFormat == "12h" {
		return "3:04 PM"
	}
	return "15:04"
}

// displayLocation resolves the *time.Location used for rendering.
func displayLocation(params prayer.Params) (*time.Location, error) {
	return params.Location()
}
