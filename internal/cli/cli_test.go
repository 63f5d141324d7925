package cli

import (
	"testing"

	"github.com/mawaqit-dev/mawaqit/internal/config"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
)

// --- command wiring ---

func TestNewRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd("v0.0.0-test")

	want := []string{
		"next", "list", "week", "month", "year", "query",
		"hijri", "sun", "timeline", "config", "methods",
	}
	have := make(map[string]bool)
	for _, c := range root.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestNewRootCmd_PersistentFlags(t *testing.T) {
	root := NewRootCmd("v0.0.0-test")
	pf := root.PersistentFlags()

	for _, name := range []string{
		"latitude", "longitude", "timezone", "method", "madhab",
		"high-lat-rule", "hijri-offset", "json", "cache-dir", "time-format",
	} {
		if pf.Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
}

func TestNewRootCmd_Version(t *testing.T) {
	root := NewRootCmd("v1.2.3")
	if root.Version != "v1.2.3" {
		t.Errorf("Version = %q", root.Version)
	}
}

func TestPrintVersion(t *testing.T) {
	if got := PrintVersion("v1.2.3"); got != "mawaqit v1.2.3\n" {
		t.Errorf("PrintVersion = %q", got)
	}
}

// --- flag merge ---

func TestEffectiveConfig_FlagOverridesConfig(t *testing.T) {
	root := NewRootCmd("test")
	loadedConfig = &config.Config{Latitude: 1, Longitude: 2, Method: "Egypt"}
	t.Cleanup(func() { loadedConfig = nil })

	if err := root.PersistentFlags().Set("latitude", "45.4215"); err != nil {
		t.Fatal(err)
	}
	if err := root.PersistentFlags().Set("method", "isna"); err != nil {
		t.Fatal(err)
	}

	cfg := effectiveConfig(root)
	if cfg.Latitude != 45.4215 {
		t.Errorf("Latitude = %v, want flag value", cfg.Latitude)
	}
	if cfg.Longitude != 2 {
		t.Errorf("Longitude = %v, want config value", cfg.Longitude)
	}
	if cfg.Method != "isna" {
		t.Errorf("Method = %q, want flag value", cfg.Method)
	}
}

func TestEffectiveConfig_DefaultsFillGaps(t *testing.T) {
	root := NewRootCmd("test")
	loadedConfig = &config.Config{}
	t.Cleanup(func() { loadedConfig = nil })

	cfg := effectiveConfig(root)
	if cfg.Method != "MWL" {
		t.Errorf("Method = %q, want default MWL", cfg.Method)
	}
	if cfg.Madhab != "Shafi" {
		t.Errorf("Madhab = %q, want default Shafi", cfg.Madhab)
	}
	if cfg.TimeFormat != "24h" {
		t.Errorf("TimeFormat = %q, want default 24h", cfg.TimeFormat)
	}
	if cfg.HijriOffset == nil || *cfg.HijriOffset != 0 {
		t.Errorf("HijriOffset = %v, want 0", cfg.HijriOffset)
	}
}

// --- location helpers ---

func TestResolvedLocationString(t *testing.T) {
	withPlace := resolvedLocation{City: "Ottawa", Country: "Canada"}
	if got := withPlace.String(); got != "Ottawa, Canada" {
		t.Errorf("String() = %q", got)
	}

	coords, _ := prayer.NewCoordinates(45.4215, -75.6972)
	bare := resolvedLocation{Coords: coords}
	if got := bare.String(); got != "45.4215, -75.6972" {
		t.Errorf("String() = %q", got)
	}
}

func TestResolveLocation_ConfiguredCoordinates(t *testing.T) {
	cfg := &config.Config{Latitude: 45.4215, Longitude: -75.6972, TimeZone: "America/Toronto"}

	loc, err := resolveLocation(cfg, nil)
	if err != nil {
		t.Fatalf("resolveLocation: %v", err)
	}
	if loc.Auto {
		t.Error("configured coordinates should not be marked auto")
	}
	if loc.Coords.Latitude != 45.4215 || loc.Timezone != "America/Toronto" {
		t.Errorf("resolved = %+v", loc)
	}
}

func TestResolveLocation_RejectsBadConfig(t *testing.T) {
	cfg := &config.Config{Latitude: 95, Longitude: 0}
	if _, err := resolveLocation(cfg, nil); err == nil {
		t.Error("expected error for out-of-range configured latitude")
	}
}

func TestBuildParams(t *testing.T) {
	cfg := &config.Config{Method: "NorthAmerica", Madhab: "Hanafi"}
	loc := resolvedLocation{Timezone: "America/Toronto"}

	params, err := buildParams(cfg, loc)
	if err != nil {
		t.Fatalf("buildParams: %v", err)
	}
	if params.FajrAngle != 15 || params.Madhab != prayer.Hanafi {
		t.Errorf("params = %+v", params)
	}
	if params.TimeZone != "America/Toronto" {
		t.Errorf("TimeZone = %q", params.TimeZone)
	}
}

func TestBuildAggregator(t *testing.T) {
	cfg := &config.Config{}
	coords, _ := prayer.NewCoordinates(21.4225, 39.8262)
	loc := resolvedLocation{Coords: coords}

	agg, params, err := buildAggregator(cfg, loc)
	if err != nil {
		t.Fatalf("buildAggregator: %v", err)
	}
	if agg == nil {
		t.Fatal("aggregator is nil")
	}
	if params.FajrAngle != 18 {
		t.Errorf("default method should be MWL, FajrAngle = %v", params.FajrAngle)
	}
}

func TestSelectedEvents(t *testing.T) {
	if got := selectedEvents(&config.Config{}); len(got) != 6 {
		t.Errorf("default events = %v", got)
	}

	cfg := &config.Config{Prayers: "Fajr, Maghrib ,Isha"}
	got := selectedEvents(cfg)
	want := []string{"Fajr", "Maghrib", "Isha"}
	if len(got) != len(want) {
		t.Fatalf("selectedEvents = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("selectedEvents[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGoTimeFormat(t *testing.T) {
	if got := goTimeFormat(&config.Config{TimeFormat: "12h"}); got != "3:04 PM" {
		t.Errorf("12h layout = %q", got)
	}
	if got := goTimeFormat(&config.Config{}); got != "15:04" {
		t.Errorf("default layout = %q", got)
	}
}
