package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/geo"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
)

func sampleInputs() (prayer.Coordinates, prayer.Params) {
	coords, _ := prayer.NewCoordinates(51.5074, -0.1278)
	params := prayer.MuslimWorldLeague.Params(prayer.Shafi, prayer.HighLatAngleBased, "Europe/London")
	return coords, params
}

func sampleDays(t *testing.T, coords prayer.Coordinates, params prayer.Params) []*schedule.Day {
	t.Helper()
	agg, err := schedule.New(coords, params, 0)
	if err != nil {
		t.Fatalf("schedule.New: %v", err)
	}
	days, err := agg.Range(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), 3)
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	return days
}

// ---------------------------------------------------------------------------
// New
// ---------------------------------------------------------------------------

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir", "cache")
	_, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error: %v", dir, err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Errorf("directory %q was not created", dir)
	}
}

// ---------------------------------------------------------------------------
// Key
// ---------------------------------------------------------------------------

func TestKey_Deterministic(t *testing.T) {
	coords, params := sampleInputs()

	k1 := Key("2024-03", coords, params)
	k2 := Key("2024-03", coords, params)
	if k1 != k2 {
		t.Errorf("Key not deterministic: %q != %q", k1, k2)
	}
	if len(k1) != 16 {
		t.Errorf("Key length = %d, want 16 hex chars", len(k1))
	}
}

func TestKey_SensitiveToInputs(t *testing.T) {
	coords, params := sampleInputs()
	base := Key("2024-03", coords, params)

	if Key("2024-04", coords, params) == base {
		t.Error("Key should change with the range")
	}

	moved := coords
	moved.Latitude += 0.001
	if Key("2024-03", moved, params) == base {
		t.Error("Key should change with the coordinates")
	}

	hanafi := params
	hanafi.Madhab = prayer.Hanafi
	if Key("2024-03", coords, hanafi) == base {
		t.Error("Key should change with the madhab")
	}
}

// ---------------------------------------------------------------------------
// SaveSchedule / LoadSchedule round-trip
// ---------------------------------------------------------------------------

func TestSchedule_RoundTrip(t *testing.T) {
	c, _ := New(t.TempDir())
	coords, params := sampleInputs()
	days := sampleDays(t, coords, params)

	if err := c.SaveSchedule("2024-03", coords, params, days); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	entry := c.LoadSchedule("2024-03", coords, params)
	if entry == nil {
		t.Fatal("LoadSchedule returned nil after save")
	}
	if len(entry.Days) != 3 {
		t.Fatalf("len(Days) = %d, want 3", len(entry.Days))
	}
	if entry.Days[0].Hijri.Year != days[0].Hijri.Year {
		t.Errorf("Hijri year = %d, want %d", entry.Days[0].Hijri.Year, days[0].Hijri.Year)
	}
	if !entry.Days[1].Events[0].Time.Equal(days[1].Events[0].Time) {
		t.Errorf("event time changed across the round trip")
	}
}

func TestLoadSchedule_MissingEntry(t *testing.T) {
	c, _ := New(t.TempDir())
	coords, params := sampleInputs()

	if entry := c.LoadSchedule("2024-03", coords, params); entry != nil {
		t.Error("LoadSchedule on empty cache should return nil")
	}
}

func TestLoadSchedule_DifferentInputsMiss(t *testing.T) {
	c, _ := New(t.TempDir())
	coords, params := sampleInputs()
	days := sampleDays(t, coords, params)

	if err := c.SaveSchedule("2024-03", coords, params, days); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}

	other := params
	other.FajrAngle = 15
	if entry := c.LoadSchedule("2024-03", coords, other); entry != nil {
		t.Error("different params should miss")
	}
	if entry := c.LoadSchedule("2024", coords, params); entry != nil {
		t.Error("different range should miss")
	}
}

func TestLoadSchedule_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)
	coords, params := sampleInputs()

	path := filepath.Join(dir, "schedule_"+Key("2024-03", coords, params)+".json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if entry := c.LoadSchedule("2024-03", coords, params); entry != nil {
		t.Error("corrupt cache file should be treated as a miss")
	}
}

// ---------------------------------------------------------------------------
// Geo cache
// ---------------------------------------------------------------------------

func TestGeo_RoundTrip(t *testing.T) {
	c, _ := New(t.TempDir())

	loc := &geo.Location{
		City:      "Ottawa",
		Country:   "Canada",
		Latitude:  45.4215,
		Longitude: -75.6972,
		Timezone:  "America/Toronto",
	}
	if err := c.SaveGeo(loc); err != nil {
		t.Fatalf("SaveGeo: %v", err)
	}

	got := c.LoadGeo()
	if got == nil {
		t.Fatal("LoadGeo returned nil after save")
	}
	if got.City != "Ottawa" || got.Timezone != "America/Toronto" {
		t.Errorf("LoadGeo = %+v", got)
	}
}

func TestLoadGeo_Expired(t *testing.T) {
	dir := t.TempDir()
	c, _ := New(dir)

	entry := GeoEntry{
		Location: geo.Location{City: "Ottawa"},
		CachedAt: time.Now().Add(-25 * time.Hour),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "geolocation.json"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	if got := c.LoadGeo(); got != nil {
		t.Errorf("LoadGeo past TTL = %+v, want nil", got)
	}
}

func TestLoadGeo_Missing(t *testing.T) {
	c, _ := New(t.TempDir())
	if got := c.LoadGeo(); got != nil {
		t.Errorf("LoadGeo on empty cache = %+v, want nil", got)
	}
}
