// Package cache is the caller-owned cache for computed schedules and
// geolocation results. The engine itself never caches; anything that wants
// memoization holds one of these, keyed by a canonical hash of the inputs
// that affect the computation.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/geo"
	"github.com/mawaqit-dev/mawaqit/internal/prayer"
	"github.com/mawaqit-dev/mawaqit/internal/schedule"
)

const (
	scheduleCacheFile = "schedule_%s.json" // keyed by hash
	geoCacheFile      = "geolocation.json"
	geoTTL            = 24 * time.Hour
)

// Cache provides file-based storage rooted at a single directory.
type Cache struct {
	dir string
}

// ScheduleEntry stores a computed schedule range with the inputs that
// produced it, so a hash collision can still be rejected on read.
type ScheduleEntry struct {
	Range  string             `json:"range"` // e.g. "2024-03" or "2024"
	Coords prayer.Coordinates `json:"coords"`
	Params prayer.Params      `json:"params"`
	Days   []*schedule.Day    `json:"days"`
}

// GeoEntry stores a cached geolocation result with a timestamp.
type GeoEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/mawaqit/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "mawaqit")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// Key builds a deterministic hash from everything that affects a computed
// schedule: the date range, the coordinates, and the full parameter set.
func Key(rangeLabel string, coords prayer.Coordinates, params prayer.Params) string {
	raw := fmt.Sprintf("%s|%.6f|%.6f|%.3f|%.3f|%d|%d|%d|%s",
		rangeLabel,
		coords.Latitude, coords.Longitude,
		params.FajrAngle, params.IshaAngle, params.IshaInterval,
		int(params.Madhab), int(params.HighLatitudeRule), params.TimeZone)
	h := sha256.Sum256([]byte(raw))
	return fmt.Sprintf("%x", h[:8]) // 16 hex chars is plenty for uniqueness
}

// LoadSchedule attempts to read a cached schedule for the given inputs.
// Returns nil if the cache is missing, unreadable, or for other inputs.
func (c *Cache) LoadSchedule(rangeLabel string, coords prayer.Coordinates, params prayer.Params) *ScheduleEntry {
	path := filepath.Join(c.dir, fmt.Sprintf(scheduleCacheFile, Key(rangeLabel, coords, params)))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry ScheduleEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	// Reject on any input mismatch; a truncated hash is not proof.
	if entry.Range != rangeLabel || entry.Coords != coords {
		return nil
	}

	return &entry
}

// SaveSchedule writes a computed schedule range to the cache.
func (c *Cache) SaveSchedule(rangeLabel string, coords prayer.Coordinates, params prayer.Params, days []*schedule.Day) error {
	path := filepath.Join(c.dir, fmt.Sprintf(scheduleCacheFile, Key(rangeLabel, coords, params)))

	entry := ScheduleEntry{
		Range:  rangeLabel,
		Coords: coords,
		Params: params,
		Days:   days,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// LoadGeo attempts to read a cached geolocation result.
// Returns nil if the cache is missing or older than the TTL (24 hours).
func (c *Cache) LoadGeo() *geo.Location {
	path := filepath.Join(c.dir, geoCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry GeoEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if time.Since(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *Cache) SaveGeo(loc *geo.Location) error {
	path := filepath.Join(c.dir, geoCacheFile)

	entry := GeoEntry{
		Location: *loc,
		CachedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}
