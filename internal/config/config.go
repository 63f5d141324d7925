// Package config provides persistent configuration for the mawaqit CLI.
//
// Configuration is stored as JSON at ~/.config/mawaqit/config.json
// (XDG-compliant). The merge priority is: CLI flags > config file > defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mawaqit-dev/mawaqit/internal/prayer"
)

const (
	configDirName  = "mawaqit"
	configFileName = "config.json"
)

// ValidKeys lists all config keys that can be set via `config set`.
var ValidKeys = []string{
	"latitude", "longitude",
	"timezone",
	"method", "madhab", "high_latitude_rule",
	"hijri_offset",
	"time_format",
	"prayers",
	"cache_dir",
}

// Config holds all user-configurable settings.
// Zero values mean "not set" (use defaults or auto-detect).
type Config struct {
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	TimeZone         string  `json:"timezone,omitempty"`           // IANA name
	Method           string  `json:"method,omitempty"`             // preset name, e.g. "MWL"
	Madhab           string  `json:"madhab,omitempty"`             // "Shafi" or "Hanafi"
	HighLatitudeRule string  `json:"high_latitude_rule,omitempty"` // "angle-based", "middle-of-night", "one-seventh"
	HijriOffset      *int    `json:"hijri_offset,omitempty"`       // pointer so "not set" differs from 0
	TimeFormat       string  `json:"time_format,omitempty"`        // "12h" or "24h"
	Prayers          string  `json:"prayers,omitempty"`            // comma-separated list
	CacheDir         string  `json:"cache_dir,omitempty"`
}

// Defaults returns a Config with all default values applied.
func Defaults() Config {
	offset := 0
	return Config{
		Method:           prayer.MuslimWorldLeague.String(),
		Madhab:           prayer.Shafi.String(),
		HighLatitudeRule: prayer.HighLatAngleBased.String(),
		HijriOffset:      &offset,
		TimeFormat:       "24h",
	}
}

// Dir returns the config directory path.
// It respects $XDG_CONFIG_HOME if set, otherwise uses ~/.config/.
func Dir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, configDirName), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load reads the config file from disk.
// If the file does not exist, it returns an empty Config (not an error).
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from a specific file path.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := Config{}
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to a specific file path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Reset deletes the config file.
func Reset() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return ResetAt(path)
}

// ResetAt deletes the config file at a specific path.
func ResetAt(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete config file: %w", err)
	}
	return nil
}

// Set sets a config key to the given value.
// It validates the key name and parses the value into the correct type.
func (c *Config) Set(key, value string) error {
	switch key {
	case "latitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid latitude %q: must be a number", value)
		}
		if v < -90 || v > 90 {
			return fmt.Errorf("invalid latitude %q: must be between -90 and 90", value)
		}
		c.Latitude = v
	case "longitude":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid longitude %q: must be a number", value)
		}
		if v < -180 || v > 180 {
			return fmt.Errorf("invalid longitude %q: must be between -180 and 180", value)
		}
		c.Longitude = v
	case "timezone":
		c.TimeZone = value
	case "method":
		m, err := prayer.ParseMethod(value)
		if err != nil {
			return fmt.Errorf("invalid method %q: valid methods: %s", value, methodNames())
		}
		c.Method = m.String()
	case "madhab":
		m, err := prayer.ParseMadhab(value)
		if err != nil {
			return fmt.Errorf("invalid madhab %q: must be Shafi or Hanafi", value)
		}
		c.Madhab = m.String()
	case "high_latitude_rule":
		r, err := prayer.ParseHighLatitudeRule(value)
		if err != nil {
			return fmt.Errorf("invalid high_latitude_rule %q: must be angle-based, middle-of-night, or one-seventh", value)
		}
		c.HighLatitudeRule = r.String()
	case "hijri_offset":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid hijri_offset %q: must be an integer", value)
		}
		if v < -2 || v > 2 {
			return fmt.Errorf("invalid hijri_offset %q: must be between -2 and 2", value)
		}
		c.HijriOffset = &v
	case "time_format":
		if value != "12h" && value != "24h" {
			return fmt.Errorf("invalid time_format %q: must be \"12h\" or \"24h\"", value)
		}
		c.TimeFormat = value
	case "prayers":
		names := strings.Split(value, ",")
		for _, n := range names {
			n = strings.TrimSpace(n)
			if _, ok := prayer.IsEventName(n); !ok {
				return fmt.Errorf("invalid prayer name %q in prayers list", n)
			}
		}
		c.Prayers = value
	case "cache_dir":
		c.CacheDir = value
	default:
		return fmt.Errorf("unknown config key %q; valid keys: %s", key, strings.Join(ValidKeys, ", "))
	}

	return nil
}

// Get returns the string value of a config key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "latitude":
		if c.Latitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Latitude, 'f', -1, 64), nil
	case "longitude":
		if c.Longitude == 0 {
			return "", nil
		}
		return strconv.FormatFloat(c.Longitude, 'f', -1, 64), nil
	case "timezone":
		return c.TimeZone, nil
	case "method":
		return c.Method, nil
	case "madhab":
		return c.Madhab, nil
	case "high_latitude_rule":
		return c.HighLatitudeRule, nil
	case "hijri_offset":
		if c.HijriOffset == nil {
			return "", nil
		}
		return strconv.Itoa(*c.HijriOffset), nil
	case "time_format":
		return c.TimeFormat, nil
	case "prayers":
		return c.Prayers, nil
	case "cache_dir":
		return c.CacheDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q", key)
	}
}

// MethodOrDefault resolves the configured method preset, falling back to
// the given default when unset.
func (c *Config) MethodOrDefault(def prayer.Method) prayer.Method {
	if c.Method == "" {
		return def
	}
	m, err := prayer.ParseMethod(c.Method)
	if err != nil {
		return def
	}
	return m
}

// MadhabOrDefault resolves the configured madhab, falling back to def.
func (c *Config) MadhabOrDefault(def prayer.Madhab) prayer.Madhab {
	if c.Madhab == "" {
		return def
	}
	m, err := prayer.ParseMadhab(c.Madhab)
	if err != nil {
		return def
	}
	return m
}

// HighLatitudeRuleOrDefault resolves the configured rule, falling back to def.
func (c *Config) HighLatitudeRuleOrDefault(def prayer.HighLatitudeRule) prayer.HighLatitudeRule {
	if c.HighLatitudeRule == "" {
		return def
	}
	r, err := prayer.ParseHighLatitudeRule(c.HighLatitudeRule)
	if err != nil {
		return def
	}
	return r
}

// HijriOffsetOrDefault returns the configured Hijri day offset or def.
func (c *Config) HijriOffsetOrDefault(def int) int {
	if c.HijriOffset == nil {
		return def
	}
	return *c.HijriOffset
}

func methodNames() string {
	names := make([]string, 0, len(prayer.Methods))
	for _, m := range prayer.Methods {
		names = append(names, m.String())
	}
	return strings.Join(names, ", ")
}
