package server

import (
	"strings"
	"testing"
)

// clearEnv blanks every config variable so ambient values cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENV", "DEFAULT_LATITUDE", "DEFAULT_LONGITUDE",
		"DEFAULT_TIMEZONE", "DEFAULT_METHOD", "CACHE_DIR",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.DefaultMethod != "MWL" {
		t.Errorf("DefaultMethod = %q, want MWL", cfg.DefaultMethod)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("logging = %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("environment predicates disagree with Env")
	}
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("DEFAULT_LATITUDE", "45.4215")
	t.Setenv("DEFAULT_LONGITUDE", "-75.6972")
	t.Setenv("DEFAULT_TIMEZONE", "America/Toronto")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !cfg.IsProduction() {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.DefaultLatitude != 45.4215 || cfg.DefaultLongitude != -75.6972 {
		t.Errorf("default coords = %v, %v", cfg.DefaultLatitude, cfg.DefaultLongitude)
	}
	if cfg.DefaultTimezone != "America/Toronto" {
		t.Errorf("DefaultTimezone = %q", cfg.DefaultTimezone)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q", cfg.LogFormat)
	}
}

func TestConfigValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad port", func(c *Config) { c.Port = 0 }, "PORT"},
		{"bad env", func(c *Config) { c.Env = "qa" }, "ENV"},
		{"bad latitude", func(c *Config) { c.DefaultLatitude = 91 }, "DEFAULT_LATITUDE"},
		{"bad longitude", func(c *Config) { c.DefaultLongitude = -200 }, "DEFAULT_LONGITUDE"},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port: 8080, Env: EnvDevelopment,
				LogLevel: "info", LogFormat: "console",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should name %s", err, tt.want)
			}
		})
	}
}
