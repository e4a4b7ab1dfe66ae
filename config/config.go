package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config carries the operator-tunable knobs of the task settlement engine.
// It is loaded once at startup and injected into the reward resolver and the
// geo gate; nothing reads the environment at request time.
type Config struct {
	// TaskRewardOverride, when > 0, pays this flat amount for every task
	// regardless of the user's membership plan.
	TaskRewardOverride float64 `yaml:"task_reward_override"`

	// BlockedCountries is the deny-list of ISO country codes for which all
	// task endpoints are rejected.
	BlockedCountries []string `yaml:"blocked_countries"`

	// GeoLookupTimeout bounds the reverse-IP country lookup. On timeout the
	// gate fails open.
	GeoLookupTimeout time.Duration `yaml:"-"`

	// GeoLookupTimeoutSeconds is the YAML-facing form of GeoLookupTimeout.
	GeoLookupTimeoutSeconds int `yaml:"geo_lookup_timeout_seconds"`
}

// DefaultBlockedCountries is the deny-list applied when no override is
// configured.
var DefaultBlockedCountries = []string{"US", "GB", "IN"}

const defaultGeoLookupTimeout = 3 * time.Second

// Load builds the Config from defaults, an optional YAML file (CONFIG_FILE)
// and environment overrides, in that order of increasing precedence.
func Load() (*Config, error) {
	cfg := &Config{
		BlockedCountries: append([]string(nil), DefaultBlockedCountries...),
		GeoLookupTimeout: defaultGeoLookupTimeout,
	}

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("config: parsing %s: %w", path, err)
		}
		if cfg.GeoLookupTimeoutSeconds > 0 {
			cfg.GeoLookupTimeout = time.Duration(cfg.GeoLookupTimeoutSeconds) * time.Second
		}
	}

	if v := strings.TrimSpace(os.Getenv("TASK_REWARD_OVERRIDE")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("config: TASK_REWARD_OVERRIDE: %w", err)
		}
		cfg.TaskRewardOverride = f
	}
	if v := strings.TrimSpace(os.Getenv("BLOCKED_COUNTRIES")); v != "" {
		cfg.BlockedCountries = splitCodes(v)
	}
	if v := strings.TrimSpace(os.Getenv("GEO_LOOKUP_TIMEOUT_SEC")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("config: GEO_LOOKUP_TIMEOUT_SEC must be a positive integer")
		}
		cfg.GeoLookupTimeout = time.Duration(n) * time.Second
	}

	normalize(cfg)
	return cfg, nil
}

// IsBlockedCountry reports whether code is on the deny-list. Comparison is
// case-insensitive; the empty code (unknown country) is never blocked.
func (c *Config) IsBlockedCountry(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return false
	}
	for _, b := range c.BlockedCountries {
		if b == code {
			return true
		}
	}
	return false
}

func splitCodes(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalize(cfg *Config) {
	for i, c := range cfg.BlockedCountries {
		cfg.BlockedCountries[i] = strings.ToUpper(strings.TrimSpace(c))
	}
	if cfg.GeoLookupTimeout <= 0 {
		cfg.GeoLookupTimeout = defaultGeoLookupTimeout
	}
}
