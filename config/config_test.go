package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("TASK_REWARD_OVERRIDE", "")
	t.Setenv("BLOCKED_COUNTRIES", "")
	t.Setenv("GEO_LOOKUP_TIMEOUT_SEC", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.TaskRewardOverride)
	assert.Equal(t, DefaultBlockedCountries, cfg.BlockedCountries)
	assert.Equal(t, 3*time.Second, cfg.GeoLookupTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TASK_REWARD_OVERRIDE", "40")
	t.Setenv("BLOCKED_COUNTRIES", "de, fr ,cn")
	t.Setenv("GEO_LOOKUP_TIMEOUT_SEC", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 40.0, cfg.TaskRewardOverride)
	assert.Equal(t, []string{"DE", "FR", "CN"}, cfg.BlockedCountries)
	assert.Equal(t, 5*time.Second, cfg.GeoLookupTimeout)
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	raw := "task_reward_override: 25\nblocked_countries: [br, ar]\ngeo_lookup_timeout_seconds: 7\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 25.0, cfg.TaskRewardOverride)
	assert.Equal(t, []string{"BR", "AR"}, cfg.BlockedCountries)
	assert.Equal(t, 7*time.Second, cfg.GeoLookupTimeout)
}

func TestLoadEnvBeatsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("task_reward_override: 25\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("TASK_REWARD_OVERRIDE", "55")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 55.0, cfg.TaskRewardOverride)
}

func TestLoadBadEnvValue(t *testing.T) {
	t.Setenv("TASK_REWARD_OVERRIDE", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}

func TestIsBlockedCountry(t *testing.T) {
	cfg := &Config{BlockedCountries: []string{"US", "GB", "IN"}}
	assert.True(t, cfg.IsBlockedCountry("US"))
	assert.True(t, cfg.IsBlockedCountry("us"))
	assert.True(t, cfg.IsBlockedCountry(" gb "))
	assert.False(t, cfg.IsBlockedCountry("PK"))
	// unknown origin is never blocked (fail open)
	assert.False(t, cfg.IsBlockedCountry(""))
}
