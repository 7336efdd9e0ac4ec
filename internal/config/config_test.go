package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)

	assert.Equal(t, "https://power.larc.nasa.gov", cfg.PowerBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PowerTimeout)
	assert.Equal(t, 100, cfg.PowerCacheSize)
	assert.Equal(t, 1991, cfg.PowerStartYear)

	assert.Equal(t, "https://nominatim.openstreetmap.org", cfg.NominatimBaseURL)
	assert.Equal(t, 10*time.Second, cfg.NominatimTimeout)
	assert.Equal(t, 1000, cfg.NominatimCacheSize)

	assert.Equal(t, 365, cfg.MinValidPoints)
	assert.Equal(t, 10, cfg.MinSampleYears)
	assert.Equal(t, 0, cfg.DefaultWindowDays)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("POWER_BASE_URL", "http://localhost:8181")
	t.Setenv("POWER_TIMEOUT", "5s")
	t.Setenv("POWER_CACHE_SIZE", "10")
	t.Setenv("POWER_START_YEAR", "2001")
	t.Setenv("NOMINATIM_BASE_URL", "http://localhost:8282")
	t.Setenv("MIN_SAMPLE_YEARS", "5")
	t.Setenv("DEFAULT_WINDOW_DAYS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "http://localhost:8181", cfg.PowerBaseURL)
	assert.Equal(t, 5*time.Second, cfg.PowerTimeout)
	assert.Equal(t, 10, cfg.PowerCacheSize)
	assert.Equal(t, 2001, cfg.PowerStartYear)
	assert.Equal(t, "http://localhost:8282", cfg.NominatimBaseURL)
	assert.Equal(t, 5, cfg.MinSampleYears)
	assert.Equal(t, 3, cfg.DefaultWindowDays)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"malformed shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative power timeout", "POWER_TIMEOUT", "-5s"},
		{"zero cache size", "POWER_CACHE_SIZE", "0"},
		{"non-numeric min years", "MIN_SAMPLE_YEARS", "ten"},
		{"negative window", "DEFAULT_WINDOW_DAYS", "-1"},
		{"start year before coverage", "POWER_START_YEAR", "1975"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
