package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// NASA POWER fetch configuration.
	PowerBaseURL   string
	PowerTimeout   time.Duration
	PowerCacheSize int
	PowerStartYear int

	// Nominatim geocoding configuration.
	NominatimBaseURL   string
	NominatimTimeout   time.Duration
	NominatimCacheSize int

	// Analysis floors and defaults.
	MinValidPoints    int
	MinSampleYears    int
	DefaultWindowDays int
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	powerTimeout, err := parseDuration("POWER_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	nominatimTimeout, err := parseDuration("NOMINATIM_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	powerCacheSize, err := parsePositiveInt("POWER_CACHE_SIZE", 100)
	if err != nil {
		return nil, err
	}
	nominatimCacheSize, err := parsePositiveInt("NOMINATIM_CACHE_SIZE", 1000)
	if err != nil {
		return nil, err
	}
	startYear, err := parsePositiveInt("POWER_START_YEAR", 1991)
	if err != nil {
		return nil, err
	}
	minValid, err := parsePositiveInt("MIN_VALID_POINTS", 365)
	if err != nil {
		return nil, err
	}
	minYears, err := parsePositiveInt("MIN_SAMPLE_YEARS", 10)
	if err != nil {
		return nil, err
	}
	windowDays, err := parseNonNegativeInt("DEFAULT_WINDOW_DAYS", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		PowerBaseURL:   envOrDefault("POWER_BASE_URL", "https://power.larc.nasa.gov"),
		PowerTimeout:   powerTimeout,
		PowerCacheSize: powerCacheSize,
		PowerStartYear: startYear,

		NominatimBaseURL:   envOrDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		NominatimTimeout:   nominatimTimeout,
		NominatimCacheSize: nominatimCacheSize,

		MinValidPoints:    minValid,
		MinSampleYears:    minYears,
		DefaultWindowDays: windowDays,
	}

	if cfg.PowerBaseURL == "" {
		return nil, errors.New("POWER_BASE_URL is required")
	}
	if cfg.NominatimBaseURL == "" {
		return nil, errors.New("NOMINATIM_BASE_URL is required")
	}
	if cfg.PowerStartYear < 1981 {
		// POWER daily coverage begins in 1981.
		return nil, fmt.Errorf("POWER_START_YEAR %d predates available data (1981)", cfg.PowerStartYear)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}

func parseNonNegativeInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
