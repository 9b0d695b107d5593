package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv pins the environment variables config consults, so tests do
// not pick up the developer's real settings.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DEV_MODE", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv(envAPIKey, "")
	t.Setenv("CACHE_DIR", t.TempDir())
}

func TestParseArgsDefaults(t *testing.T) {
	opts, city, err := parseArgs(nil)

	require.NoError(t, err)
	assert.Empty(t, city)
	assert.Equal(t, defaultUnits, opts.units)
	assert.Equal(t, defaultLanguage, opts.language)
	assert.Equal(t, defaultTimeout, opts.timeout)
	assert.False(t, opts.forecast)
	assert.False(t, opts.noColor)
}

func TestParseArgsFlagsAndCity(t *testing.T) {
	opts, city, err := parseArgs([]string{
		"-forecast", "-hourly", "-chart", "-extended",
		"-units", "imperial", "-lang", "en", "-timeout", "2.5",
		"-api-key", "abc", "-no-color", "-no-cache", "-flush-cache", "-verbose",
		"Нижний Новгород",
	})

	require.NoError(t, err)
	assert.Equal(t, "Нижний Новгород", city)
	assert.True(t, opts.forecast)
	assert.True(t, opts.hourly)
	assert.True(t, opts.chart)
	assert.True(t, opts.extended)
	assert.Equal(t, "imperial", opts.units)
	assert.Equal(t, "en", opts.language)
	assert.Equal(t, 2.5, opts.timeout)
	assert.Equal(t, "abc", opts.apiKey)
	assert.True(t, opts.noColor)
	assert.True(t, opts.noCache)
	assert.True(t, opts.flushCache)
	assert.True(t, opts.verbose)
}

func TestParseArgsTrimsCity(t *testing.T) {
	_, city, err := parseArgs([]string{"  Москва  "})
	require.NoError(t, err)
	assert.Equal(t, "Москва", city)
}

func TestParseArgsUnknownFlag(t *testing.T) {
	_, _, err := parseArgs([]string{"-bogus"})
	assert.Error(t, err)
}

func TestConfigAPIKeyFromFlag(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := config(cliOptions{apiKey: "flag-key", units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.apiKey)
}

func TestConfigAPIKeyFromEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(envAPIKey, "env-key")

	cfg, err := config(cliOptions{units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.apiKey)
}

func TestConfigFlagOverridesEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv(envAPIKey, "env-key")

	cfg, err := config(cliOptions{apiKey: "flag-key", units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.apiKey)
}

func TestConfigMissingAPIKey(t *testing.T) {
	clearConfigEnv(t)

	_, err := config(cliOptions{units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.Error(t, err)
	assert.Contains(t, err.Error(), envAPIKey)
}

func TestConfigInvalidUnits(t *testing.T) {
	clearConfigEnv(t)

	_, err := config(cliOptions{apiKey: "k", units: "kelvin", language: defaultLanguage, timeout: defaultTimeout})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kelvin")
}

func TestConfigOptionMapping(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := config(cliOptions{
		apiKey:   "k",
		units:    defaultUnits,
		language: defaultLanguage,
		timeout:  3,
		forecast: true,
		noColor:  true,
		noCache:  true,
	})

	require.NoError(t, err)
	assert.True(t, cfg.showForecast)
	assert.False(t, cfg.colorEnabled)
	assert.False(t, cfg.useCache)
	assert.Equal(t, 3*time.Second, cfg.httpClient.Timeout)
	assert.Equal(t, defaultWeatherURL, cfg.weatherURL)
}

func TestConfigFileCacheBackend(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := config(cliOptions{apiKey: "k", units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.NoError(t, err)
	_, ok := cfg.cache.(*FileCache)
	assert.True(t, ok, "CACHE_DIR must select the file backend")
}

func TestConfigURLOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OWM_WEATHER_URL", "http://localhost:1234/weather")

	cfg, err := config(cliOptions{apiKey: "k", units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:1234/weather", cfg.weatherURL)
	assert.Equal(t, defaultForecastURL, cfg.forecastURL)
}

func TestConfigInvalidRedisURL(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("REDIS_URL", "://not-a-url")

	_, err := config(cliOptions{apiKey: "k", units: defaultUnits, language: defaultLanguage, timeout: defaultTimeout})

	assert.Error(t, err)
}

func TestGetEnvAsInt(t *testing.T) {
	clearConfigEnv(t)
	logger := discardLogger()

	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("SOME_INT", 7, logger))

	t.Setenv("SOME_INT", "not-a-number")
	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7, logger))

	assert.Equal(t, 7, getEnvAsInt("UNSET_INT", 7, logger))
}
