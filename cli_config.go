package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	defaultWeatherURL    = "https://api.openweathermap.org/data/2.5/weather"
	defaultForecastURL   = "https://api.openweathermap.org/data/2.5/forecast"
	defaultAirQualityURL = "https://api.openweathermap.org/data/2.5/air_pollution"
	defaultOneCallURL    = "https://api.openweathermap.org/data/3.0/onecall"

	defaultUnits    = UnitsMetric
	defaultLanguage = "ru"
	defaultTimeout  = 10.0

	envAPIKey = "OPENWEATHER_API_KEY"
)

// cliConfig carries everything one invocation needs: resolved options, the
// HTTP client, the cache backend and the logger.
type cliConfig struct {
	apiKey        string
	units         string
	language      string
	weatherURL    string
	forecastURL   string
	airQualityURL string
	oneCallURL    string
	httpClient    *http.Client
	cache         Cache
	useCache      bool
	colorEnabled  bool
	showForecast  bool
	showHourly    bool
	showChart     bool
	showExtended  bool
	logger        *slog.Logger
}

// cliOptions is the raw flag surface before resolution against the
// environment.
type cliOptions struct {
	apiKey     string
	units      string
	language   string
	timeout    float64
	forecast   bool
	hourly     bool
	chart      bool
	extended   bool
	noColor    bool
	noCache    bool
	flushCache bool
	verbose    bool
}

// getEnv retrieves an environment variable by key, with a fallback value.
func getEnv(key, fallback string, logger *slog.Logger) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	logger.Debug("environment variable not set, using fallback", "key", key, "fallback", fallback)
	return fallback
}

// getEnvAsInt retrieves an environment variable as an integer, with a fallback value.
func getEnvAsInt(key string, fallback int, logger *slog.Logger) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		logger.Warn("invalid integer value for environment variable, using fallback", "key", key, "value", valStr, "error", err)
		return fallback
	}
	return val
}

// config resolves the flag surface against the environment into a ready
// cliConfig. Reports go to stdout, so the logger writes to stderr.
func config(opts cliOptions) (*cliConfig, error) {
	devMode, err := strconv.ParseBool(os.Getenv("DEV_MODE"))
	if err != nil {
		devMode = false
	}

	level := slog.LevelInfo
	if opts.verbose || devMode {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, relying on environment variables")
	}

	apiKey := opts.apiKey
	if apiKey == "" {
		apiKey = os.Getenv(envAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API ключ OpenWeatherMap не указан. Передайте его через -api-key или задайте переменную окружения %s", envAPIKey)
	}

	switch opts.units {
	case UnitsMetric, UnitsImperial, UnitsStandard:
	default:
		return nil, fmt.Errorf("недопустимые единицы измерения %q (допустимы metric, imperial, standard)", opts.units)
	}

	cache, err := newCacheBackend(logger)
	if err != nil {
		return nil, err
	}

	cfg := cliConfig{
		apiKey:        apiKey,
		units:         opts.units,
		language:      opts.language,
		weatherURL:    getEnv("OWM_WEATHER_URL", defaultWeatherURL, logger),
		forecastURL:   getEnv("OWM_FORECAST_URL", defaultForecastURL, logger),
		airQualityURL: getEnv("OWM_AIR_QUALITY_URL", defaultAirQualityURL, logger),
		oneCallURL:    getEnv("OWM_ONECALL_URL", defaultOneCallURL, logger),
		httpClient: &http.Client{
			Timeout: time.Duration(opts.timeout * float64(time.Second)),
		},
		cache:        cache,
		useCache:     !opts.noCache,
		colorEnabled: !opts.noColor,
		showForecast: opts.forecast,
		showHourly:   opts.hourly,
		showChart:    opts.chart,
		showExtended: opts.extended,
		logger:       logger,
	}

	return &cfg, nil
}

// newCacheBackend selects the cache implementation: Redis when REDIS_URL is
// set, otherwise one JSON file per key under the cache directory.
func newCacheBackend(logger *slog.Logger) (Cache, error) {
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("не удалось разобрать REDIS_URL: %w", err)
		}
		client := redis.NewClient(opt)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := client.Ping(ctx).Result(); err != nil {
			return nil, fmt.Errorf("не удалось подключиться к Redis: %w", err)
		}
		logger.Debug("using redis cache", "url", redisURL)
		return NewRedisCache(client), nil
	}

	dir := os.Getenv("CACHE_DIR")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("не удалось определить домашний каталог: %w", err)
		}
		dir = filepath.Join(home, ".yonse_weather_cache")
	}
	logger.Debug("using file cache", "dir", dir)
	return NewFileCache(dir), nil
}
