package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// This file contains the fetch layer: query composition, the cache-checked
// GETs against OpenWeatherMap and upstream error detection. All fetches are
// single-attempt; there is no retry policy.

// Cache TTL constants define how long a cached payload stays fresh.
const currentWeatherCacheTTL = 10 * time.Minute
const forecastCacheTTL = 30 * time.Minute

// fetchJSON performs one GET and decodes the body as a JSON object. Non-200
// statuses are not an error here: OpenWeatherMap embeds its error code in the
// payload, which checkUpstreamError inspects.
func (cfg *cliConfig) fetchJSON(ctx context.Context, rawURL string, params url.Values) (map[string]any, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	resp, err := cfg.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: не удалось связаться с OpenWeatherMap: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: не удалось разобрать ответ OpenWeatherMap: %v", ErrTransport, err)
	}
	return payload, resp.StatusCode, nil
}

// checkUpstreamError inspects the "cod" field OpenWeatherMap embeds in its
// payloads. It arrives as a JSON number or a numeric string depending on the
// endpoint; anything else is itself an upstream error.
func checkUpstreamError(payload map[string]any, statusCode int) error {
	code, ok := payload["cod"]
	if !ok {
		code = statusCode
	}
	numeric, err := coerceInt(code)
	if err != nil {
		return fmt.Errorf("%w: некорректный код ответа API: %v", ErrUpstream, code)
	}
	if numeric != http.StatusOK {
		message, _ := payload["message"].(string)
		if message == "" {
			message = "неизвестная ошибка OpenWeatherMap"
		}
		return fmt.Errorf("%w: %s", ErrUpstream, message)
	}
	return nil
}

// fetchWithCache runs a fetch through the cache facade: a fresh cached payload
// short-circuits the network call, and a successful fetch is written back
// best-effort (a failed write is logged and swallowed).
func (cfg *cliConfig) fetchWithCache(
	ctx context.Context,
	cacheKey string,
	ttl time.Duration,
	fetch func(context.Context) (map[string]any, error),
) (map[string]any, error) {
	if cfg.useCache {
		cached, err := cfg.cache.Get(ctx, cacheKey)
		if err == nil {
			var payload map[string]any
			if jsonErr := json.Unmarshal([]byte(cached), &payload); jsonErr == nil {
				cfg.logger.Debug("cache hit", "key", cacheKey)
				return payload, nil
			}
			cfg.logger.Warn("invalid cache entry: unmarshal error", "key", cacheKey)
		} else if !errors.Is(err, errCacheMiss) {
			cfg.logger.Warn("error getting from cache", "key", cacheKey, "error", err)
		}
	}

	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	cfg.logger.Debug("api fetch successful", "key", cacheKey)

	if cfg.useCache {
		if err := cfg.cache.Set(ctx, cacheKey, payload, ttl); err != nil {
			cfg.logger.Warn("error writing to cache", "key", cacheKey, "error", err)
		}
	}
	return payload, nil
}

// cacheKeyFor composes the deterministic cache key for a payload kind. City
// names are normalized so "Москва" and " москва " share an entry.
func (cfg *cliConfig) cacheKeyFor(kind, city string) string {
	normalized, err := normalizeCityName(city)
	if err != nil {
		normalized = strings.ToLower(city)
	}
	return fmt.Sprintf("%s_%s_%s_%s", kind, normalized, cfg.units, cfg.language)
}

// fetchCurrentWeather retrieves the /weather payload for a city, cached for
// ten minutes.
func (cfg *cliConfig) fetchCurrentWeather(ctx context.Context, city string) (map[string]any, error) {
	return cfg.fetchWithCache(ctx, cfg.cacheKeyFor("weather", city), currentWeatherCacheTTL,
		func(ctx context.Context) (map[string]any, error) {
			params := url.Values{}
			params.Set("q", city)
			params.Set("appid", cfg.apiKey)
			params.Set("units", cfg.units)
			params.Set("lang", cfg.language)

			payload, status, err := cfg.fetchJSON(ctx, cfg.weatherURL, params)
			if err != nil {
				return nil, err
			}
			if err := checkUpstreamError(payload, status); err != nil {
				return nil, err
			}
			return payload, nil
		})
}

// fetchForecast retrieves the 5-day /forecast payload for a city, cached for
// thirty minutes.
func (cfg *cliConfig) fetchForecast(ctx context.Context, city string) (map[string]any, error) {
	return cfg.fetchWithCache(ctx, cfg.cacheKeyFor("forecast", city), forecastCacheTTL,
		func(ctx context.Context) (map[string]any, error) {
			params := url.Values{}
			params.Set("q", city)
			params.Set("appid", cfg.apiKey)
			params.Set("units", cfg.units)
			params.Set("lang", cfg.language)

			payload, status, err := cfg.fetchJSON(ctx, cfg.forecastURL, params)
			if err != nil {
				return nil, err
			}
			if err := checkUpstreamError(payload, status); err != nil {
				return nil, err
			}
			return payload, nil
		})
}

// fetchAirQuality retrieves the /air_pollution payload for coordinates. The
// endpoint carries no "cod" field, so there is no upstream check, and the
// result is never cached.
func (cfg *cliConfig) fetchAirQuality(ctx context.Context, lat, lon float64) (map[string]any, error) {
	params := url.Values{}
	params.Set("lat", formatCoordinate(lat))
	params.Set("lon", formatCoordinate(lon))
	params.Set("appid", cfg.apiKey)

	payload, _, err := cfg.fetchJSON(ctx, cfg.airQualityURL, params)
	return payload, err
}

// fetchOneCall retrieves the One Call payload (UV index, alerts) for
// coordinates. Never cached.
func (cfg *cliConfig) fetchOneCall(ctx context.Context, lat, lon float64) (map[string]any, error) {
	params := url.Values{}
	params.Set("lat", formatCoordinate(lat))
	params.Set("lon", formatCoordinate(lon))
	params.Set("appid", cfg.apiKey)
	params.Set("units", cfg.units)
	params.Set("exclude", "minutely")

	payload, status, err := cfg.fetchJSON(ctx, cfg.oneCallURL, params)
	if err != nil {
		return nil, err
	}
	if err := checkUpstreamError(payload, status); err != nil {
		return nil, err
	}
	return payload, nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
