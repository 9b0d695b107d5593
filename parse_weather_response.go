package main

import (
	"fmt"
	"time"
)

// This file maps raw OpenWeatherMap payloads onto the typed domain model.
// Every parser either returns a complete value or an error; there are no
// partial results.

// parseCurrentWeather builds a WeatherSnapshot from a /weather payload.
// The "main" and "sys" blocks are structurally required; everything else
// follows the per-field defaulting rules of the coercion layer.
func parseCurrentWeather(payload map[string]any, fallbackCity, units string) (WeatherSnapshot, error) {
	mainBlock := subMap(payload, "main")
	sysBlock := subMap(payload, "sys")
	if mainBlock == nil || sysBlock == nil {
		return WeatherSnapshot{}, ErrMalformedResponse
	}

	var description string
	if weatherList := subList(payload, "weather"); len(weatherList) > 0 {
		raw, _ := safeGet(weatherList[0], "description", "").(string)
		description = formatDescription(raw)
	} else {
		description = formatDescription("")
	}

	tzSeconds, err := intWithDefault(payload["timezone"], 0)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	offset := time.Duration(tzSeconds) * time.Second
	loc := fixedZone(offset)

	sunriseUnix, err := optionalInt(sysBlock["sunrise"])
	if err != nil {
		return WeatherSnapshot{}, err
	}
	sunsetUnix, err := optionalInt(sysBlock["sunset"])
	if err != nil {
		return WeatherSnapshot{}, err
	}

	temperature, err := requiredFloat(mainBlock, "temp")
	if err != nil {
		return WeatherSnapshot{}, err
	}
	feelsLike, err := requiredFloat(mainBlock, "feels_like")
	if err != nil {
		return WeatherSnapshot{}, err
	}
	pressure, err := requiredInt(mainBlock, "pressure")
	if err != nil {
		return WeatherSnapshot{}, err
	}
	humidity, err := requiredInt(mainBlock, "humidity")
	if err != nil {
		return WeatherSnapshot{}, err
	}
	windSpeed, err := floatWithDefault(safeGet(payload["wind"], "speed", nil), 0.0)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	windDirection, err := optionalInt(safeGet(payload["wind"], "deg", nil))
	if err != nil {
		return WeatherSnapshot{}, err
	}
	cloudiness, err := intWithDefault(safeGet(payload["clouds"], "all", nil), 0)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	// Absent bounds collapse onto the current temperature. Present bounds are
	// passed through even when they contradict it.
	temperatureMin, err := floatWithDefault(mainBlock["temp_min"], temperature)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	temperatureMax, err := floatWithDefault(mainBlock["temp_max"], temperature)
	if err != nil {
		return WeatherSnapshot{}, err
	}
	visibility, err := optionalInt(payload["visibility"])
	if err != nil {
		return WeatherSnapshot{}, err
	}

	city, _ := payload["name"].(string)
	if city == "" {
		city = fallbackCity
	}
	country, _ := sysBlock["country"].(string)

	return WeatherSnapshot{
		City:           city,
		Country:        country,
		Description:    description,
		Temperature:    temperature,
		FeelsLike:      feelsLike,
		Pressure:       pressure,
		Humidity:       humidity,
		WindSpeed:      windSpeed,
		WindDirection:  windDirection,
		Cloudiness:     cloudiness,
		TemperatureMin: temperatureMin,
		TemperatureMax: temperatureMax,
		Visibility:     visibility,
		Sunrise:        unixLocal(sunriseUnix, loc),
		Sunset:         unixLocal(sunsetUnix, loc),
		TimezoneOffset: offset,
		Units:          units,
	}, nil
}

// parseForecastList builds the chronological sample sequence from a /forecast
// payload. An absent list yields an empty sequence; missing numeric fields in
// a sample default to zero, they never inherit from the previous sample.
func parseForecastList(payload map[string]any, offset time.Duration) ([]ForecastItem, error) {
	list := subList(payload, "list")
	loc := fixedZone(offset)

	items := make([]ForecastItem, 0, len(list))
	for _, raw := range list {
		entry, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: элемент прогноза не является объектом", ErrMalformedResponse)
		}

		dt, err := requiredInt(entry, "dt")
		if err != nil {
			return nil, err
		}
		mainBlock := subMap(entry, "main")

		var description string
		if weatherList := subList(entry, "weather"); len(weatherList) > 0 {
			raw, _ := safeGet(weatherList[0], "description", "").(string)
			description = formatDescription(raw)
		} else {
			description = formatDescription("")
		}

		temperature, err := floatWithDefault(mainBlock["temp"], 0.0)
		if err != nil {
			return nil, err
		}
		feelsLike, err := floatWithDefault(mainBlock["feels_like"], 0.0)
		if err != nil {
			return nil, err
		}
		humidity, err := intWithDefault(mainBlock["humidity"], 0)
		if err != nil {
			return nil, err
		}
		windSpeed, err := floatWithDefault(safeGet(entry["wind"], "speed", nil), 0.0)
		if err != nil {
			return nil, err
		}
		cloudiness, err := intWithDefault(safeGet(entry["clouds"], "all", nil), 0)
		if err != nil {
			return nil, err
		}
		pop, err := floatWithDefault(entry["pop"], 0.0)
		if err != nil {
			return nil, err
		}
		rainVolume, err := optionalFloat(safeGet(entry["rain"], "3h", nil))
		if err != nil {
			return nil, err
		}
		snowVolume, err := optionalFloat(safeGet(entry["snow"], "3h", nil))
		if err != nil {
			return nil, err
		}

		items = append(items, ForecastItem{
			Timestamp:                time.Unix(int64(dt), 0).In(loc),
			Temperature:              temperature,
			FeelsLike:                feelsLike,
			Description:              description,
			Humidity:                 humidity,
			WindSpeed:                windSpeed,
			Cloudiness:               cloudiness,
			PrecipitationProbability: pop * 100,
			RainVolume:               rainVolume,
			SnowVolume:               snowVolume,
		})
	}

	return items, nil
}

// mergeAirQuality copies the snapshot with the AQI category and pollutant
// concentrations from an /air_pollution payload. An absent or empty list
// leaves the snapshot unchanged.
func mergeAirQuality(snapshot WeatherSnapshot, airPayload map[string]any) (WeatherSnapshot, error) {
	list := subList(airPayload, "list")
	if len(list) == 0 {
		return snapshot, nil
	}
	entry, ok := list[0].(map[string]any)
	if !ok {
		return snapshot, fmt.Errorf("%w: элемент качества воздуха не является объектом", ErrMalformedResponse)
	}

	aqi, err := optionalInt(safeGet(entry["main"], "aqi", nil))
	if err != nil {
		return snapshot, err
	}

	var components map[string]float64
	if raw := subMap(entry, "components"); len(raw) > 0 {
		components = make(map[string]float64, len(raw))
		for name, value := range raw {
			concentration, err := coerceFloat(value)
			if err != nil {
				return snapshot, fmt.Errorf("компонент %q: %w", name, err)
			}
			components[name] = concentration
		}
	}

	return snapshot.withAirQuality(aqi, components), nil
}

// mergeOneCall copies the snapshot with the UV index and alerts from a One
// Call payload. An empty alerts list is normalized to absent, which is what
// the report formatter branches on.
func mergeOneCall(snapshot WeatherSnapshot, oneCallPayload map[string]any) (WeatherSnapshot, error) {
	uvIndex, err := optionalFloat(safeGet(oneCallPayload["current"], "uvi", nil))
	if err != nil {
		return snapshot, err
	}

	var alerts []WeatherAlert
	for _, raw := range subList(oneCallPayload, "alerts") {
		entry, ok := raw.(map[string]any)
		if !ok {
			return snapshot, fmt.Errorf("%w: предупреждение не является объектом", ErrMalformedResponse)
		}
		event, _ := entry["event"].(string)
		if event == "" {
			event = "Предупреждение"
		}
		description, _ := entry["description"].(string)
		if description == "" {
			description = "Нет описания"
		}
		start, err := optionalInt(entry["start"])
		if err != nil {
			return snapshot, err
		}
		end, err := optionalInt(entry["end"])
		if err != nil {
			return snapshot, err
		}
		alerts = append(alerts, WeatherAlert{
			Event:       event,
			Description: description,
			Start:       unixTime(start),
			End:         unixTime(end),
		})
	}

	return snapshot.withUVAndAlerts(uvIndex, alerts), nil
}

// unixLocal converts an optional Unix timestamp into the given zone.
func unixLocal(ts *int, loc *time.Location) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(int64(*ts), 0).In(loc)
	return &t
}

// unixTime converts an optional Unix timestamp into an absolute instant.
func unixTime(ts *int) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(int64(*ts), 0)
	return &t
}
