package main

import "time"

// Unit systems accepted by OpenWeatherMap.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"
	UnitsStandard = "standard"
)

// unitLabels returns the temperature and wind speed labels for a unit system.
func unitLabels(units string) (tempUnit, windUnit string) {
	switch units {
	case UnitsMetric:
		return "°C", "м/с"
	case UnitsImperial:
		return "°F", "mph"
	case UnitsStandard:
		return "K", "м/с"
	default:
		return "°", "м/с"
	}
}

// WeatherAlert is one weather warning from the One Call API.
type WeatherAlert struct {
	Event       string
	Description string
	Start       *time.Time
	End         *time.Time
}

// WeatherSnapshot is a single point-in-time reading for one city. A snapshot
// is never mutated after construction; enrichment goes through the with...
// methods, which copy.
type WeatherSnapshot struct {
	City           string
	Country        string
	Description    string
	Temperature    float64
	FeelsLike      float64
	Pressure       int
	Humidity       int
	WindSpeed      float64
	WindDirection  *int
	Cloudiness     int
	TemperatureMin float64
	TemperatureMax float64
	Visibility     *int
	Sunrise        *time.Time
	Sunset         *time.Time
	TimezoneOffset time.Duration
	Units          string

	UVIndex              *float64
	AirQualityIndex      *int
	AirQualityComponents map[string]float64
	WeatherAlerts        []WeatherAlert
}

// withAirQuality returns a copy of the snapshot with pollution data attached.
// The value receiver is the copy.
func (s WeatherSnapshot) withAirQuality(index *int, components map[string]float64) WeatherSnapshot {
	s.AirQualityIndex = index
	s.AirQualityComponents = components
	return s
}

// withUVAndAlerts returns a copy of the snapshot with the UV index and any
// active alerts attached.
func (s WeatherSnapshot) withUVAndAlerts(uvIndex *float64, alerts []WeatherAlert) WeatherSnapshot {
	s.UVIndex = uvIndex
	s.WeatherAlerts = alerts
	return s
}

// ForecastItem is one 3-hour sample from the 5-day forecast.
type ForecastItem struct {
	Timestamp                time.Time
	Temperature              float64
	FeelsLike                float64
	Description              string
	Humidity                 int
	WindSpeed                float64
	Cloudiness               int
	PrecipitationProbability float64
	RainVolume               *float64
	SnowVolume               *float64
}

// fixedZone converts a UTC offset into a *time.Location.
func fixedZone(offset time.Duration) *time.Location {
	if offset == 0 {
		return time.UTC
	}
	return time.FixedZone(formatTimezone(offset), int(offset.Seconds()))
}
