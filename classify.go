package main

import (
	"math"
	"strings"

	"github.com/fatih/color"
)

// This file contains the categorical classifiers: pure lookups from numeric
// domains (degrees, UV index, AQI category) and condition descriptions onto
// labels, colors and glyphs.

// weatherEmoji is keyed on the English OpenWeatherMap condition phrases.
// Descriptions requested in other languages fall through to the generic glyph.
var weatherEmoji = map[string]string{
	"clear sky":            "☀️",
	"few clouds":           "🌤️",
	"scattered clouds":     "⛅",
	"broken clouds":        "☁️",
	"overcast clouds":      "☁️",
	"shower rain":          "🌧️",
	"rain":                 "🌧️",
	"light rain":           "🌦️",
	"moderate rain":        "🌧️",
	"heavy intensity rain": "⛈️",
	"thunderstorm":         "⛈️",
	"snow":                 "❄️",
	"mist":                 "🌫️",
	"fog":                  "🌫️",
	"haze":                 "🌫️",
}

// emojiForDescription matches a normalized description against the condition
// vocabulary, case-insensitively.
func emojiForDescription(description string) string {
	if emoji, ok := weatherEmoji[strings.ToLower(description)]; ok {
		return emoji
	}
	return "🌈"
}

// compassPoints is the 16-point rose, clockwise from north.
var compassPoints = [16]string{
	"С", "ССВ", "СВ", "ВСВ", "В", "ВЮВ", "ЮВ", "ЮЮВ",
	"Ю", "ЮЮЗ", "ЮЗ", "ЗЮЗ", "З", "ЗСЗ", "СЗ", "ССЗ",
}

// windCompass maps wind degrees onto the 16-point rose. Sector ties round
// upward (floor(x + 0.5)), so 11.25° lands on ССВ.
func windCompass(degrees int) string {
	normalized := ((degrees % 360) + 360) % 360
	index := int(math.Floor(float64(normalized)/22.5+0.5)) % len(compassPoints)
	return compassPoints[index]
}

// windArrows is the coarser 8-point sequence, starting with "↓" at 0° (an
// arrow shows where the wind blows to, not where it comes from).
var windArrows = [8]string{"↓", "↙", "←", "↖", "↑", "↗", "→", "↘"}

// windArrow maps wind degrees onto an arrow glyph in 45° sectors.
func windArrow(degrees int) string {
	normalized := ((degrees % 360) + 360) % 360
	return windArrows[normalized/45]
}

// uvBand is one severity band of the UV index scale. Bounds are inclusive.
type uvBand struct {
	min, max float64
	label    string
	color    *color.Color
}

var uvBands = []uvBand{
	{0, 2, "Низкий", color.New(color.FgGreen)},
	{3, 5, "Умеренный", color.New(color.FgYellow)},
	{6, 7, "Высокий", color.New(color.FgHiYellow)},
	{8, 10, "Очень высокий", color.New(color.FgHiRed)},
	{11, math.Inf(1), "Экстремальный", color.New(color.FgRed)},
}

// uvLabel buckets a UV index value into its severity band. Values falling
// between bands (e.g. 2.5) or below zero resolve to "Неизвестно".
func uvLabel(uv float64) (string, *color.Color) {
	for _, band := range uvBands {
		if uv >= band.min && uv <= band.max {
			return band.label, band.color
		}
	}
	return "Неизвестно", nil
}

// aqiBand is the label and color for one AQI category.
type aqiBand struct {
	label string
	color *color.Color
}

var aqiBands = map[int]aqiBand{
	1: {"Отличное", color.New(color.FgGreen)},
	2: {"Хорошее", color.New(color.FgHiGreen)},
	3: {"Умеренное", color.New(color.FgYellow)},
	4: {"Плохое", color.New(color.FgHiRed)},
	5: {"Очень плохое", color.New(color.FgRed)},
}

// aqiLabel maps an OpenWeatherMap AQI category (1–5) onto its severity label.
// Out-of-range categories resolve to "Неизвестно" rather than failing.
func aqiLabel(aqi int) (string, *color.Color) {
	if band, ok := aqiBands[aqi]; ok {
		return band.label, band.color
	}
	return "Неизвестно", nil
}
