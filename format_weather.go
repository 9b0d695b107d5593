package main

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
)

// This file renders the current-conditions report. Formatting never mutates
// the snapshot; with colors disabled the output keeps identical structure and
// spacing, only the decoration markers disappear.

const humidityBarWidth = 30
const alertDescriptionLimit = 200

var (
	headerStyle      = color.New(color.FgCyan, color.Bold)
	alertHeaderStyle = color.New(color.FgRed, color.Bold)
	alertEventStyle  = color.New(color.FgYellow)
)

// paint wraps s in the style's escape codes when coloring is on. A nil style
// leaves the text as is.
func paint(style *color.Color, s string, enabled bool) string {
	if !enabled || style == nil {
		return s
	}
	return style.Sprint(s)
}

// temperatureStyle picks the color band for a temperature value.
func temperatureStyle(temperature float64) *color.Color {
	switch {
	case temperature < 0:
		return color.New(color.FgBlue)
	case temperature < 10:
		return color.New(color.FgCyan)
	case temperature < 20:
		return color.New(color.FgGreen)
	case temperature < 30:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

// reportRow is one "label : value" line of the report. A non-nil style tints
// the whole value; rows whose value already carries its own colors leave it
// nil.
type reportRow struct {
	label string
	value string
	style *color.Color
}

// formatCurrentConditions renders the snapshot as an aligned multi-row report.
// Optional fields contribute rows only when present, and the label column
// width is computed over the rows actually emitted.
func formatCurrentConditions(snapshot WeatherSnapshot, colorEnabled bool) string {
	tempUnit, windUnit := unitLabels(snapshot.Units)

	location := snapshot.City
	if snapshot.Country != "" {
		location = fmt.Sprintf("%s, %s", location, snapshot.Country)
	}

	emoji := emojiForDescription(snapshot.Description)
	header := paint(headerStyle, fmt.Sprintf("%s Погода от YonSe в городе %s", emoji, location), colorEnabled)

	timezoneLabel := formatTimezone(snapshot.TimezoneOffset)
	tempStyle := temperatureStyle(snapshot.Temperature)

	rows := []reportRow{
		{"🌤️  Кратко", snapshot.Description, nil},
		{"🌡️  Температура", paint(tempStyle, fmt.Sprintf("%.1f %s", snapshot.Temperature, tempUnit), colorEnabled), nil},
		{"🤔 Ощущается как", paint(tempStyle, fmt.Sprintf("%.1f %s", snapshot.FeelsLike, tempUnit), colorEnabled), nil},
		{"📊 Давление", fmt.Sprintf("%d гПа (~%.0f мм рт. ст.)", snapshot.Pressure, float64(snapshot.Pressure)*0.75006), nil},
		{"💧 Влажность", humidityBar(snapshot.Humidity, humidityBarWidth), color.New(color.FgHiBlue)},
		{"💨 Скорость ветра", fmt.Sprintf("%.1f %s", snapshot.WindSpeed, windUnit), color.New(color.FgHiCyan)},
	}

	if snapshot.WindDirection != nil {
		degrees := *snapshot.WindDirection
		rows = append(rows, reportRow{
			"🧭 Направление ветра",
			fmt.Sprintf("%s %d° (%s)", windArrow(degrees), degrees, windCompass(degrees)),
			nil,
		})
	}

	rows = append(rows,
		reportRow{"☁️  Облачность", fmt.Sprintf("%d%%", snapshot.Cloudiness), nil},
		reportRow{"🔽 Мин. температура", fmt.Sprintf("%.1f %s", snapshot.TemperatureMin, tempUnit), color.New(color.FgBlue)},
		reportRow{"🔼 Макс. температура", fmt.Sprintf("%.1f %s", snapshot.TemperatureMax, tempUnit), color.New(color.FgRed)},
	)

	if snapshot.Visibility != nil {
		rows = append(rows, reportRow{"👁️  Видимость", formatVisibility(*snapshot.Visibility), nil})
	}

	rows = append(rows,
		reportRow{"🌅 Восход", formatClock(snapshot.Sunrise, timezoneLabel), color.New(color.FgHiYellow)},
		reportRow{"🌇 Закат", formatClock(snapshot.Sunset, timezoneLabel), color.New(color.FgHiMagenta)},
	)

	if snapshot.UVIndex != nil {
		label, style := uvLabel(*snapshot.UVIndex)
		value := paint(style, fmt.Sprintf("%.1f (%s)", *snapshot.UVIndex, label), colorEnabled)
		rows = append(rows, reportRow{"☀️  UV-индекс", value, nil})
	}

	if snapshot.AirQualityIndex != nil {
		label, style := aqiLabel(*snapshot.AirQualityIndex)
		value := paint(style, fmt.Sprintf("%d (%s)", *snapshot.AirQualityIndex, label), colorEnabled)
		rows = append(rows, reportRow{"🌬️  Качество воздуха", value, nil})

		if concentration, ok := snapshot.AirQualityComponents["pm2_5"]; ok {
			rows = append(rows, reportRow{"   • PM2.5", fmt.Sprintf("%.1f μg/m³", concentration), color.New(color.FgHiBlack)})
		}
		if concentration, ok := snapshot.AirQualityComponents["pm10"]; ok {
			rows = append(rows, reportRow{"   • PM10", fmt.Sprintf("%.1f μg/m³", concentration), color.New(color.FgHiBlack)})
		}
	}

	labelWidth := 0
	for _, row := range rows {
		if width := utf8.RuneCountInString(row.label); width > labelWidth {
			labelWidth = width
		}
	}

	lines := []string{header, strings.Repeat("=", 70)}
	for _, row := range rows {
		padding := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(row.label))
		lines = append(lines, fmt.Sprintf("%s%s : %s", row.label, padding, paint(row.style, row.value, colorEnabled)))
	}

	if len(snapshot.WeatherAlerts) > 0 {
		lines = append(lines, formatAlerts(snapshot.WeatherAlerts, colorEnabled)...)
	}

	return strings.Join(lines, "\n")
}

// formatAlerts renders the trailing weather-alert section.
func formatAlerts(alerts []WeatherAlert, colorEnabled bool) []string {
	separator := strings.Repeat("=", 70)
	lines := []string{
		"\n" + separator,
		paint(alertHeaderStyle, "⚠️  ПОГОДНЫЕ ПРЕДУПРЕЖДЕНИЯ", colorEnabled),
		separator,
	}

	for _, alert := range alerts {
		lines = append(lines, paint(alertEventStyle, "• "+alert.Event, colorEnabled))
		if alert.Start != nil && alert.End != nil {
			lines = append(lines, fmt.Sprintf("  Период: %s - %s",
				alert.Start.Format("02.01 15:04"), alert.End.Format("02.01 15:04")))
		}
		lines = append(lines, "  "+truncateRunes(alert.Description, alertDescriptionLimit)+"...")
	}

	return lines
}

// humidityBar renders humidity as a fixed-width filled/unfilled block bar.
// The filled cell count is humidity/100 of the width, rounded down.
func humidityBar(humidity, width int) string {
	filled := humidity * width / 100
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %d%%", bar, humidity)
}

// formatVisibility renders visibility in meters with a derived kilometer value.
func formatVisibility(visibility int) string {
	return fmt.Sprintf("%d м (%.1f км)", visibility, float64(visibility)/1000)
}

// formatClock renders an optional instant as HH:MM:SS plus the zone label.
func formatClock(moment *time.Time, timezoneLabel string) string {
	if moment == nil {
		return "—"
	}
	return fmt.Sprintf("%s (%s)", moment.Format("15:04:05"), timezoneLabel)
}

// truncateRunes keeps at most limit runes of s.
func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
