package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// This file renders the forecast reports: the 5-day daily summary, the
// short-term hourly listing and the ASCII temperature chart.

const (
	dailyForecastDays  = 5
	hourlyForecastSize = 8
	chartHeight        = 10
)

var forecastTimeStyle = color.New(color.FgYellow)

// formatDailyForecast groups the samples by calendar day (in their local
// timestamps), keeps the first five distinct days and reports per-day extremes,
// the mean temperature and the dominant description.
func formatDailyForecast(items []ForecastItem, units string, colorEnabled bool) string {
	if len(items) == 0 {
		return "Нет данных прогноза"
	}

	tempUnit, _ := unitLabels(units)

	dayOrder := make([]string, 0, dailyForecastDays)
	byDay := make(map[string][]ForecastItem)
	for _, item := range items {
		dayKey := item.Timestamp.Format("2006-01-02")
		if _, seen := byDay[dayKey]; !seen {
			dayOrder = append(dayOrder, dayKey)
		}
		byDay[dayKey] = append(byDay[dayKey], item)
	}
	if len(dayOrder) > dailyForecastDays {
		dayOrder = dayOrder[:dailyForecastDays]
	}

	lines := []string{
		paint(headerStyle, "📅 Прогноз погоды на 5 дней", colorEnabled),
		strings.Repeat("=", 60),
	}

	for _, dayKey := range dayOrder {
		dayItems := byDay[dayKey]
		dayName := dayItems[0].Timestamp.Format("Monday, 02 January")

		minTemp := dayItems[0].Temperature
		maxTemp := dayItems[0].Temperature
		sum := 0.0
		maxPrecipitation := 0.0
		for _, item := range dayItems {
			if item.Temperature < minTemp {
				minTemp = item.Temperature
			}
			if item.Temperature > maxTemp {
				maxTemp = item.Temperature
			}
			sum += item.Temperature
			if item.PrecipitationProbability > maxPrecipitation {
				maxPrecipitation = item.PrecipitationProbability
			}
		}
		avgTemp := sum / float64(len(dayItems))
		mainDescription := dominantDescription(dayItems)

		emoji := emojiForDescription(mainDescription)
		lines = append(lines, "\n"+paint(forecastTimeStyle, fmt.Sprintf("%s %s", emoji, dayName), colorEnabled))
		lines = append(lines, "  "+mainDescription)
		lines = append(lines, fmt.Sprintf("  🌡️  Температура: %.1f%s ... %.1f%s (средняя %.1f%s)",
			minTemp, tempUnit, maxTemp, tempUnit, avgTemp, tempUnit))
		if maxPrecipitation > 10 {
			lines = append(lines, fmt.Sprintf("  💧 Вероятность осадков: %.0f%%", maxPrecipitation))
		}
	}

	return strings.Join(lines, "\n")
}

// dominantDescription is the most frequent description of the day. Ties break
// toward the description that reached the winning count first, so the result
// is stable across runs.
func dominantDescription(items []ForecastItem) string {
	counts := make(map[string]int, len(items))
	best := ""
	bestCount := 0
	for _, item := range items {
		counts[item.Description]++
		if counts[item.Description] > bestCount {
			best = item.Description
			bestCount = counts[item.Description]
		}
	}
	return best
}

// formatHourlyForecast renders the first eight samples verbatim as
// time/emoji/temperature/description rows.
func formatHourlyForecast(items []ForecastItem, units string, colorEnabled bool) string {
	if len(items) == 0 {
		return "Нет данных прогноза"
	}

	tempUnit, _ := unitLabels(units)

	lines := []string{
		paint(headerStyle, "⏰ Почасовой прогноз на 24 часа", colorEnabled),
		strings.Repeat("=", 80),
	}

	for _, item := range items[:min(len(items), hourlyForecastSize)] {
		timeLabel := paint(forecastTimeStyle, item.Timestamp.Format("15:04"), colorEnabled)
		line := fmt.Sprintf("%s %s %5.1f%s  %s",
			timeLabel, emojiForDescription(item.Description), item.Temperature, tempUnit, item.Description)
		if item.PrecipitationProbability > 20 {
			line += fmt.Sprintf("  💧 %.0f%%", item.PrecipitationProbability)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderTemperatureChart plots the first eight samples as a 10-row sparkline.
// Each column is one sample; its row is the temperature scaled linearly
// between the sample minimum (bottom row) and maximum (top row). Fewer than
// two samples make no chart.
func renderTemperatureChart(items []ForecastItem) string {
	if len(items) < 2 {
		return ""
	}

	samples := items[:min(len(items), hourlyForecastSize)]
	temps := make([]float64, len(samples))
	for i, item := range samples {
		temps[i] = item.Temperature
	}

	minTemp, maxTemp := temps[0], temps[0]
	for _, t := range temps {
		if t < minTemp {
			minTemp = t
		}
		if t > maxTemp {
			maxTemp = t
		}
	}
	tempRange := maxTemp - minTemp
	if tempRange == 0 {
		tempRange = 1
	}

	grid := make([][]byte, chartHeight)
	for row := range grid {
		grid[row] = make([]byte, 0, len(temps))
	}
	for _, t := range temps {
		pos := chartHeight - 1 - int((t-minTemp)/tempRange*float64(chartHeight-1))
		for row := 0; row < chartHeight; row++ {
			if row == pos {
				grid[row] = append(grid[row], 1)
			} else {
				grid[row] = append(grid[row], 0)
			}
		}
	}

	lines := []string{"📈 График температуры (24 часа)", ""}
	for row := 0; row < chartHeight; row++ {
		var b strings.Builder
		for _, cell := range grid[row] {
			if cell == 1 {
				b.WriteString("●")
			} else {
				b.WriteString(" ")
			}
		}
		rowTemp := maxTemp - float64(row)/float64(chartHeight-1)*tempRange
		lines = append(lines, fmt.Sprintf("%5.1f° │%s", rowTemp, b.String()))
	}
	lines = append(lines, fmt.Sprintf("      └%s", strings.Repeat("─", len(temps))))

	timeLabels := make([]string, 0, (len(samples)+1)/2)
	for i := 0; i < len(samples); i += 2 {
		timeLabels = append(timeLabels, samples[i].Timestamp.Format("15:04"))
	}
	lines = append(lines, "        "+strings.Join(timeLabels, "  "))

	return strings.Join(lines, "\n")
}
