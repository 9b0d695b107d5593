package main

import (
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/fatih/color"
)

func sampleSnapshot() WeatherSnapshot {
	windDirection := 250
	visibility := 10000
	offset := 3 * time.Hour
	sunrise := time.Unix(1756171800, 0).In(fixedZone(offset))
	sunset := time.Unix(1756222500, 0).In(fixedZone(offset))

	return WeatherSnapshot{
		City:           "Москва",
		Country:        "RU",
		Description:    "Пасмурно",
		Temperature:    21.4,
		FeelsLike:      21.1,
		Pressure:       1014,
		Humidity:       60,
		WindSpeed:      3.2,
		WindDirection:  &windDirection,
		Cloudiness:     92,
		TemperatureMin: 19.8,
		TemperatureMax: 23.0,
		Visibility:     &visibility,
		Sunrise:        &sunrise,
		Sunset:         &sunset,
		TimezoneOffset: offset,
		Units:          UnitsMetric,
	}
}

func TestHumidityBar(t *testing.T) {
	testCases := []struct {
		humidity   int
		wantFilled int
	}{
		{0, 0},
		{100, 30},
		{50, 15},
		{45, 13},
		{99, 29},
	}

	for _, tc := range testCases {
		got := humidityBar(tc.humidity, 30)
		filled := strings.Count(got, "█")
		unfilled := strings.Count(got, "░")
		if filled != tc.wantFilled || filled+unfilled != 30 {
			t.Errorf("humidityBar(%d, 30): %d filled + %d unfilled, want %d filled of 30", tc.humidity, filled, unfilled, tc.wantFilled)
		}
		if !strings.HasSuffix(got, "] "+strconv.Itoa(tc.humidity)+"%") {
			t.Errorf("humidityBar(%d, 30) = %q, missing percentage suffix", tc.humidity, got)
		}
	}
}

func TestFormatCurrentConditions(t *testing.T) {
	report := formatCurrentConditions(sampleSnapshot(), false)

	wantFragments := []string{
		"Погода от YonSe в городе Москва, RU",
		"Пасмурно",
		"21.4 °C",
		"21.1 °C",
		"1014 гПа (~761 мм рт. ст.)",
		"3.2 м/с",
		"↗ 250° (ЗЮЗ)",
		"92%",
		"19.8 °C",
		"23.0 °C",
		"10000 м (10.0 км)",
		"(UTC+03:00)",
	}
	for _, fragment := range wantFragments {
		if !strings.Contains(report, fragment) {
			t.Errorf("report is missing %q\n%s", fragment, report)
		}
	}

	if strings.Contains(report, "\x1b[") {
		t.Error("plain report must not contain escape codes")
	}
	if !strings.Contains(report, strings.Repeat("=", 70)) {
		t.Error("report is missing the separator line")
	}
}

func TestFormatCurrentConditionsAlignment(t *testing.T) {
	report := formatCurrentConditions(sampleSnapshot(), false)

	width := -1
	for _, line := range strings.Split(report, "\n") {
		label, _, found := strings.Cut(line, " : ")
		if !found {
			continue
		}
		if width == -1 {
			width = utf8.RuneCountInString(label)
			continue
		}
		if got := utf8.RuneCountInString(label); got != width {
			t.Errorf("label column width %d differs from %d in line %q", got, width, line)
		}
	}
	if width == -1 {
		t.Fatal("no label rows found in report")
	}
}

func TestFormatCurrentConditionsOptionalRows(t *testing.T) {
	snapshot := WeatherSnapshot{
		City:        "Тверь",
		Description: "Нет данных",
		Temperature: 15.0,
		FeelsLike:   14.0,
		Pressure:    1000,
		Humidity:    50,
		Units:       UnitsMetric,
	}

	report := formatCurrentConditions(snapshot, false)

	for _, absent := range []string{"Направление ветра", "Видимость", "UV-индекс", "Качество воздуха", "ПРЕДУПРЕЖДЕНИЯ"} {
		if strings.Contains(report, absent) {
			t.Errorf("report must not contain %q for a snapshot without that data", absent)
		}
	}
	// Absent sunrise/sunset render as a dash, not as a dropped row.
	if strings.Count(report, " : —") != 2 {
		t.Errorf("want two dashed time rows\n%s", report)
	}
}

func TestFormatCurrentConditionsEnrichments(t *testing.T) {
	snapshot := sampleSnapshot()
	uv := 4.6
	aqi := 2
	snapshot = snapshot.withAirQuality(&aqi, map[string]float64{"pm2_5": 8.52, "pm10": 12.34})
	snapshot = snapshot.withUVAndAlerts(&uv, nil)

	report := formatCurrentConditions(snapshot, false)

	for _, fragment := range []string{
		"4.6 (Умеренный)",
		"2 (Хорошее)",
		"PM2.5",
		"8.5 μg/m³",
		"PM10",
		"12.3 μg/m³",
	} {
		if !strings.Contains(report, fragment) {
			t.Errorf("report is missing %q\n%s", fragment, report)
		}
	}
}

func TestFormatCurrentConditionsAlerts(t *testing.T) {
	snapshot := sampleSnapshot()
	start := time.Date(2025, 8, 27, 12, 0, 0, 0, time.Local)
	end := time.Date(2025, 8, 27, 15, 0, 0, 0, time.Local)
	longDescription := strings.Repeat("и", 250)
	snapshot = snapshot.withUVAndAlerts(nil, []WeatherAlert{
		{Event: "Гроза", Description: longDescription, Start: &start, End: &end},
		{Event: "Ветер", Description: "коротко"},
	})

	report := formatCurrentConditions(snapshot, false)

	if !strings.Contains(report, "⚠️  ПОГОДНЫЕ ПРЕДУПРЕЖДЕНИЯ") {
		t.Fatalf("missing alerts header\n%s", report)
	}
	if !strings.Contains(report, "• Гроза") || !strings.Contains(report, "• Ветер") {
		t.Error("missing alert events")
	}
	if !strings.Contains(report, "Период: 27.08 12:00 - 27.08 15:00") {
		t.Errorf("missing alert window\n%s", report)
	}
	if strings.Contains(report, strings.Repeat("и", 201)) {
		t.Error("alert description must be truncated to 200 runes")
	}
	if !strings.Contains(report, strings.Repeat("и", 200)+"...") {
		t.Error("truncated description must end with an ellipsis marker")
	}
	if !strings.Contains(report, "коротко...") {
		t.Error("short description keeps the ellipsis marker")
	}
	// The window line is only present when both bounds are.
	if strings.Count(report, "Период:") != 1 {
		t.Error("alert without both bounds must not emit a window line")
	}
}

func TestFormatCurrentConditionsColor(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = previous }()

	report := formatCurrentConditions(sampleSnapshot(), true)
	if !strings.Contains(report, "\x1b[") {
		t.Error("colored report must contain escape codes")
	}
}

func TestTemperatureStyleBands(t *testing.T) {
	previous := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = previous }()

	seen := make(map[string]float64)
	for _, temperature := range []float64{-5, 5, 15, 25, 35} {
		painted := paint(temperatureStyle(temperature), "t", true)
		if prior, dup := seen[painted]; dup {
			t.Errorf("temperatures %v and %v share a color band", prior, temperature)
		}
		seen[painted] = temperature
	}
}

func TestFormatVisibility(t *testing.T) {
	if got := formatVisibility(800); got != "800 м (0.8 км)" {
		t.Errorf("formatVisibility(800): got %q", got)
	}
}

func TestFormatClockAbsent(t *testing.T) {
	if got := formatClock(nil, "UTC+03:00"); got != "—" {
		t.Errorf("formatClock(nil): got %q, want —", got)
	}
}
