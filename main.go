package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	errorStyle   = color.New(color.FgRed)
	warningStyle = color.New(color.FgYellow)
	closingStyle = color.New(color.FgCyan)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

// parseArgs reads the flag surface. The city is the positional argument.
func parseArgs(args []string) (cliOptions, string, error) {
	fs := flag.NewFlagSet("yonseweather", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Использование: yonseweather [флаги] <город>")
		fs.PrintDefaults()
	}

	var opts cliOptions
	fs.StringVar(&opts.apiKey, "api-key", "", "API ключ OpenWeatherMap (или переменная окружения "+envAPIKey+")")
	fs.StringVar(&opts.units, "units", defaultUnits, "единицы измерения: metric, imperial или standard")
	fs.StringVar(&opts.language, "lang", defaultLanguage, "язык описания погоды (например, ru, en)")
	fs.Float64Var(&opts.timeout, "timeout", defaultTimeout, "таймаут запроса к API в секундах")
	fs.BoolVar(&opts.forecast, "forecast", false, "показать прогноз на 5 дней")
	fs.BoolVar(&opts.hourly, "hourly", false, "показать почасовой прогноз")
	fs.BoolVar(&opts.chart, "chart", false, "показать ASCII-график температуры")
	fs.BoolVar(&opts.extended, "extended", false, "показать расширенную информацию (UV-индекс, качество воздуха)")
	fs.BoolVar(&opts.noColor, "no-color", false, "отключить цветной вывод")
	fs.BoolVar(&opts.noCache, "no-cache", false, "не использовать кэш")
	fs.BoolVar(&opts.flushCache, "flush-cache", false, "очистить кэш перед запросом")
	fs.BoolVar(&opts.verbose, "verbose", false, "подробное логирование")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, "", err
	}
	return opts, strings.TrimSpace(fs.Arg(0)), nil
}

func run(args []string, in io.Reader, out io.Writer) int {
	opts, city, err := parseArgs(args)
	if err != nil {
		return 1
	}

	// With -flush-cache the city is optional: flushing alone is a complete
	// invocation.
	if city == "" && !opts.flushCache {
		fmt.Fprint(out, "Введите название города: ")
		scanner := bufio.NewScanner(in)
		if scanner.Scan() {
			city = strings.TrimSpace(scanner.Text())
		}
		if city == "" {
			fmt.Fprintln(out, "Название города не указано. Попробуйте снова.")
			return 1
		}
	}

	cfg, err := config(opts)
	if err != nil {
		fmt.Fprintln(out, paint(errorStyle, "❌ Ошибка: "+err.Error(), !opts.noColor))
		return 1
	}

	ctx := context.Background()
	if opts.flushCache {
		if err := cfg.cache.Flush(ctx); err != nil {
			fmt.Fprintln(out, paint(errorStyle, "❌ Ошибка: не удалось очистить кэш: "+err.Error(), cfg.colorEnabled))
			return 1
		}
		fmt.Fprintln(out, "🧹 Кэш очищен.")
		if city == "" {
			return 0
		}
	}

	if err := runReports(ctx, cfg, city, out); err != nil {
		fmt.Fprintln(out, paint(errorStyle, "❌ Ошибка: "+err.Error(), cfg.colorEnabled))
		return 1
	}

	fmt.Fprintln(out, "\n"+paint(closingStyle, "✨ Спасибо за использование YonSeWeather! ✨", cfg.colorEnabled))
	return 0
}

// runReports drives one invocation: current conditions first, enrichments if
// requested, then the forecast sections. Enrichment failures degrade to a
// warning; everything else is terminal.
func runReports(ctx context.Context, cfg *cliConfig, city string, out io.Writer) error {
	payload, err := cfg.fetchCurrentWeather(ctx, city)
	if err != nil {
		return err
	}
	snapshot, err := parseCurrentWeather(payload, city, cfg.units)
	if err != nil {
		return err
	}

	if cfg.showExtended {
		snapshot = cfg.enrichSnapshot(ctx, snapshot, payload, out)
	}

	fmt.Fprintln(out, formatCurrentConditions(snapshot, cfg.colorEnabled))

	// The chart feeds off the same samples, so it never triggers a fetch of
	// its own: without -forecast or -hourly it is silently skipped.
	needForecast := cfg.showForecast || cfg.showHourly
	var items []ForecastItem
	if needForecast {
		forecastPayload, err := cfg.fetchForecast(ctx, city)
		if err != nil {
			return err
		}
		items, err = parseForecastList(forecastPayload, snapshot.TimezoneOffset)
		if err != nil {
			return err
		}
	}

	if cfg.showForecast {
		fmt.Fprintln(out, "\n"+formatDailyForecast(items, cfg.units, cfg.colorEnabled))
	}
	if cfg.showHourly {
		fmt.Fprintln(out, "\n"+formatHourlyForecast(items, cfg.units, cfg.colorEnabled))
	}
	if cfg.showChart && (cfg.showHourly || cfg.showForecast) {
		if chart := renderTemperatureChart(items); chart != "" {
			fmt.Fprintln(out, "\n"+chart)
		}
	}

	return nil
}

// enrichSnapshot merges air quality and One Call data into the snapshot. Both
// fetches are best-effort: a failure leaves the enrichment fields absent and
// the run continues.
func (cfg *cliConfig) enrichSnapshot(ctx context.Context, snapshot WeatherSnapshot, payload map[string]any, out io.Writer) WeatherSnapshot {
	lat, latErr := optionalFloat(safeGet(payload["coord"], "lat", nil))
	lon, lonErr := optionalFloat(safeGet(payload["coord"], "lon", nil))
	if latErr != nil || lonErr != nil || lat == nil || lon == nil {
		cfg.logger.Warn("coordinates unavailable, skipping enrichment", "city", snapshot.City)
		return snapshot
	}

	airPayload, err := cfg.fetchAirQuality(ctx, *lat, *lon)
	if err == nil {
		snapshot, err = mergeAirQuality(snapshot, airPayload)
	}
	if err != nil {
		cfg.logger.Warn("air quality enrichment failed", "error", err)
		fmt.Fprintln(out, paint(warningStyle, "⚠️  Не удалось получить расширенные данные: "+err.Error(), cfg.colorEnabled))
		return snapshot
	}

	oneCallPayload, err := cfg.fetchOneCall(ctx, *lat, *lon)
	if err == nil {
		snapshot, err = mergeOneCall(snapshot, oneCallPayload)
	}
	if err != nil {
		// One Call needs its own subscription; its absence is routine.
		cfg.logger.Debug("one call enrichment failed", "error", err)
	}

	return snapshot
}
