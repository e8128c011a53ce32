package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

type WeatherCmd struct {
	City []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
}

func (c *WeatherCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
	defer cancel()

	w, err := ctx.Weather.Current(reqCtx, city)
	if err != nil {
		return fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}

	fmt.Printf("%s  %s\n", w.Emoji(), w.Location())
	fmt.Printf("  %s, feels like %s\n", formatTemp(w.TempIn(ctx.Units), ctx.Units), formatTemp(w.FeelsLikeIn(ctx.Units), ctx.Units))
	fmt.Printf("  %s\n\n", w.Description)
	fmt.Printf("  Humidity    %d%%\n", w.Humidity)
	fmt.Printf("  Wind        %s\n", formatWind(w.WindIn(ctx.Units), ctx.Units))
	fmt.Printf("  Pressure    %d hPa\n", w.Pressure)
	fmt.Printf("  Visibility  %.1f km\n", w.VisibilityKM)
	if !w.Sunrise.IsZero() {
		fmt.Printf("  Sunrise     %s\n", w.Sunrise.Format("15:04"))
		fmt.Printf("  Sunset      %s\n", w.Sunset.Format("15:04"))
	}
	if ctx.Weather.Offline() {
		fmt.Println("\n(sample data; set an OpenWeather API key for live conditions)")
	}
	return nil
}

type ForecastCmd struct {
	City []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
	Days int      `short:"d" help:"Days to forecast (1-5)." default:"5"`
}

func (c *ForecastCmd) Validate() error {
	if c.Days < 1 || c.Days > constants.DefaultForecastDays {
		return fmt.Errorf("days must be between 1 and %d", constants.DefaultForecastDays)
	}
	return nil
}

func (c *ForecastCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
	defer cancel()

	fc, err := ctx.Weather.Forecast(reqCtx, city, c.Days)
	if err != nil {
		return fmt.Errorf("failed to fetch forecast for %s: %w", city, err)
	}

	loc := fc.City
	if fc.Country != "" {
		loc = fmt.Sprintf("%s, %s", fc.City, fc.Country)
	}
	fmt.Printf("%d-day forecast for %s:\n\n", c.Days, loc)

	for _, day := range fc.Days() {
		min, max := day.Min, day.Max
		if ctx.Units == constants.UnitsImperial {
			min, max = models.CToF(min), models.CToF(max)
		}
		fmt.Printf("  %s  %s  %s / %s  %s\n",
			day.Date,
			models.IconEmoji(day.Icon),
			formatTemp(max, ctx.Units),
			formatTemp(min, ctx.Units),
			day.Description)
	}

	temps := fc.Temperatures()
	if ctx.Units == constants.UnitsImperial {
		for i, t := range temps {
			temps[i] = models.CToF(t)
		}
	}
	if len(temps) >= 2 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(temps,
			asciigraph.Height(8),
			asciigraph.Caption(fmt.Sprintf("3-hourly temperature (%s)", models.TempUnit(ctx.Units))),
		))
	}
	return nil
}

type HistoryCmd struct {
	City  []string `arg:"" optional:"" help:"Restrict history to one city."`
	Days  int      `help:"Window in days for a city-scoped query." default:"7"`
	Limit int      `short:"n" help:"Rows to show for the recent view." default:"10"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var (
		records []models.WeatherRecord
		err     error
	)
	city := strings.Join(c.City, " ")
	if city != "" {
		records, err = ctx.Store.WeatherHistory(city, c.Days)
	} else {
		records, err = ctx.Store.RecentWeather(c.Limit)
	}
	if err != nil {
		return fmt.Errorf("failed to read weather history: %w", err)
	}

	if len(records) == 0 {
		fmt.Println("No weather history recorded yet. Live fetches land here automatically.")
		return nil
	}

	for _, r := range records {
		temp := r.Temperature
		if ctx.Units == constants.UnitsImperial {
			temp = models.CToF(temp)
		}
		when := r.RecordedAt
		if ts, err := time.Parse(constants.TimestampFormat, r.RecordedAt); err == nil {
			when = ts.Local().Format("2006-01-02 15:04")
		}
		fmt.Printf("  %s  %-20s %8s  %s\n",
			when,
			r.Location,
			formatTemp(temp, ctx.Units),
			r.Description)
	}
	return nil
}
