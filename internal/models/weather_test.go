package models

import (
	"math"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/constants"
)

func TestLocation(t *testing.T) {
	tests := []struct {
		name     string
		w        WeatherData
		expected string
	}{
		{"city and country", WeatherData{City: "Paris", Country: "FR"}, "Paris, FR"},
		{"city only", WeatherData{City: "Paris"}, "Paris"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.w.Location(); got != tt.expected {
				t.Errorf("Location() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestUnitConversion(t *testing.T) {
	w := WeatherData{Temperature: 20, WindSpeed: 10}

	if got := w.TempIn(constants.UnitsMetric); got != 20 {
		t.Errorf("TempIn(metric) = %v, want 20", got)
	}
	if got := w.TempIn(constants.UnitsImperial); got != 68 {
		t.Errorf("TempIn(imperial) = %v, want 68", got)
	}
	if got := w.WindIn(constants.UnitsImperial); math.Abs(got-22.3694) > 0.001 {
		t.Errorf("WindIn(imperial) = %v, want ~22.3694", got)
	}

	if got := FToC(CToF(-12.5)); math.Abs(got+12.5) > 1e-9 {
		t.Errorf("FToC(CToF(-12.5)) = %v, want -12.5", got)
	}
}

func TestEmoji(t *testing.T) {
	if got := (WeatherData{Icon: "10d"}).Emoji(); got != "🌦️" {
		t.Errorf("Emoji(10d) = %q", got)
	}
	if got := (WeatherData{Icon: "xx"}).Emoji(); got != "🌡️" {
		t.Errorf("Emoji(unknown) = %q, want fallback", got)
	}
	if got := (WeatherData{}).Emoji(); got != "🌡️" {
		t.Errorf("Emoji(empty) = %q, want fallback", got)
	}
}

func TestForecastDays(t *testing.T) {
	base := time.Date(2024, 3, 1, 6, 0, 0, 0, time.UTC)
	f := &Forecast{
		City: "Oslo",
		Points: []ForecastPoint{
			{Time: base, Temperature: 2, Description: "mist", Icon: "50d"},
			{Time: base.Add(6 * time.Hour), Temperature: 8, Description: "clear sky", Icon: "01d"},
			{Time: base.Add(12 * time.Hour), Temperature: 5, Description: "clouds", Icon: "03d"},
			{Time: base.Add(24 * time.Hour), Temperature: -1, Description: "snow", Icon: "13d"},
		},
	}

	days := f.Days()
	if len(days) != 2 {
		t.Fatalf("Days() returned %d days, want 2", len(days))
	}

	first := days[0]
	if first.Min != 2 || first.Max != 8 {
		t.Errorf("day 1 min/max = %v/%v, want 2/8", first.Min, first.Max)
	}
	// The midday-nearest sample (12:00) supplies the description
	if first.Description != "clear sky" {
		t.Errorf("day 1 description = %q, want clear sky", first.Description)
	}
	if days[1].Min != -1 || days[1].Max != -1 {
		t.Errorf("day 2 min/max = %v/%v, want -1/-1", days[1].Min, days[1].Max)
	}
}

func TestForecastTemperatures(t *testing.T) {
	f := &Forecast{Points: []ForecastPoint{{Temperature: 1}, {Temperature: 2.5}}}
	got := f.Temperatures()
	if len(got) != 2 || got[0] != 1 || got[1] != 2.5 {
		t.Errorf("Temperatures() = %v", got)
	}
}
