package models

import (
	"fmt"
	"time"

	"github.com/ehunter/skycast/internal/constants"
)

// WeatherData is a current-conditions snapshot. Values are stored metric
// (°C, m/s, hPa, km) and converted at display time.
type WeatherData struct {
	City         string    `json:"city"`
	Country      string    `json:"country"` // ISO 3166 alpha-2
	Temperature  float64   `json:"temperature"`
	FeelsLike    float64   `json:"feels_like"`
	Humidity     int       `json:"humidity"`
	WindSpeed    float64   `json:"wind_speed"`
	WindDeg      int       `json:"wind_deg"`
	Pressure     int       `json:"pressure"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"` // OpenWeather icon code, e.g. "10d"
	VisibilityKM float64   `json:"visibility_km"`
	UVIndex      float64   `json:"uv_index"`
	Cloudiness   int       `json:"cloudiness"`
	Lat          float64   `json:"lat"`
	Lon          float64   `json:"lon"`
	Sunrise      time.Time `json:"sunrise"`
	Sunset       time.Time `json:"sunset"`
	Timestamp    time.Time `json:"timestamp"`
}

// Location renders the "City, CC" form used across the dashboard.
func (w WeatherData) Location() string {
	if w.Country == "" {
		return w.City
	}
	return fmt.Sprintf("%s, %s", w.City, w.Country)
}

// TempIn returns the temperature in the given unit system.
func (w WeatherData) TempIn(units constants.Units) float64 {
	if units == constants.UnitsImperial {
		return CToF(w.Temperature)
	}
	return w.Temperature
}

// FeelsLikeIn returns the feels-like temperature in the given unit system.
func (w WeatherData) FeelsLikeIn(units constants.Units) float64 {
	if units == constants.UnitsImperial {
		return CToF(w.FeelsLike)
	}
	return w.FeelsLike
}

// WindIn returns the wind speed in the unit system's conventional measure
// (m/s metric, mph imperial).
func (w WeatherData) WindIn(units constants.Units) float64 {
	if units == constants.UnitsImperial {
		return MSToMPH(w.WindSpeed)
	}
	return w.WindSpeed
}

// TempUnit returns the display suffix for temperatures.
func TempUnit(units constants.Units) string {
	if units == constants.UnitsImperial {
		return "°F"
	}
	return "°C"
}

// WindUnit returns the display suffix for wind speeds.
func WindUnit(units constants.Units) string {
	if units == constants.UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// CToF converts Celsius to Fahrenheit.
func CToF(c float64) float64 { return c*9/5 + 32 }

// FToC converts Fahrenheit to Celsius.
func FToC(f float64) float64 { return (f - 32) * 5 / 9 }

// MSToMPH converts meters/second to miles/hour.
func MSToMPH(ms float64) float64 { return ms * 2.23694 }

// iconEmoji maps OpenWeather icon codes (sans day/night suffix) to the
// emoji the dashboard renders.
var iconEmoji = map[string]string{
	"01": "☀️", "02": "⛅", "03": "☁️", "04": "☁️",
	"09": "🌧️", "10": "🌦️", "11": "⛈️", "13": "❄️", "50": "🌫️",
}

// IconEmoji returns a weather emoji for an OpenWeather icon code.
func IconEmoji(icon string) string {
	if len(icon) >= 2 {
		if e, ok := iconEmoji[icon[:2]]; ok {
			return e
		}
	}
	return "🌡️"
}

// Emoji returns a weather emoji for the snapshot's icon code.
func (w WeatherData) Emoji() string { return IconEmoji(w.Icon) }
