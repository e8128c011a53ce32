package models

import (
	"time"

	"github.com/ehunter/skycast/internal/constants"
)

// ForecastPoint is one 3-hourly sample from the 5-day forecast endpoint.
type ForecastPoint struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	FeelsLike   float64   `json:"feels_like"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Pressure    int       `json:"pressure"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	POP         float64   `json:"pop"` // probability of precipitation, 0..1
}

// ForecastDay is a per-calendar-day rollup of forecast points.
type ForecastDay struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// Forecast holds the raw points for a city plus identity fields.
type Forecast struct {
	City    string          `json:"city"`
	Country string          `json:"country"`
	Points  []ForecastPoint `json:"points"`
}

// Temperatures returns the point temperatures in order, for charting.
func (f *Forecast) Temperatures() []float64 {
	out := make([]float64, len(f.Points))
	for i, p := range f.Points {
		out[i] = p.Temperature
	}
	return out
}

// Days groups the 3-hourly points into daily min/max summaries. The
// description and icon come from the sample nearest midday, which is what
// the daily cards have always shown.
func (f *Forecast) Days() []ForecastDay {
	if len(f.Points) == 0 {
		return nil
	}

	var days []ForecastDay
	var cur *ForecastDay
	bestGap := 24.0

	for _, p := range f.Points {
		date := p.Time.Format(constants.DateFormat)
		if cur == nil || cur.Date != date {
			days = append(days, ForecastDay{
				Date:        date,
				Min:         p.Temperature,
				Max:         p.Temperature,
				Description: p.Description,
				Icon:        p.Icon,
			})
			cur = &days[len(days)-1]
			bestGap = middayGap(p.Time)
			continue
		}

		if p.Temperature < cur.Min {
			cur.Min = p.Temperature
		}
		if p.Temperature > cur.Max {
			cur.Max = p.Temperature
		}
		if gap := middayGap(p.Time); gap < bestGap {
			bestGap = gap
			cur.Description = p.Description
			cur.Icon = p.Icon
		}
	}
	return days
}

func middayGap(t time.Time) float64 {
	h := float64(t.Hour()) + float64(t.Minute())/60
	if h > 12 {
		return h - 12
	}
	return 12 - h
}
