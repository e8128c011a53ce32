package analytics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

// Forecast projects temperature hours ahead from local history with a
// linear fit, retrained from scratch on every call. Confidence follows a
// fixed per-hour decay with a floor; it is a display value, not a
// statistical guarantee.
func Forecast(history []models.WeatherRecord, hours int) []models.ForecastEstimate {
	if hours <= 0 {
		return nil
	}

	recs := append([]models.WeatherRecord(nil), history...)
	sort.Slice(recs, func(i, j int) bool { return recs[i].RecordedAt < recs[j].RecordedAt })

	xs, ys := regressionSeries(recs)
	if len(ys) < 2 || allEqual(xs) {
		return persistence(lastTemp(recs), hours)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)

	residuals := make([]float64, len(xs))
	for i := range xs {
		residuals[i] = ys[i] - (alpha + beta*xs[i])
	}
	band := stat.StdDev(residuals, nil)
	if math.IsNaN(band) || band < 1e-9 {
		band = 2 // default uncertainty when the fit is degenerate
	}

	lastX := xs[len(xs)-1]
	out := make([]models.ForecastEstimate, 0, hours)
	for h := 1; h <= hours; h++ {
		temp := alpha + beta*(lastX+float64(h))
		out = append(out, models.ForecastEstimate{
			Hour:        h,
			Temperature: round1(temp),
			Confidence:  math.Max(0.5, 0.95-0.02*float64(h)),
			Low:         round1(temp - band),
			High:        round1(temp + band),
		})
	}
	return out
}

// persistence is the low-data fallback: carry the last known temperature
// forward with a fixed ±2° band and a lower confidence curve.
func persistence(base float64, hours int) []models.ForecastEstimate {
	out := make([]models.ForecastEstimate, 0, hours)
	for h := 1; h <= hours; h++ {
		out = append(out, models.ForecastEstimate{
			Hour:        h,
			Temperature: round1(base),
			Confidence:  math.Max(0.3, 0.8-0.02*float64(h)),
			Low:         round1(base - 2),
			High:        round1(base + 2),
		})
	}
	return out
}

func lastTemp(recs []models.WeatherRecord) float64 {
	if len(recs) == 0 {
		return 20 // neutral default with no history at all
	}
	return recs[len(recs)-1].Temperature
}

// regressionSeries converts history rows into (hours since first sample,
// °C) pairs. If any timestamp fails to parse, the x axis falls back to the
// sample index so the fit still has a monotonic axis.
func regressionSeries(recs []models.WeatherRecord) (xs, ys []float64) {
	xs = make([]float64, len(recs))
	ys = make([]float64, len(recs))
	for i, r := range recs {
		xs[i] = float64(i)
		ys[i] = r.Temperature
	}

	times := make([]time.Time, len(recs))
	for i, r := range recs {
		ts, err := time.Parse(constants.TimestampFormat, r.RecordedAt)
		if err != nil {
			return xs, ys
		}
		times[i] = ts
	}
	for i, ts := range times {
		xs[i] = ts.Sub(times[0]).Hours()
	}
	return xs, ys
}

func allEqual(xs []float64) bool {
	for _, x := range xs {
		if x != xs[0] {
			return false
		}
	}
	return true
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
