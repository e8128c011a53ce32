package analytics

import (
	"fmt"
	"math"

	"github.com/ehunter/skycast/internal/models"
)

// Axes the preference form does not cover get neutral values.
const (
	defaultPressure   = 1013
	defaultUV         = 5
	defaultVisibility = 10
)

// Recommend picks the profile nearest to the given preferences (cosine
// distance in standardized space) and explains the match in terms of the
// raw values: temperature within 5°C, humidity within 15%, wind within
// 3 m/s. Match percent is max(0, (1-distance)*100).
func Recommend(profiles []models.WeatherProfile, prefs models.Preferences) (*models.Recommendation, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("no weather profiles to match against")
	}

	s := fitScaler(profiles)
	target := s.transform([]float64{
		prefs.Temperature,
		prefs.Humidity,
		prefs.WindSpeed,
		defaultPressure,
		defaultUV,
		defaultVisibility,
	})

	best, bestDist := 0, math.Inf(1)
	for i, p := range profiles {
		d := 1 - cosine(target, s.transform(p.Features()))
		if d < bestDist {
			best, bestDist = i, d
		}
	}

	match := profiles[best]
	rec := &models.Recommendation{
		CityName:     match.CityName,
		MemberName:   match.MemberName,
		MatchPercent: math.Max(0, (1-bestDist)*100),
	}

	if math.Abs(match.Temperature-prefs.Temperature) < 5 {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Temperature matches your preference (%.1f°C)", match.Temperature))
	}
	if math.Abs(match.Humidity-prefs.Humidity) < 15 {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Humidity level is ideal (%.1f%%)", match.Humidity))
	}
	if math.Abs(match.WindSpeed-prefs.WindSpeed) < 3 {
		rec.Reasons = append(rec.Reasons, fmt.Sprintf("Wind conditions are suitable (%.1f m/s)", match.WindSpeed))
	}
	return rec, nil
}
