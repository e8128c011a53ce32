// Package analytics runs the dashboard's weather comparisons: similarity
// scoring, k-means pattern grouping, preference matching and short-range
// temperature projection. All analyses standardize the same six feature
// axes and retrain from scratch on every call; nothing is persisted.
package analytics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ehunter/skycast/internal/models"
)

// scaler holds per-column mean and stddev fitted on one profile set, so a
// preference vector can be projected into the same space as the profiles.
type scaler struct {
	mean []float64
	std  []float64
}

func fitScaler(profiles []models.WeatherProfile) scaler {
	dims := len(models.FeatureNames)
	s := scaler{mean: make([]float64, dims), std: make([]float64, dims)}

	col := make([]float64, len(profiles))
	for j := 0; j < dims; j++ {
		for i, p := range profiles {
			col[i] = p.Features()[j]
		}
		s.mean[j], s.std[j] = stat.MeanStdDev(col, nil)
	}
	return s
}

// transform z-scores a vector. A zero-variance column maps to zero so
// constant features neither help nor hurt a match.
func (s scaler) transform(v []float64) []float64 {
	out := make([]float64, len(v))
	for j := range v {
		if s.std[j] == 0 || math.IsNaN(s.std[j]) {
			out[j] = 0
			continue
		}
		out[j] = (v[j] - s.mean[j]) / s.std[j]
	}
	return out
}

func standardize(profiles []models.WeatherProfile) [][]float64 {
	if len(profiles) == 0 {
		return nil
	}
	s := fitScaler(profiles)
	vecs := make([][]float64, len(profiles))
	for i, p := range profiles {
		vecs[i] = s.transform(p.Features())
	}
	return vecs
}

func cosine(a, b []float64) float64 {
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return floats.Dot(a, b) / (na * nb)
}

// SimilarityMatrix returns pairwise cosine similarity over standardized
// feature vectors: symmetric, unit diagonal, row order matching profiles.
func SimilarityMatrix(profiles []models.WeatherProfile) [][]float64 {
	vecs := standardize(profiles)

	m := make([][]float64, len(vecs))
	for i := range vecs {
		m[i] = make([]float64, len(vecs))
		m[i][i] = 1
	}
	for i := 0; i < len(vecs); i++ {
		for j := i + 1; j < len(vecs); j++ {
			s := cosine(vecs[i], vecs[j])
			m[i][j] = s
			m[j][i] = s
		}
	}
	return m
}

// compareFactors are the axes reported as "dominant factors" in a pairwise
// comparison; the two with the smallest raw difference win.
var compareFactors = []struct {
	name  string
	value func(models.WeatherProfile) float64
}{
	{"temperature", func(p models.WeatherProfile) float64 { return p.Temperature }},
	{"humidity", func(p models.WeatherProfile) float64 { return p.Humidity }},
	{"wind_speed", func(p models.WeatherProfile) float64 { return p.WindSpeed }},
	{"pressure", func(p models.WeatherProfile) float64 { return p.Pressure }},
}

// CompareCities scores two named cities against each other. Unknown names
// return a zero score with an explanatory recommendation instead of an error.
func CompareCities(a, b string, profiles []models.WeatherProfile) models.SimilarityInsight {
	ia, ib := -1, -1
	for i, p := range profiles {
		switch p.CityName {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 {
		return models.SimilarityInsight{
			CityA:          a,
			CityB:          b,
			Recommendation: "Cities not found in data",
		}
	}

	matrix := SimilarityMatrix(profiles)
	score := matrix[ia][ib] * 100

	type diff struct {
		name string
		gap  float64
	}
	diffs := make([]diff, 0, len(compareFactors))
	for _, f := range compareFactors {
		diffs = append(diffs, diff{f.name, math.Abs(f.value(profiles[ia]) - f.value(profiles[ib]))})
	}
	sort.Slice(diffs, func(i, j int) bool { return diffs[i].gap < diffs[j].gap })

	var rec string
	switch {
	case score >= 85:
		rec = fmt.Sprintf("%s and %s have very similar weather patterns - excellent for consistent experiences!", a, b)
	case score >= 70:
		rec = fmt.Sprintf("%s and %s have similar weather with minor variations - good compatibility.", a, b)
	case score >= 50:
		rec = fmt.Sprintf("%s and %s have moderate weather differences - some adaptation needed.", a, b)
	default:
		rec = fmt.Sprintf("%s and %s have quite different weather patterns - significant variation expected.", a, b)
	}

	return models.SimilarityInsight{
		CityA:          a,
		CityB:          b,
		Score:          score,
		TopFactors:     []string{diffs[0].name, diffs[1].name},
		Recommendation: rec,
	}
}

// Radar maps a profile onto 0-100 display axes for the radar chart.
func Radar(p models.WeatherProfile) models.RadarScores {
	return models.RadarScores{
		Temperature: clamp100((p.Temperature + 20) / 60 * 100),
		Humidity:    clamp100(p.Humidity),
		Wind:        clamp100(p.WindSpeed / 20 * 100),
		Pressure:    clamp100((p.Pressure - 950) / 100 * 100),
		UV:          clamp100(p.UVIndex / 12 * 100),
		Visibility:  clamp100(p.Visibility / 10 * 100),
	}
}

func clamp100(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
