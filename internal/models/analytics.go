package models

// WeatherProfile is the feature-bearing record the analytics layer consumes.
// Feature order is fixed; every analysis standardizes over the same six axes.
type WeatherProfile struct {
	CityName     string  `json:"city_name"`
	Temperature  float64 `json:"temperature"`
	Humidity     float64 `json:"humidity"`
	WindSpeed    float64 `json:"wind_speed"`
	Pressure     float64 `json:"pressure"`
	UVIndex      float64 `json:"uv_index"`
	Visibility   float64 `json:"visibility"`
	FeelsLike    float64 `json:"feels_like"`
	IsTeamMember bool    `json:"is_team_member"`
	MemberName   string  `json:"member_name,omitempty"`
}

// FeatureNames lists the profile features in their canonical order.
var FeatureNames = []string{"temperature", "humidity", "wind_speed", "pressure", "uv_index", "visibility"}

// Features returns the profile's feature vector in canonical order.
func (p WeatherProfile) Features() []float64 {
	return []float64{p.Temperature, p.Humidity, p.WindSpeed, p.Pressure, p.UVIndex, p.Visibility}
}

// ProfileFromWeather converts a live snapshot into an analytics profile.
func ProfileFromWeather(w WeatherData) WeatherProfile {
	return WeatherProfile{
		CityName:    w.Location(),
		Temperature: w.Temperature,
		Humidity:    float64(w.Humidity),
		WindSpeed:   w.WindSpeed,
		Pressure:    float64(w.Pressure),
		UVIndex:     w.UVIndex,
		Visibility:  w.VisibilityKM,
		FeelsLike:   w.FeelsLike,
	}
}

// ProfileFromTeamCity converts a team row into an analytics profile.
func ProfileFromTeamCity(tc TeamCity) WeatherProfile {
	return WeatherProfile{
		CityName:     tc.CityName,
		Temperature:  tc.Weather.Temperature,
		Humidity:     tc.Weather.Humidity,
		WindSpeed:    tc.Weather.WindSpeed,
		Pressure:     tc.Weather.Pressure,
		Visibility:   tc.Weather.Visibility,
		FeelsLike:    tc.Weather.FeelsLike,
		IsTeamMember: true,
		MemberName:   tc.MemberName,
	}
}

// ClusterResult assigns a profile to a named weather pattern.
type ClusterResult struct {
	CityName string `json:"city_name"`
	Cluster  int    `json:"cluster"`
	Name     string `json:"name"`
	Emoji    string `json:"emoji"`
}

// SimilarityInsight is a pairwise city comparison for display.
type SimilarityInsight struct {
	CityA          string   `json:"city_a"`
	CityB          string   `json:"city_b"`
	Score          float64  `json:"score"` // 0..100
	TopFactors     []string `json:"top_factors"`
	Recommendation string   `json:"recommendation"`
}

// Recommendation is the best-match city for a set of preferences.
type Recommendation struct {
	CityName     string   `json:"city_name"`
	MemberName   string   `json:"member_name,omitempty"`
	MatchPercent float64  `json:"match_percent"`
	Reasons      []string `json:"reasons"`
}

// Preferences is the target vector for recommendations.
type Preferences struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// ForecastEstimate is one predicted hour with its confidence band.
type ForecastEstimate struct {
	Hour        int     `json:"hour"` // hours from now, 1-based
	Temperature float64 `json:"temperature"`
	Confidence  float64 `json:"confidence"` // 0..1
	Low         float64 `json:"low"`
	High        float64 `json:"high"`
}

// RadarScores normalizes a profile onto 0-100 display axes.
type RadarScores struct {
	Temperature float64 `json:"temperature"`
	Humidity    float64 `json:"humidity"`
	Wind        float64 `json:"wind"`
	Pressure    float64 `json:"pressure"`
	UV          float64 `json:"uv"`
	Visibility  float64 `json:"visibility"`
}
