package models

import "time"

// TeamWeather is the weather block attached to a team member's city, parsed
// best effort from the shared CSV (missing columns become zero values).
type TeamWeather struct {
	Temperature   float64 `json:"temperature"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	Description   string  `json:"description"`
	Main          string  `json:"main"`
	Pressure      float64 `json:"pressure"`
	FeelsLike     float64 `json:"feels_like"`
	Visibility    float64 `json:"visibility"`
	WindDirection float64 `json:"wind_direction"`
}

// TeamCity is one member/city row from the shared team export.
type TeamCity struct {
	MemberName     string       `json:"member_name"`
	CityName       string       `json:"city_name"`
	Country        string       `json:"country"`
	LastUpdated    string       `json:"last_updated"` // ISO timestamp from the export
	Weather        TeamWeather  `json:"weather_data"`
	AvatarURL      string       `json:"avatar_url,omitempty"`
	GitHubUsername string       `json:"github_username"`
}

// TeamCache is the on-disk cache shape: the full city list replaced
// wholesale on every successful fetch, plus the sync time.
type TeamCache struct {
	Cities    []TeamCity `json:"cities"`
	Timestamp string     `json:"timestamp"` // ISO 8601
}

// TeamActivity is one feed line: a member's latest weather update.
type TeamActivity struct {
	Member      string    `json:"member"`
	City        string    `json:"city"`
	Action      string    `json:"action"`
	Time        time.Time `json:"timestamp"`
	Weather     string    `json:"weather"`
	Temperature float64   `json:"temperature"`
}
