package constants

import "time"

const (
	// OpenWeather endpoints
	OpenWeatherBaseURL = "https://api.openweathermap.org/data/2.5"

	// WeatherRequestTimeout bounds every weather API call; there is no retry
	WeatherRequestTimeout = 10 * time.Second

	// DefaultForecastDays is the span of the forecast tab and the
	// forecast command; the free endpoint tops out at five
	DefaultForecastDays = 5

	// ForecastPointsPerDay is the number of 3-hourly samples in one day
	ForecastPointsPerDay = 8

	// MaxForecastPoints is the API ceiling for the 5-day endpoint
	MaxForecastPoints = 40

	// Team sync constants
	DefaultTeamCSVURL  = "https://raw.githubusercontent.com/StrayDogSyn/New_Team_Dashboard/main/exports/team_weather_data.csv"
	TeamCacheTTL       = 15 * time.Minute
	TeamCacheFile      = "team_cache.json"
	TeamRequestTimeout = 10 * time.Second
	TeamFeedSize       = 10

	// AI constants
	AIRequestTimeout = 15 * time.Second
	GeminiModel      = "gemini-1.5-flash"
	OpenAIModel      = "gpt-4o-mini"

	// Activity suggestion cache
	ActivityCacheTTL = 30 * time.Minute
	ActivityCacheMax = 10

	// Static map defaults
	MapsBaseURL     = "https://maps.googleapis.com/maps/api"
	MapDefaultZoom  = 13
	MapDefaultSize  = "400x300"
	MapsMinInterval = 100 * time.Millisecond
	MapsCacheTTL    = time.Hour

	// ExitInterrupt is the conventional exit code for SIGINT
	ExitInterrupt = 130
)

// DefaultMoods are the suggestions offered by the journal entry form; mood
// remains free text everywhere else.
var DefaultMoods = []string{"happy", "calm", "energetic", "neutral", "tired", "gloomy"}
