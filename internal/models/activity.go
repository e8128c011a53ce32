package models

// Activity is one suggestion the activities tab can offer.
type Activity struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Duration    string  `json:"duration"`  // short | medium | long
	Equipment   string  `json:"equipment"` // none | basic | advanced
	Description string  `json:"description"`
	Score       float64 `json:"score"` // weather fit, higher is better
}

// WeatherRecord is one row of local weather history, kept so trends and
// forecasts have something to regress over.
type WeatherRecord struct {
	ID          int64   `json:"id,omitempty"`
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	RecordedAt  string  `json:"recorded_at"` // RFC3339
}
