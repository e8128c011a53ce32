package models

// Settings represents the persisted per-user dashboard preferences
type Settings struct {
	Units          string `json:"units"`            // "metric" or "imperial"
	DefaultCity    string `json:"default_city"`     // city shown on launch
	Theme          string `json:"theme"`            // glass palette name
	AutoRefreshMin int    `json:"auto_refresh_min"` // dashboard refresh cadence, 0 disables
}

// DefaultSettings returns the out-of-the-box preferences.
func DefaultSettings() Settings {
	return Settings{
		Units:          "metric",
		Theme:          "midnight",
		AutoRefreshMin: 10,
	}
}
