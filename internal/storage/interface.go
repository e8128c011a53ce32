package storage

import "github.com/ehunter/skycast/internal/models"

// Provider is the persistence surface the dashboard runs on. SQLite is the
// default; a postgres:// DSN selects the Postgres implementation.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error
	GetConfigPath() string

	// Journal entries
	SaveEntry(models.JournalEntry) error
	GetEntry(id string) (models.JournalEntry, error)
	GetAllEntries() ([]models.JournalEntry, error)
	UpdateEntry(models.JournalEntry) error
	DeleteEntry(id string) error
	// SearchEntries matches q as a case-sensitive substring of title or content.
	SearchEntries(q string) ([]models.JournalEntry, error)
	GetEntriesByMood(mood string) ([]models.JournalEntry, error)
	EntryStats() (models.JournalStats, error)

	// Weather history
	SaveWeather(models.WeatherRecord) error
	RecentWeather(limit int) ([]models.WeatherRecord, error)
	WeatherHistory(location string, days int) ([]models.WeatherRecord, error)

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error
}
