package sqlite

import (
	"fmt"

	"github.com/ehunter/skycast/internal/models"
)

func (s *Store) GetSettings() (models.Settings, error) {
	var settings models.Settings
	err := s.db.QueryRow(`
		SELECT units, default_city, theme, auto_refresh_min
		FROM settings WHERE id = 1`).Scan(
		&settings.Units, &settings.DefaultCity, &settings.Theme, &settings.AutoRefreshMin)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (s *Store) SaveSettings(settings models.Settings) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO settings (id, units, default_city, theme, auto_refresh_min)
		VALUES (1, ?, ?, ?, ?)`,
		settings.Units, settings.DefaultCity, settings.Theme, settings.AutoRefreshMin)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
