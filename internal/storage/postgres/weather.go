package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ehunter/skycast/internal/models"
)

func (s *Store) SaveWeather(rec models.WeatherRecord) error {
	if rec.RecordedAt == "" {
		rec.RecordedAt = time.Now().Format(time.RFC3339)
	}

	_, err := s.db.Exec(`
		INSERT INTO weather_history (location, temperature, humidity, pressure, wind_speed, description, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rec.Location, rec.Temperature, rec.Humidity, rec.Pressure, rec.WindSpeed, rec.Description, rec.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to save weather record: %w", err)
	}
	return nil
}

func (s *Store) RecentWeather(limit int) ([]models.WeatherRecord, error) {
	if limit <= 0 {
		limit = 24
	}
	return s.queryWeather(`
		SELECT id, location, temperature, humidity, pressure, wind_speed, description, recorded_at
		FROM weather_history
		ORDER BY recorded_at DESC
		LIMIT $1`, limit)
}

func (s *Store) WeatherHistory(location string, days int) ([]models.WeatherRecord, error) {
	if days <= 0 {
		days = 7
	}
	cutoff := time.Now().AddDate(0, 0, -days).Format(time.RFC3339)
	return s.queryWeather(`
		SELECT id, location, temperature, humidity, pressure, wind_speed, description, recorded_at
		FROM weather_history
		WHERE location = $1 AND recorded_at >= $2
		ORDER BY recorded_at ASC`, location, cutoff)
}

func (s *Store) queryWeather(query string, args ...any) ([]models.WeatherRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query weather history: %w", err)
	}
	defer rows.Close()

	var records []models.WeatherRecord
	for rows.Next() {
		var rec models.WeatherRecord
		var desc sql.NullString
		if err := rows.Scan(&rec.ID, &rec.Location, &rec.Temperature, &rec.Humidity,
			&rec.Pressure, &rec.WindSpeed, &desc, &rec.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan weather record: %w", err)
		}
		rec.Description = desc.String
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read weather history: %w", err)
	}
	return records, nil
}
