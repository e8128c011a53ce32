package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/ehunter/skycast/internal/errors"
	"github.com/ehunter/skycast/internal/models"
)

const entryColumns = "id, title, content, mood, timestamp, weather_data, created_at, updated_at"

func (s *Store) SaveEntry(entry models.JournalEntry) error {
	weatherJSON, err := marshalWeather(entry.Weather)
	if err != nil {
		return fmt.Errorf("failed to encode weather snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO journal_entries (id, title, content, mood, timestamp, weather_data)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Title, entry.Content, entry.Mood, entry.Timestamp, weatherJSON)
	if err != nil {
		return fmt.Errorf("failed to save journal entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(id string) (models.JournalEntry, error) {
	row := s.db.QueryRow(
		"SELECT "+entryColumns+" FROM journal_entries WHERE id = ?", id)

	entry, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.JournalEntry{}, fmt.Errorf("journal entry %s: %w", id, apperrors.ErrNotFound)
		}
		return models.JournalEntry{}, fmt.Errorf("failed to get journal entry: %w", err)
	}
	return entry, nil
}

func (s *Store) GetAllEntries() ([]models.JournalEntry, error) {
	return s.queryEntries(
		"SELECT " + entryColumns + " FROM journal_entries ORDER BY timestamp DESC")
}

func (s *Store) UpdateEntry(entry models.JournalEntry) error {
	weatherJSON, err := marshalWeather(entry.Weather)
	if err != nil {
		return fmt.Errorf("failed to encode weather snapshot: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE journal_entries
		SET title = ?, content = ?, mood = ?, timestamp = ?, weather_data = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		entry.Title, entry.Content, entry.Mood, entry.Timestamp, weatherJSON, entry.ID)
	if err != nil {
		return fmt.Errorf("failed to update journal entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("journal entry %s: %w", entry.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) DeleteEntry(id string) error {
	res, err := s.db.Exec("DELETE FROM journal_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("journal entry %s: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// SearchEntries matches q as a case-sensitive substring of title or content.
// instr() keeps the match case-sensitive where LIKE would fold ASCII case.
func (s *Store) SearchEntries(q string) ([]models.JournalEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM journal_entries
		WHERE instr(title, ?) > 0 OR instr(content, ?) > 0
		ORDER BY timestamp DESC`, q, q)
}

func (s *Store) GetEntriesByMood(mood string) ([]models.JournalEntry, error) {
	return s.queryEntries(`
		SELECT `+entryColumns+` FROM journal_entries
		WHERE mood = ?
		ORDER BY timestamp DESC`, mood)
}

func (s *Store) EntryStats() (models.JournalStats, error) {
	stats := models.JournalStats{MoodCounts: map[string]int{}}

	if err := s.db.QueryRow("SELECT COUNT(*) FROM journal_entries").Scan(&stats.Total); err != nil {
		return stats, fmt.Errorf("failed to count journal entries: %w", err)
	}

	rows, err := s.db.Query("SELECT mood, COUNT(*) FROM journal_entries GROUP BY mood")
	if err != nil {
		return stats, fmt.Errorf("failed to count moods: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var mood sql.NullString
		var count int
		if err := rows.Scan(&mood, &count); err != nil {
			return stats, fmt.Errorf("failed to scan mood count: %w", err)
		}
		stats.MoodCounts[mood.String] = count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("failed to read mood counts: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -30).Format(time.RFC3339)
	if err := s.db.QueryRow(
		"SELECT COUNT(*) FROM journal_entries WHERE timestamp >= ?", cutoff).Scan(&stats.Recent30d); err != nil {
		return stats, fmt.Errorf("failed to count recent entries: %w", err)
	}

	return stats, nil
}

func (s *Store) queryEntries(query string, args ...any) ([]models.JournalEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal entries: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.JournalEntry, error) {
	var entry models.JournalEntry
	var mood, weather, createdAt, updatedAt sql.NullString

	if err := row.Scan(&entry.ID, &entry.Title, &entry.Content, &mood,
		&entry.Timestamp, &weather, &createdAt, &updatedAt); err != nil {
		return models.JournalEntry{}, err
	}

	entry.Mood = mood.String
	entry.CreatedAt = createdAt.String
	entry.UpdatedAt = updatedAt.String

	// A missing or unparseable snapshot reads back as {}
	entry.Weather = map[string]any{}
	if weather.Valid && weather.String != "" {
		if err := json.Unmarshal([]byte(weather.String), &entry.Weather); err != nil || entry.Weather == nil {
			entry.Weather = map[string]any{}
		}
	}

	return entry, nil
}

func marshalWeather(weather map[string]any) (string, error) {
	if weather == nil {
		return "{}", nil
	}
	b, err := json.Marshal(weather)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
