// Package journal exposes the journal feature with a safe contract: every
// operation degrades to a zero value instead of returning an error, so the
// dashboard keeps rendering whatever happens underneath. Failures are logged.
package journal

import (
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/storage"
)

// Service wraps a storage provider behind the safe journal contract.
type Service struct {
	store storage.Provider
}

// New returns a journal service backed by the given provider.
func New(store storage.Provider) *Service {
	return &Service{store: store}
}

// Save persists an entry, filling in id, timestamp and weather snapshot when
// absent. It reports whether the entry was stored.
func (s *Service) Save(entry models.JournalEntry) bool {
	entry.Normalize()
	if err := s.store.SaveEntry(entry); err != nil {
		logger.Error("failed to save journal entry", "id", entry.ID, "error", err)
		return false
	}
	return true
}

// All returns every entry, newest first. Failures yield an empty slice.
func (s *Service) All() []models.JournalEntry {
	entries, err := s.store.GetAllEntries()
	if err != nil {
		logger.Error("failed to load journal entries", "error", err)
		return []models.JournalEntry{}
	}
	return entries
}

// Get returns the entry with the given id, or nil when it does not exist.
func (s *Service) Get(id string) *models.JournalEntry {
	entry, err := s.store.GetEntry(id)
	if err != nil {
		logger.Debug("journal entry lookup failed", "id", id, "error", err)
		return nil
	}
	return &entry
}

// Update rewrites an existing entry and reports whether anything changed.
// Updating an unknown id is a no-op returning false.
func (s *Service) Update(entry models.JournalEntry) bool {
	entry.Normalize()
	if err := s.store.UpdateEntry(entry); err != nil {
		logger.Error("failed to update journal entry", "id", entry.ID, "error", err)
		return false
	}
	return true
}

// Delete removes the entry with the given id and reports whether it existed.
func (s *Service) Delete(id string) bool {
	if err := s.store.DeleteEntry(id); err != nil {
		logger.Error("failed to delete journal entry", "id", id, "error", err)
		return false
	}
	return true
}

// Search returns the entries whose title or content contains q, matched
// case-sensitively. Failures yield an empty slice.
func (s *Service) Search(q string) []models.JournalEntry {
	entries, err := s.store.SearchEntries(q)
	if err != nil {
		logger.Error("journal search failed", "query", q, "error", err)
		return []models.JournalEntry{}
	}
	return entries
}

// ByMood returns the entries recorded with the given mood (exact match).
func (s *Service) ByMood(mood string) []models.JournalEntry {
	entries, err := s.store.GetEntriesByMood(mood)
	if err != nil {
		logger.Error("journal mood filter failed", "mood", mood, "error", err)
		return []models.JournalEntry{}
	}
	return entries
}

// Stats summarizes the journal. Failures yield zeroed stats with a non-nil
// mood map so callers can range over it.
func (s *Service) Stats() models.JournalStats {
	stats, err := s.store.EntryStats()
	if err != nil {
		logger.Error("failed to compute journal stats", "error", err)
		return models.JournalStats{MoodCounts: map[string]int{}}
	}
	return stats
}
