package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ehunter/skycast/internal/constants"
)

// JournalEntry is the one persistent, versioned-schema entity. The id is
// caller-supplied (uuid by default) and the timestamp is an ISO string used
// as the ordering key; both survive round trips untouched.
type JournalEntry struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Mood      string         `json:"mood"` // free text, unchecked
	Timestamp string         `json:"timestamp"`
	Weather   map[string]any `json:"weather"` // opaque snapshot, {} when absent
	CreatedAt string         `json:"created_at,omitempty"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// NewJournalEntry builds an entry with a fresh id and current timestamp.
func NewJournalEntry(title, content, mood string) JournalEntry {
	return JournalEntry{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Mood:      mood,
		Timestamp: time.Now().Format(constants.TimestampFormat),
		Weather:   map[string]any{},
	}
}

// Normalize fills the defaulted fields an entry must carry before it can be
// saved: id, timestamp, and an empty weather snapshot.
func (e *JournalEntry) Normalize() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.Timestamp == "" {
		e.Timestamp = time.Now().Format(constants.TimestampFormat)
	}
	if e.Weather == nil {
		e.Weather = map[string]any{}
	}
}

// Day returns the YYYY-MM-DD portion of the entry's timestamp, best effort.
func (e JournalEntry) Day() string {
	if t, err := time.Parse(constants.TimestampFormat, e.Timestamp); err == nil {
		return t.Format(constants.DateFormat)
	}
	if len(e.Timestamp) >= len(constants.DateFormat) {
		return e.Timestamp[:len(constants.DateFormat)]
	}
	return e.Timestamp
}

// moodEmoji covers the suggested moods plus a few common write-ins; anything
// else renders without an emoji since mood is free text.
var moodEmoji = map[string]string{
	"happy":     "😊",
	"calm":      "😌",
	"energetic": "⚡",
	"neutral":   "😐",
	"tired":     "😴",
	"gloomy":    "🌫️",
	"sad":       "😢",
	"anxious":   "😰",
}

// MoodEmoji returns the emoji for a known mood, "" otherwise.
func MoodEmoji(mood string) string {
	return moodEmoji[strings.ToLower(strings.TrimSpace(mood))]
}

// JournalStats summarizes the journal for the stats view.
type JournalStats struct {
	Total      int            `json:"total"`
	MoodCounts map[string]int `json:"mood_counts"`
	Recent30d  int            `json:"recent_30d"`
}
