package models

import "testing"

func TestNewJournalEntry(t *testing.T) {
	e := NewJournalEntry("Rainy Monday", "It rained all day", "neutral")

	if e.ID == "" {
		t.Error("NewJournalEntry left ID empty")
	}
	if e.Timestamp == "" {
		t.Error("NewJournalEntry left Timestamp empty")
	}
	if e.Weather == nil || len(e.Weather) != 0 {
		t.Errorf("Weather = %v, want empty map", e.Weather)
	}
}

func TestNormalize(t *testing.T) {
	e := JournalEntry{Title: "t", Content: "c"}
	e.Normalize()

	if e.ID == "" || e.Timestamp == "" {
		t.Error("Normalize did not fill id/timestamp")
	}
	if e.Weather == nil {
		t.Error("Normalize did not default weather to {}")
	}

	// Caller-supplied values survive
	fixed := JournalEntry{ID: "1", Timestamp: "2024-01-01T08:00:00Z"}
	fixed.Normalize()
	if fixed.ID != "1" || fixed.Timestamp != "2024-01-01T08:00:00Z" {
		t.Errorf("Normalize overwrote caller values: %+v", fixed)
	}
}

func TestDay(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		expected  string
	}{
		{"rfc3339", "2024-01-01T08:00:00Z", "2024-01-01"},
		{"date prefix fallback", "2024-02-03T99:99", "2024-02-03"},
		{"short garbage", "nope", "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := JournalEntry{Timestamp: tt.timestamp}
			if got := e.Day(); got != tt.expected {
				t.Errorf("Day() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestMoodEmoji(t *testing.T) {
	if MoodEmoji(" Happy ") != "😊" {
		t.Error("mood lookup should be case and space insensitive")
	}
	if MoodEmoji("contemplative") != "" {
		t.Error("unknown mood should map to empty string")
	}
}

func TestProfileFeatures(t *testing.T) {
	p := WeatherProfile{Temperature: 1, Humidity: 2, WindSpeed: 3, Pressure: 4, UVIndex: 5, Visibility: 6}
	got := p.Features()
	want := []float64{1, 2, 3, 4, 5, 6}
	if len(got) != len(want) {
		t.Fatalf("Features() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Features()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(FeatureNames) != len(want) {
		t.Errorf("FeatureNames len = %d, want %d", len(FeatureNames), len(want))
	}
}
