package journal

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func entries() []models.JournalEntry {
	return []models.JournalEntry{
		{ID: "a1", Title: "Sunny walk", Content: "Went out along the canal.", Mood: "happy", Timestamp: "2025-06-02T10:00:00Z"},
		{ID: "b2", Title: "Rainy day", Content: "Stayed in with a book.", Mood: "tired", Timestamp: "2025-06-01T09:00:00Z"},
	}
}

func newModel() Model {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	return New(entries(), st, 80, 24)
}

func press(t *testing.T, m Model, k string) (Model, tea.Msg) {
	t.Helper()
	var km tea.KeyMsg
	switch k {
	case "enter":
		km = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		km = tea.KeyMsg{Type: tea.KeyEscape}
	default:
		km = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m2, cmd := m.Update(km)
	if cmd == nil {
		return m2, nil
	}
	return m2, cmd()
}

func TestKeysEmitEntryMsgs(t *testing.T) {
	m := newModel()

	_, msg := press(t, m, "a")
	if _, ok := msg.(AddEntryMsg); !ok {
		t.Fatalf("'a' produced %T, want AddEntryMsg", msg)
	}

	_, msg = press(t, m, "e")
	edit, ok := msg.(EditEntryMsg)
	if !ok {
		t.Fatalf("'e' produced %T, want EditEntryMsg", msg)
	}
	if edit.Entry.ID != "a1" {
		t.Errorf("edit targets %q, want the selected entry a1", edit.Entry.ID)
	}

	_, msg = press(t, m, "d")
	del, ok := msg.(DeleteEntryMsg)
	if !ok {
		t.Fatalf("'d' produced %T, want DeleteEntryMsg", msg)
	}
	if del.Entry.Title != "Sunny walk" {
		t.Errorf("delete targets %q", del.Entry.Title)
	}
}

func TestOpenAndCloseReadPane(t *testing.T) {
	m := newModel()

	m, _ = press(t, m, "enter")
	if !m.Reading() {
		t.Fatal("enter should open the read pane")
	}
	view := m.View()
	if !strings.Contains(view, "Went out along the canal.") {
		t.Error("read pane missing entry content")
	}
	if !strings.Contains(view, "😊") {
		t.Error("read pane missing mood emoji")
	}

	m, _ = press(t, m, "esc")
	if m.Reading() {
		t.Error("esc should close the read pane")
	}
}

func TestReadPaneEditShortcut(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, "enter")

	_, msg := press(t, m, "e")
	edit, ok := msg.(EditEntryMsg)
	if !ok {
		t.Fatalf("'e' in read pane produced %T, want EditEntryMsg", msg)
	}
	if edit.Entry.ID != "a1" {
		t.Errorf("edit targets %q", edit.Entry.ID)
	}
}

func TestSetEntriesClosesReadPane(t *testing.T) {
	m := newModel()
	m, _ = press(t, m, "enter")

	m.SetEntries(entries()[:1])
	if m.Reading() {
		t.Error("SetEntries should close the read pane")
	}
}

func TestEmptyState(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(nil, st, 80, 24)
	if !strings.Contains(m.View(), "No journal entries yet") {
		t.Error("empty state text missing")
	}
}

func TestStatsFooter(t *testing.T) {
	m := newModel()
	m.SetStats(models.JournalStats{Total: 12, Recent30d: 5})
	if !strings.Contains(m.View(), "12 entries · 5 in the last 30 days") {
		t.Error("stats footer missing")
	}
}

func TestWeatherLine(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want string
	}{
		{"empty", map[string]any{}, ""},
		{"full", map[string]any{"temperature": 21.5, "description": "light rain", "city": "Paris"}, "21.5°C light rain in Paris"},
		{"temp only", map[string]any{"temperature": 3.0}, "3.0°C"},
		{"wrong types ignored", map[string]any{"temperature": "hot", "city": 7}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weatherLine(tt.in); got != tt.want {
				t.Errorf("weatherLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

