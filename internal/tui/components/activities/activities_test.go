package activities

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func newModel() Model {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 90, 24)
	m.SetActivities([]models.Activity{
		{Name: "Beach Day", Category: "weather_specific", Duration: "long", Equipment: "basic", Description: "Full day of sun", Score: 85},
		{Name: "Nature Walk", Category: "outdoor_adventures", Duration: "short", Equipment: "none", Description: "Trail loop", Score: 80},
	})
	return m
}

func press(m Model, r rune) (Model, tea.Msg) {
	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	if cmd == nil {
		return m2, nil
	}
	return m2, cmd()
}

func TestCategoryCycleEmitsFilters(t *testing.T) {
	m := newModel()

	m, msg := press(m, 'c')
	f, ok := msg.(FiltersChangedMsg)
	if !ok {
		t.Fatalf("'c' produced %T, want FiltersChangedMsg", msg)
	}
	if f.Category != "outdoor_adventures" {
		t.Errorf("first category = %q, want outdoor_adventures", f.Category)
	}

	// Four more presses wrap back around to "all".
	for i := 0; i < 4; i++ {
		m, msg = press(m, 'c')
	}
	f = msg.(FiltersChangedMsg)
	if f.Category != "" {
		t.Errorf("category after full cycle = %q, want empty", f.Category)
	}
}

func TestIndependentFilterAxes(t *testing.T) {
	m := newModel()

	m, _ = press(m, 't')
	m, msg := press(m, 'g')

	f := msg.(FiltersChangedMsg)
	if f.Category != "" || f.Duration != "short" || f.Equipment != "none" {
		t.Errorf("filters = %+v", f)
	}
}

func TestFilterHeaderShowsState(t *testing.T) {
	m := newModel()
	m, _ = press(m, 'c')
	m.SetActivities(nil) // leave the loading state the key press entered

	view := m.View()
	if !strings.Contains(view, "category: outdoor") {
		t.Errorf("header missing category state:\n%s", view)
	}
	if !strings.Contains(view, "duration: all") {
		t.Error("header missing untouched duration state")
	}
	if !strings.Contains(view, "No activities match these filters") {
		t.Error("empty state text missing")
	}
}

func TestListShowsSuggestions(t *testing.T) {
	m := newModel()
	view := m.View()
	if !strings.Contains(view, "Beach Day · fit 85") {
		t.Errorf("view missing scored suggestion:\n%s", view)
	}
	if !strings.Contains(view, "long · basic gear — Full day of sun") {
		t.Error("view missing suggestion description")
	}
}

func TestFilterChangeEntersLoadingState(t *testing.T) {
	m := newModel()
	m, _ = press(m, 'g')
	if !strings.Contains(m.View(), "matching activities to the weather") {
		t.Error("filter change should show the loading state until new results land")
	}
}
