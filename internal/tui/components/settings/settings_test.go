package settings

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func TestEditKeyEmitsMsg(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(models.DefaultSettings(), st, 80, 24)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if cmd == nil {
		t.Fatal("'e' should produce a command")
	}
	if _, ok := cmd().(EditSettingsMsg); !ok {
		t.Fatalf("'e' produced %T, want EditSettingsMsg", cmd())
	}
}

func TestViewShowsPreferencesAndIntegrations(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	s := models.Settings{Units: "imperial", DefaultCity: "Portland", Theme: "arctic", AutoRefreshMin: 15}
	m := New(s, st, 90, 30)
	m.SetIntegrations(true, "gemini", false)

	view := m.View()
	for _, want := range []string{
		"imperial",
		"Portland",
		"every 15 min",
		"arctic",
		"● live data",
		"● gemini",
		"○ not configured",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewDefaults(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(models.Settings{Units: "metric", Theme: "midnight"}, st, 90, 30)

	view := m.View()
	if !strings.Contains(view, "(not set)") {
		t.Error("empty default city placeholder missing")
	}
	if !strings.Contains(view, "Auto refresh") || !strings.Contains(view, "off") {
		t.Error("disabled auto refresh should render as off")
	}
	if !strings.Contains(view, "○ sample data") {
		t.Error("keyless weather should render as sample data")
	}
}
