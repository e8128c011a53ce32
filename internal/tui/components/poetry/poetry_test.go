package poetry

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func press(m Model, r rune) (Model, tea.Msg) {
	m2, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	if cmd == nil {
		return m2, nil
	}
	return m2, cmd()
}

func TestStyleCycleRequestsNextStyle(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 80, 24)

	m, msg := press(m, 's')
	gen, ok := msg.(GenerateMsg)
	if !ok {
		t.Fatalf("'s' produced %T, want GenerateMsg", msg)
	}
	if gen.Style != constants.PoemLimerick {
		t.Errorf("next style = %q, want limerick", gen.Style)
	}

	// Three more presses wrap back to haiku.
	for i := 0; i < 3; i++ {
		m, msg = press(m, 's')
	}
	if got := msg.(GenerateMsg).Style; got != constants.PoemHaiku {
		t.Errorf("style after full cycle = %q, want haiku", got)
	}
}

func TestRegenerateKeepsStyle(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 80, 24)
	m.SetPoem(models.Poem{Style: constants.PoemSonnet, Text: "Shall I compare thee"})

	_, msg := press(m, 'g')
	if got := msg.(GenerateMsg).Style; got != constants.PoemSonnet {
		t.Errorf("'g' regenerated %q, want the displayed sonnet style", got)
	}
}

func TestViewShowsPoemAndFallbackNotice(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 80, 24)
	m.SetPoem(models.Poem{Style: constants.PoemFreeVerse, Text: "clouds drift, unhurried", Fallback: true})

	view := m.View()
	if !strings.Contains(view, "Weather poetry — free verse") {
		t.Error("header missing readable style name")
	}
	if !strings.Contains(view, "clouds drift, unhurried") {
		t.Error("poem text missing")
	}
	if !strings.Contains(view, "offline verse") {
		t.Error("fallback notice missing")
	}
}
