// Package activities renders the suggestions tab: a scored activity list
// with three cycling filters (category, duration, gear).
package activities

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// FiltersChangedMsg asks the root model to re-run suggestions with the new
// filter combination. Empty fields mean "no preference".
type FiltersChangedMsg struct {
	Category  string
	Duration  string
	Equipment string
}

var (
	categoryCycle = []string{
		"",
		string(constants.ActivityOutdoor),
		string(constants.ActivityIndoor),
		string(constants.ActivityWeather),
		string(constants.ActivitySocial),
	}
	durationCycle = []string{
		"",
		string(constants.DurationShort),
		string(constants.DurationMedium),
		string(constants.DurationLong),
	}
	equipmentCycle = []string{
		"",
		string(constants.EquipmentNone),
		string(constants.EquipmentBasic),
		string(constants.EquipmentAdvanced),
	}
)

type Item struct {
	Activity models.Activity
}

func (i Item) Title() string {
	return fmt.Sprintf("%s · fit %.0f", i.Activity.Name, i.Activity.Score)
}

func (i Item) Description() string {
	return fmt.Sprintf("%s · %s gear — %s", i.Activity.Duration, i.Activity.Equipment, i.Activity.Description)
}

func (i Item) FilterValue() string { return i.Activity.Name }

type KeyMap struct {
	Category key.Binding
	Duration key.Binding
	Gear     key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "category"),
		),
		Duration: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "duration"),
		),
		Gear: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "gear"),
		),
	}
}

type Model struct {
	list    list.Model
	keys    KeyMap
	catIdx  int
	durIdx  int
	gearIdx int
	loading bool
	styles  styles.Set
	width   int
	height  int
}

func New(st styles.Set, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Activities"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is handled globally by the root model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Category, keys.Duration, keys.Gear}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Category, keys.Duration, keys.Gear}
	}

	return Model{list: l, keys: keys, loading: true, styles: st, width: width, height: height}
}

// SetActivities replaces the listed suggestions.
func (m *Model) SetActivities(acts []models.Activity) {
	items := make([]list.Item, len(acts))
	for i, a := range acts {
		items[i] = Item{Activity: a}
	}
	m.list.SetItems(items)
	m.loading = false
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

func (m *Model) Refresh() {
	m.loading = true
}

// Filters returns the current filter combination.
func (m Model) Filters() (category, duration, equipment string) {
	return categoryCycle[m.catIdx], durationCycle[m.durIdx], equipmentCycle[m.gearIdx]
}

// Filtering reports whether the list filter input is focused.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Category):
			m.catIdx = (m.catIdx + 1) % len(categoryCycle)
			return m.emitFilters()
		case key.Matches(msg, m.keys.Duration):
			m.durIdx = (m.durIdx + 1) % len(durationCycle)
			return m.emitFilters()
		case key.Matches(msg, m.keys.Gear):
			m.gearIdx = (m.gearIdx + 1) % len(equipmentCycle)
			return m.emitFilters()
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) emitFilters() (Model, tea.Cmd) {
	m.loading = true
	cat, dur, gear := m.Filters()
	return m, func() tea.Msg {
		return FiltersChangedMsg{Category: cat, Duration: dur, Equipment: gear}
	}
}

func (m Model) View() string {
	header := m.filterLine()
	if m.loading {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			"\n  "+m.styles.Dim.Render("matching activities to the weather..."))
	}
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return lipgloss.JoinVertical(lipgloss.Left, header,
			"\n  No activities match these filters.\n  Press 'c', 't' or 'g' to loosen them.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

func (m Model) filterLine() string {
	cat, dur, gear := m.Filters()
	return m.styles.Label.Render(fmt.Sprintf("category: %s · duration: %s · gear: %s",
		filterLabel(cat), filterLabel(dur), filterLabel(gear)))
}

// filterLabel shortens a filter value for the header; empty means no filter.
func filterLabel(v string) string {
	if v == "" {
		return "all"
	}
	return strings.SplitN(v, "_", 2)[0]
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2) // filter header uses the top lines
}
