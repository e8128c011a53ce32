// Package journal renders the journal tab: the entry list with add, edit,
// and delete flows plus an inline read pane for a single entry.
package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// AddEntryMsg asks the root model to open the new-entry form.
type AddEntryMsg struct{}

// EditEntryMsg asks the root model to open the edit form for an entry.
type EditEntryMsg struct {
	Entry models.JournalEntry
}

// DeleteEntryMsg asks the root model to confirm deleting an entry.
type DeleteEntryMsg struct {
	Entry models.JournalEntry
}

type Item struct {
	Entry models.JournalEntry
}

func (i Item) Title() string {
	if e := models.MoodEmoji(i.Entry.Mood); e != "" {
		return e + " " + i.Entry.Title
	}
	return i.Entry.Title
}

func (i Item) Description() string {
	desc := i.Entry.Day()
	if i.Entry.Mood != "" {
		desc += " | " + i.Entry.Mood
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Title + " " + i.Entry.Content }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Open   key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "read"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
	}
}

type Model struct {
	list   list.Model
	keys   KeyMap
	detail *models.JournalEntry
	stats  models.JournalStats
	styles styles.Set
	width  int
	height int
}

func New(entries []models.JournalEntry, st styles.Set, width, height int) Model {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}

	l := list.New(items, list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is handled globally by the root model

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Open}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Edit, keys.Delete, keys.Open}
	}

	return Model{list: l, keys: keys, styles: st, width: width, height: height}
}

// SetEntries replaces the listed entries and closes any open read pane.
func (m *Model) SetEntries(entries []models.JournalEntry) {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = Item{Entry: e}
	}
	m.list.SetItems(items)
	m.detail = nil
}

func (m *Model) SetStats(stats models.JournalStats) {
	m.stats = stats
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

// Reading reports whether the read pane is open, in which case the root
// model should leave esc to this component instead of treating it globally.
func (m Model) Reading() bool { return m.detail != nil }

// Filtering reports whether the list filter input is focused, so the root
// model can keep global shortcuts out of the way while the user types.
func (m Model) Filtering() bool { return m.list.FilterState() == list.Filtering }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.detail != nil {
			switch {
			case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open):
				m.detail = nil
			case key.Matches(msg, m.keys.Edit):
				e := *m.detail
				return m, func() tea.Msg { return EditEntryMsg{Entry: e} }
			case key.Matches(msg, m.keys.Delete):
				e := *m.detail
				return m, func() tea.Msg { return DeleteEntryMsg{Entry: e} }
			}
			return m, nil
		}
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddEntryMsg{} }
		case key.Matches(msg, m.keys.Edit):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return EditEntryMsg{Entry: i.Entry} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteEntryMsg{Entry: i.Entry} }
			}
		case key.Matches(msg, m.keys.Open):
			if i, ok := m.list.SelectedItem().(Item); ok {
				e := i.Entry
				m.detail = &e
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.detail != nil {
		return m.detailView()
	}
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No journal entries yet.\n  Press 'a' to write one."
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.list.View(), m.statsLine())
}

func (m Model) detailView() string {
	e := m.detail

	title := e.Title
	if emoji := models.MoodEmoji(e.Mood); emoji != "" {
		title = emoji + " " + title
	}

	meta := e.Day()
	if e.Mood != "" {
		meta += " · " + e.Mood
	}
	if w := weatherLine(e.Weather); w != "" {
		meta += " · " + w
	}

	wrap := m.width - 6
	if wrap < 20 {
		wrap = 20
	}
	body := lipgloss.NewStyle().Width(wrap).Render(e.Content)

	pane := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(title),
		m.styles.Dim.Render(meta),
		"",
		m.styles.Value.Render(body),
		"",
		m.styles.Dim.Render("esc back · e edit · d delete"),
	)
	return m.styles.Panel.Render(pane)
}

func (m Model) statsLine() string {
	if m.stats.Total == 0 {
		return ""
	}
	return m.styles.Dim.Render(fmt.Sprintf("%d entries · %d in the last 30 days", m.stats.Total, m.stats.Recent30d))
}

// weatherLine renders the opaque weather snapshot an entry was saved with.
func weatherLine(w map[string]any) string {
	if len(w) == 0 {
		return ""
	}
	parts := make([]string, 0, 3)
	if v, ok := w["temperature"].(float64); ok {
		parts = append(parts, fmt.Sprintf("%.1f°C", v))
	}
	if s, ok := w["description"].(string); ok && s != "" {
		parts = append(parts, s)
	}
	if s, ok := w["city"].(string); ok && s != "" {
		parts = append(parts, "in "+s)
	}
	return strings.Join(parts, " ")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-1) // one line reserved for the stats footer
}
