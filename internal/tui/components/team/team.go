// Package team renders the team tab: a table of member cities with their
// current conditions and the recent-update feed underneath.
package team

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// ForceRefreshMsg asks the root model to bypass the team cache and refetch.
type ForceRefreshMsg struct{}

const feedShow = 6

type KeyMap struct {
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

type Model struct {
	tbl     table.Model
	keys    KeyMap
	cities  []models.TeamCity
	feed    []models.TeamActivity
	units   constants.Units
	synced  string
	errText string
	loading bool
	styles  styles.Set
	width   int
	height  int
}

func New(units constants.Units, st styles.Set, width, height int) Model {
	tbl := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	m := Model{
		tbl:     tbl,
		keys:    DefaultKeyMap(),
		units:   units,
		loading: true,
		styles:  st,
		width:   width,
		height:  height,
	}
	m.applyTableStyles()
	return m
}

func columns() []table.Column {
	return []table.Column{
		{Title: "Member", Width: 14},
		{Title: "City", Width: 18},
		{Title: "Temp", Width: 8},
		{Title: "Conditions", Width: 20},
		{Title: "Updated", Width: 14},
	}
}

func (m *Model) applyTableStyles() {
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		Bold(true).
		Foreground(m.styles.Title.GetForeground()).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true)
	ts.Selected = m.styles.ActiveTab
	m.tbl.SetStyles(ts)
}

// SetCities replaces the table rows.
func (m *Model) SetCities(cities []models.TeamCity) {
	m.cities = cities
	m.rebuildRows()
	m.loading = false
	m.errText = ""
}

func (m *Model) rebuildRows() {
	rows := make([]table.Row, len(m.cities))
	for i, c := range m.cities {
		temp := c.Weather.Temperature
		if m.units == constants.UnitsImperial {
			temp = models.CToF(temp)
		}
		city := c.CityName
		if c.Country != "" {
			city += ", " + c.Country
		}
		rows[i] = table.Row{
			c.MemberName,
			city,
			fmt.Sprintf("%.1f%s", temp, models.TempUnit(m.units)),
			c.Weather.Description,
			fmtUpdated(c.LastUpdated),
		}
	}
	m.tbl.SetRows(rows)
}

func (m *Model) SetFeed(feed []models.TeamActivity) {
	m.feed = feed
}

// SetSyncInfo sets the footer line describing cache freshness.
func (m *Model) SetSyncInfo(count int, age time.Duration, valid bool) {
	if count == 0 {
		m.synced = ""
		return
	}
	state := "fresh"
	if !valid {
		state = "stale"
	}
	m.synced = fmt.Sprintf("%d members · synced %s ago (%s)", count, age.Round(time.Second), state)
}

func (m *Model) SetUnits(units constants.Units) {
	m.units = units
	m.rebuildRows()
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
	m.applyTableStyles()
}

func (m *Model) SetError(text string) {
	m.errText = text
	m.loading = false
}

func (m *Model) Refresh() {
	m.loading = true
	m.errText = ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) {
			m.loading = true
			return m, func() tea.Msg { return ForceRefreshMsg{} }
		}
	}

	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Dim.Render("syncing team cities..."))
	}
	if len(m.tbl.Rows()) == 0 {
		text := "No team data. Press 'r' to sync."
		if m.errText != "" {
			text = m.errText
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Error.Render(text))
	}

	sections := []string{
		m.styles.Title.Render("Team cities"),
		m.tbl.View(),
	}
	if m.synced != "" {
		sections = append(sections, m.styles.Dim.Render(m.synced))
	}
	if m.errText != "" {
		sections = append(sections, m.styles.Warning.Render("⚠ "+m.errText+" (showing cached data)"))
	}

	if len(m.feed) > 0 {
		sections = append(sections, "", m.styles.Title.Render("Recent activity"))
		n := len(m.feed)
		if n > feedShow {
			n = feedShow
		}
		for _, a := range m.feed[:n] {
			sections = append(sections, m.feedLine(a))
		}
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) feedLine(a models.TeamActivity) string {
	temp := a.Temperature
	if m.units == constants.UnitsImperial {
		temp = models.CToF(temp)
	}
	return fmt.Sprintf("%s %s %s — %s, %.1f%s %s %s",
		m.styles.Accent.Render("•"),
		m.styles.Value.Render(a.Member),
		a.Action,
		a.City,
		temp,
		models.TempUnit(m.units),
		a.Weather,
		m.styles.Dim.Render(a.Time.Format("Jan 2 15:04")),
	)
}

// fmtUpdated renders the export's ISO timestamp as a short local form,
// falling back to the raw string when it does not parse.
func fmtUpdated(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		if len(ts) > 14 {
			return ts[:14]
		}
		return ts
	}
	return t.Format("Jan 2 15:04")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height

	h := height - feedShow - 6
	if h < 4 {
		h = 4
	}
	m.tbl.SetHeight(h)
}
