// Package forecast renders the 5-day tab: an ascii temperature chart over
// the 3-hourly points plus one card per day with the min/max rollup.
package forecast

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

const chartHeight = 8

type Model struct {
	forecast *models.Forecast
	units    constants.Units
	errText  string
	loading  bool
	styles   styles.Set
	width    int
	height   int
}

func New(units constants.Units, st styles.Set, width, height int) Model {
	return Model{
		units:   units,
		loading: true,
		styles:  st,
		width:   width,
		height:  height,
	}
}

func (m *Model) SetForecast(f *models.Forecast) {
	m.forecast = f
	m.loading = false
	m.errText = ""
}

func (m *Model) SetError(text string) {
	m.errText = text
	m.loading = false
}

func (m *Model) SetUnits(units constants.Units) {
	m.units = units
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

func (m *Model) Refresh() {
	m.loading = true
	m.errText = ""
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Dim.Render("loading forecast..."))
	}
	if m.forecast == nil || len(m.forecast.Points) == 0 {
		text := "No forecast data."
		if m.errText != "" {
			text = m.errText
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Error.Render(text))
	}

	location := m.forecast.City
	if m.forecast.Country != "" {
		location += ", " + m.forecast.Country
	}
	title := m.styles.Title.Render("5-day forecast — " + location)

	sections := []string{title, ""}
	if chart := m.chart(); chart != "" {
		sections = append(sections, chart, "")
	}

	cards := make([]string, 0, 6)
	for _, d := range m.forecast.Days() {
		cards = append(cards, m.dayCard(d))
	}
	if len(cards) > 0 {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	if m.errText != "" {
		sections = append(sections, "", m.styles.Warning.Render("⚠ "+m.errText+" (showing last data)"))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) chart() string {
	temps := m.forecast.Temperatures()
	if len(temps) < 2 {
		return ""
	}
	if m.units == constants.UnitsImperial {
		for i, v := range temps {
			temps[i] = models.CToF(v)
		}
	}

	w := m.width - 12
	if w > 72 {
		w = 72
	}
	if w < 24 {
		w = 24
	}
	return asciigraph.Plot(temps,
		asciigraph.Height(chartHeight),
		asciigraph.Width(w),
		asciigraph.Caption(fmt.Sprintf("3-hourly temperature (%s)", models.TempUnit(m.units))),
	)
}

func (m Model) dayCard(d models.ForecastDay) string {
	max, min := d.Max, d.Min
	if m.units == constants.UnitsImperial {
		max, min = models.CToF(max), models.CToF(min)
	}
	lines := []string{
		m.styles.Title.Render(dayTitle(d.Date)),
		fmt.Sprintf("%s %s", models.IconEmoji(d.Icon), m.styles.Value.Render(fmt.Sprintf("%.0f° / %.0f°", max, min))),
		m.styles.Dim.Render(clip(d.Description, 16)),
	}
	return m.styles.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// dayTitle renders a YYYY-MM-DD date as "Mon Jan 2", falling back to the raw
// string when it does not parse.
func dayTitle(date string) string {
	t, err := time.Parse(constants.DateFormat, date)
	if err != nil {
		return date
	}
	return t.Format("Mon Jan 2")
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
