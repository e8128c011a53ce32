// Package weather renders the current-conditions tab: one big card with the
// live snapshot, unit-aware values, and the optional AI insight underneath.
package weather

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

type Model struct {
	current *models.WeatherData
	units   constants.Units
	insight string
	errText string
	loading bool
	spinner spinner.Model
	styles  styles.Set
	width   int
	height  int
}

func New(units constants.Units, st styles.Set, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Accent
	return Model{
		units:   units,
		loading: true,
		spinner: sp,
		styles:  st,
		width:   width,
		height:  height,
	}
}

// SetWeather replaces the snapshot and leaves the loading state.
func (m *Model) SetWeather(w *models.WeatherData) {
	m.current = w
	m.loading = false
	m.errText = ""
}

// SetInsight attaches the one-line AI commentary shown under the card.
func (m *Model) SetInsight(text string) {
	m.insight = text
}

// SetError records a fetch failure. Any previous snapshot stays visible.
func (m *Model) SetError(text string) {
	m.errText = text
	m.loading = false
}

func (m *Model) SetUnits(units constants.Units) {
	m.units = units
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
	m.spinner.Style = st.Accent
}

// Refresh puts the card back into its loading state and restarts the
// spinner. The returned cmd must reach the program for the animation to run.
func (m *Model) Refresh() tea.Cmd {
	m.loading = true
	m.errText = ""
	return m.spinner.Tick
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok && m.loading {
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			fmt.Sprintf("%s fetching current conditions...", m.spinner.View()))
	}
	if m.current == nil {
		text := "No weather data."
		if m.errText != "" {
			text = m.errText
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Error.Render(text))
	}

	w := m.current
	unit := models.TempUnit(m.units)

	header := fmt.Sprintf("%s  %s", w.Emoji(), m.styles.Title.Render(w.Location()))
	temp := fmt.Sprintf("%s%s",
		m.styles.Value.Bold(true).Render(fmt.Sprintf("%.1f%s", w.TempIn(m.units), unit)),
		m.styles.Dim.Render(fmt.Sprintf("  feels like %.1f%s", w.FeelsLikeIn(m.units), unit)))
	desc := m.styles.Accent.Render(w.Description)

	details := lipgloss.JoinVertical(lipgloss.Left,
		m.row("Humidity", fmt.Sprintf("%d%%", w.Humidity)),
		m.row("Wind", fmt.Sprintf("%.1f %s %s", w.WindIn(m.units), models.WindUnit(m.units), compass(w.WindDeg))),
		m.row("Pressure", fmt.Sprintf("%d hPa", w.Pressure)),
		m.row("Visibility", fmt.Sprintf("%.1f km", w.VisibilityKM)),
		m.row("UV index", fmt.Sprintf("%.1f", w.UVIndex)),
		m.row("Cloud cover", fmt.Sprintf("%d%%", w.Cloudiness)),
		m.row("Sunrise", w.Sunrise.Format(constants.TimeFormat)),
		m.row("Sunset", w.Sunset.Format(constants.TimeFormat)),
	)

	sections := []string{header, "", temp, desc, "", details}
	if m.errText != "" {
		sections = append(sections, "", m.styles.Warning.Render("⚠ "+m.errText+" (showing last data)"))
	}
	body := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	out := []string{body}
	if m.insight != "" {
		out = append(out, "", m.styles.Card.Render("💡 "+m.insight))
	}
	out = append(out, "", m.styles.Dim.Render("updated "+w.Timestamp.Format(constants.TimeFormat)))

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, out...))
}

func (m Model) row(label, value string) string {
	return fmt.Sprintf("%s %s", m.styles.Label.Width(13).Render(label+":"), m.styles.Value.Render(value))
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// compass maps a meteorological wind bearing to its nearest cardinal or
// intercardinal point.
func compass(deg int) string {
	d := ((deg % 360) + 360) % 360
	return compassPoints[((d+22)%360)/45]
}
