// Package settings renders the settings tab: the persisted preferences plus
// the state of the outside integrations, with 'e' opening the edit form.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

// EditSettingsMsg asks the root model to open the settings form.
type EditSettingsMsg struct{}

type Model struct {
	settings   models.Settings
	weatherKey bool
	aiDriver   string
	mapsKey    bool
	styles     styles.Set
	width      int
	height     int
}

func New(settings models.Settings, st styles.Set, width, height int) Model {
	return Model{
		settings: settings,
		styles:   st,
		width:    width,
		height:   height,
	}
}

func (m *Model) SetSettings(settings models.Settings) {
	m.settings = settings
}

// SetIntegrations records which outside services are wired up. aiDriver is
// the active driver name, empty when poems and insights run canned.
func (m *Model) SetIntegrations(weatherKey bool, aiDriver string, mapsKey bool) {
	m.weatherKey = weatherKey
	m.aiDriver = aiDriver
	m.mapsKey = mapsKey
}

func (m *Model) SetStyles(st styles.Set) {
	m.styles = st
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return ""
	}

	refresh := "off"
	if m.settings.AutoRefreshMin > 0 {
		refresh = fmt.Sprintf("every %d min", m.settings.AutoRefreshMin)
	}
	city := m.settings.DefaultCity
	if city == "" {
		city = "(not set)"
	}

	general := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("General"),
		m.row("Units", m.settings.Units),
		m.row("Default city", city),
		m.row("Auto refresh", refresh),
	)

	appearance := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Appearance"),
		m.row("Theme", m.settings.Theme),
		m.row("Available", strings.Join(styles.Themes(), ", ")),
	)

	integrations := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Integrations"),
		m.row("OpenWeather", m.keyState(m.weatherKey, "live data", "sample data")),
		m.row("AI", m.aiState()),
		m.row("Google Maps", m.keyState(m.mapsKey, "configured", "not configured")),
	)

	help := m.styles.Dim.Render("Press 'e' to edit settings · keys are managed with `skycast keys`")

	content := lipgloss.JoinVertical(lipgloss.Left,
		general, "", appearance, "", integrations, "", help)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		lipgloss.NewStyle().Padding(1, 2).Render(content))
}

func (m Model) row(label, value string) string {
	return fmt.Sprintf("%s %s", m.styles.Label.Width(14).Render(label+":"), m.styles.Value.Render(value))
}

func (m Model) keyState(ok bool, yes, no string) string {
	if ok {
		return m.styles.Success.Render("● " + yes)
	}
	return m.styles.Warning.Render("○ " + no)
}

func (m Model) aiState() string {
	if m.aiDriver == "" {
		return m.styles.Warning.Render("○ canned fallbacks")
	}
	return m.styles.Success.Render("● " + m.aiDriver)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
