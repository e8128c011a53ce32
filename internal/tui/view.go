package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ehunter/skycast/internal/constants"
)

var tabTitles = [constants.NumMainTabs]string{
	"Weather", "Forecast", "Journal", "Team", "Analytics", "Activities", "Poetry", "Settings",
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case constants.StateEntryForm, constants.StateEditEntry, constants.StateSettingsForm:
		return m.styles.Doc.Render(m.form.View())
	case constants.StateConfirmDelete:
		return m.viewConfirmDelete()
	}

	var content string
	switch m.state {
	case constants.StateWeather:
		content = m.weatherTab.View()
	case constants.StateForecast:
		content = m.forecastTab.View()
	case constants.StateJournal:
		content = m.journalTab.View()
	case constants.StateTeam:
		content = m.teamTab.View()
	case constants.StateAnalytics:
		content = m.analyticsTab.View()
	case constants.StateActivities:
		content = m.activitiesTab.View()
	case constants.StatePoetry:
		content = m.poetryTab.View()
	case constants.StateSettings:
		content = m.settingsTab.View()
	}

	return m.styles.Doc.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.statusLine(),
		m.help.View(m),
	))
}

func (m Model) viewTabs() string {
	tabs := make([]string, 0, len(tabTitles))
	for i, title := range tabTitles {
		if m.state == constants.SessionState(i) {
			tabs = append(tabs, m.styles.ActiveTab.Render(title))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) statusLine() string {
	parts := []string{m.city}
	if m.deps.Weather != nil && m.deps.Weather.Offline() {
		parts = append(parts, "sample data")
	}
	if m.settings.AutoRefreshMin > 0 {
		parts = append(parts, fmt.Sprintf("auto refresh %dm", m.settings.AutoRefreshMin))
	}
	return m.styles.Dim.Render(strings.Join(parts, " · "))
}

func (m Model) viewConfirmDelete() string {
	title := "Delete this journal entry?"
	if m.entryToDelete != nil {
		title = fmt.Sprintf("Delete journal entry %q?", m.entryToDelete.Title)
	}
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			m.styles.Error.Render(title),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
