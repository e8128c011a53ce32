package tui

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	activitysvc "github.com/ehunter/skycast/internal/activities"
	analyticssvc "github.com/ehunter/skycast/internal/analytics"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/components/activities"
	"github.com/ehunter/skycast/internal/tui/components/journal"
	"github.com/ehunter/skycast/internal/tui/components/poetry"
	"github.com/ehunter/skycast/internal/tui/components/settings"
	"github.com/ehunter/skycast/internal/tui/components/team"
	"github.com/ehunter/skycast/internal/tui/styles"
	"github.com/ehunter/skycast/internal/tui/timer"
)

const refreshTimerName = "auto-refresh"

type weatherMsg struct{ weather *models.WeatherData }

type weatherErrMsg struct{ err error }

type forecastMsg struct{ forecast *models.Forecast }

type forecastErrMsg struct{ err error }

type teamMsg struct {
	cities []models.TeamCity
	feed   []models.TeamActivity
	count  int
	age    time.Duration
	valid  bool
	err    error
}

type analysisMsg struct {
	profiles []models.WeatherProfile
	matrix   [][]float64
	clusters []models.ClusterResult
	insight  *models.SimilarityInsight
}

type suggestionsMsg struct{ activities []models.Activity }

type poemMsg struct{ poem models.Poem }

type insightMsg struct{ text string }

type autoRefreshMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Modal states own the keyboard until the form resolves.
	switch m.state {
	case constants.StateEntryForm, constants.StateEditEntry:
		return m.updateEntryForm(msg)
	case constants.StateSettingsForm:
		return m.updateSettingsForm(msg)
	case constants.StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.setSize()
		return m, nil

	case timer.TickMsg:
		return m, m.timers.Tick(msg)

	case spinner.TickMsg:
		// The weather spinner keeps ticking even when another tab has
		// focus, otherwise it freezes mid-fetch after a tab switch.
		var cmd tea.Cmd
		m.weatherTab, cmd = m.weatherTab.Update(msg)
		return m, cmd

	case autoRefreshMsg:
		return m, m.refreshAll()

	case weatherMsg:
		m.current = msg.weather
		m.weatherTab.SetWeather(msg.weather)
		m.activitiesTab.Refresh()
		category, duration, equipment := m.activitiesTab.Filters()
		return m, tea.Batch(
			m.fetchInsight(msg.weather),
			m.fetchSuggestions(category, duration, equipment),
		)

	case weatherErrMsg:
		m.weatherTab.SetError(msg.err.Error())
		return m, nil

	case forecastMsg:
		m.forecastTab.SetForecast(msg.forecast)
		return m, nil

	case forecastErrMsg:
		m.forecastTab.SetError(msg.err.Error())
		return m, nil

	case teamMsg:
		m.teamTab.SetCities(msg.cities)
		m.teamTab.SetFeed(msg.feed)
		m.teamTab.SetSyncInfo(msg.count, msg.age, msg.valid)
		if msg.err != nil {
			m.teamTab.SetError(msg.err.Error())
		}
		return m, m.computeAnalysis(msg.cities)

	case analysisMsg:
		m.analyticsTab.SetAnalysis(msg.profiles, msg.matrix, msg.clusters)
		if msg.insight != nil {
			m.analyticsTab.SetInsight(*msg.insight)
		}
		return m, nil

	case suggestionsMsg:
		m.activitiesTab.SetActivities(msg.activities)
		return m, nil

	case poemMsg:
		m.poetryTab.SetPoem(msg.poem)
		return m, nil

	case insightMsg:
		m.weatherTab.SetInsight(msg.text)
		return m, nil

	case journal.AddEntryMsg:
		return m.openEntryForm(nil)

	case journal.EditEntryMsg:
		entry := msg.Entry
		return m.openEntryForm(&entry)

	case journal.DeleteEntryMsg:
		entry := msg.Entry
		m.entryToDelete = &entry
		m.state = constants.StateConfirmDelete
		return m, nil

	case team.ForceRefreshMsg:
		m.teamTab.Refresh()
		return m, m.fetchTeam(true)

	case activities.FiltersChangedMsg:
		m.activitiesTab.Refresh()
		return m, m.fetchSuggestions(msg.Category, msg.Duration, msg.Equipment)

	case poetry.GenerateMsg:
		return m, m.fetchPoem(msg.Style)

	case settings.EditSettingsMsg:
		return m.openSettingsForm()

	case tea.KeyMsg:
		if m.typing() {
			break // a list filter owns the keyboard
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.timers.Shutdown()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = constants.SessionState((int(m.state) + 1) % constants.NumMainTabs)
			return m, nil
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = constants.SessionState((int(m.state) - 1 + constants.NumMainTabs) % constants.NumMainTabs)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			if m.state == constants.StateTeam {
				break // the team tab turns 'r' into a forced sync
			}
			return m, m.refreshAll()
		}
	}

	return m.updateActiveTab(msg)
}

func (m Model) updateActiveTab(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.state {
	case constants.StateWeather:
		m.weatherTab, cmd = m.weatherTab.Update(msg)
	case constants.StateForecast:
		m.forecastTab, cmd = m.forecastTab.Update(msg)
	case constants.StateJournal:
		m.journalTab, cmd = m.journalTab.Update(msg)
	case constants.StateTeam:
		m.teamTab, cmd = m.teamTab.Update(msg)
	case constants.StateAnalytics:
		m.analyticsTab, cmd = m.analyticsTab.Update(msg)
	case constants.StateActivities:
		m.activitiesTab, cmd = m.activitiesTab.Update(msg)
	case constants.StatePoetry:
		m.poetryTab, cmd = m.poetryTab.Update(msg)
	case constants.StateSettings:
		m.settingsTab, cmd = m.settingsTab.Update(msg)
	}
	return m, cmd
}

func (m Model) updateEntryForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setSize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			m.closeForms()
			m.state = constants.StateJournal
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveEntry()
		m.closeForms()
		m.state = constants.StateJournal
		return m, nil
	case huh.StateAborted:
		m.closeForms()
		m.state = constants.StateJournal
		return m, nil
	}
	return m, cmd
}

func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.setSize()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			m.closeForms()
			m.state = constants.StateSettings
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		applied := m.saveSettings()
		m.closeForms()
		m.state = constants.StateSettings
		return m, applied
	case huh.StateAborted:
		m.closeForms()
		m.state = constants.StateSettings
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		if m.entryToDelete != nil {
			m.deps.Journal.Delete(m.entryToDelete.ID)
			m.reloadJournal()
		}
		m.entryToDelete = nil
		m.state = constants.StateJournal
	case "n", "N", "esc", "q":
		m.entryToDelete = nil
		m.state = constants.StateJournal
	}
	return m, nil
}

func (m *Model) closeForms() {
	m.form = nil
	m.entryForm = nil
	m.settingsForm = nil
	m.editingEntry = nil
}

func (m Model) openEntryForm(entry *models.JournalEntry) (tea.Model, tea.Cmd) {
	form := &EntryFormModel{Mood: constants.DefaultMoods[0]}
	if entry != nil {
		form.Title = entry.Title
		form.Content = entry.Content
		form.Mood = entry.Mood
		m.editingEntry = entry
		m.state = constants.StateEditEntry
	} else {
		m.editingEntry = nil
		m.state = constants.StateEntryForm
	}
	m.entryForm = form
	m.form = newEntryForm(form)
	return m, m.form.Init()
}

func (m Model) openSettingsForm() (tea.Model, tea.Cmd) {
	form := &SettingsFormModel{
		Units:       m.settings.Units,
		DefaultCity: m.settings.DefaultCity,
		Theme:       m.settings.Theme,
		AutoRefresh: strconv.Itoa(m.settings.AutoRefreshMin),
	}
	m.settingsForm = form
	m.form = newSettingsForm(form)
	m.state = constants.StateSettingsForm
	return m, m.form.Init()
}

func (m *Model) saveEntry() {
	if m.entryForm == nil {
		return
	}
	if m.editingEntry != nil {
		entry := *m.editingEntry
		entry.Title = m.entryForm.Title
		entry.Content = m.entryForm.Content
		entry.Mood = m.entryForm.Mood
		m.deps.Journal.Update(entry)
	} else {
		entry := models.NewJournalEntry(m.entryForm.Title, m.entryForm.Content, m.entryForm.Mood)
		if m.current != nil {
			entry.Weather = map[string]any{
				"temperature": m.current.Temperature,
				"description": m.current.Description,
				"city":        m.current.City,
			}
		}
		m.deps.Journal.Save(entry)
	}
	m.reloadJournal()
}

// saveSettings persists the settings form, pushes the changed preferences
// into every tab, and returns the follow-up commands a change demands.
func (m *Model) saveSettings() tea.Cmd {
	if m.settingsForm == nil {
		return nil
	}
	next := m.settings
	next.Units = m.settingsForm.Units
	next.DefaultCity = strings.TrimSpace(m.settingsForm.DefaultCity)
	next.Theme = m.settingsForm.Theme
	if n, err := strconv.Atoi(strings.TrimSpace(m.settingsForm.AutoRefresh)); err == nil && n >= 0 {
		next.AutoRefreshMin = n
	}

	if err := m.deps.Store.SaveSettings(next); err != nil {
		logger.Error("failed to save settings", "error", err)
		return nil
	}

	prev := m.settings
	m.settings = next
	m.settingsTab.SetSettings(next)

	if next.Theme != prev.Theme {
		m.styles = styles.NewSet(styles.PaletteFor(next.Theme))
		m.applyStyles()
	}
	if next.Units != prev.Units {
		units := constants.Units(next.Units)
		m.weatherTab.SetUnits(units)
		m.forecastTab.SetUnits(units)
		m.teamTab.SetUnits(units)
	}

	var cmds []tea.Cmd
	if next.DefaultCity != prev.DefaultCity {
		m.city = next.DefaultCity
		if m.city == "" {
			m.city = m.deps.DefaultCity
		}
		if m.city == "" {
			m.city = constants.DefaultCity
		}
		m.forecastTab.Refresh()
		cmds = append(cmds, m.weatherTab.Refresh(), m.fetchWeather(), m.fetchForecast())
	}
	if next.AutoRefreshMin != prev.AutoRefreshMin {
		m.timers.Stop(refreshTimerName)
		if next.AutoRefreshMin > 0 {
			every := time.Duration(next.AutoRefreshMin) * time.Minute
			cmds = append(cmds, m.timers.Start(refreshTimerName, every, func() tea.Msg { return autoRefreshMsg{} }))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) reloadJournal() {
	m.journalTab.SetEntries(m.deps.Journal.All())
	m.journalTab.SetStats(m.deps.Journal.Stats())
}

func (m *Model) refreshAll() tea.Cmd {
	m.forecastTab.Refresh()
	m.analyticsTab.Refresh()
	m.teamTab.Refresh()
	return tea.Batch(
		m.weatherTab.Refresh(),
		m.fetchWeather(),
		m.fetchForecast(),
		m.fetchTeam(false),
	)
}

func (m *Model) applyStyles() {
	m.weatherTab.SetStyles(m.styles)
	m.forecastTab.SetStyles(m.styles)
	m.journalTab.SetStyles(m.styles)
	m.teamTab.SetStyles(m.styles)
	m.analyticsTab.SetStyles(m.styles)
	m.activitiesTab.SetStyles(m.styles)
	m.poetryTab.SetStyles(m.styles)
	m.settingsTab.SetStyles(m.styles)
}

// typing reports whether a component list filter is capturing input, in
// which case the global key bindings must stay out of the way.
func (m Model) typing() bool {
	switch m.state {
	case constants.StateJournal:
		return m.journalTab.Filtering()
	case constants.StateActivities:
		return m.activitiesTab.Filtering()
	}
	return false
}

func (m *Model) setSize() {
	h, v := m.styles.Doc.GetFrameSize()
	contentWidth := m.width - h
	contentHeight := m.height - v - 4 // tabs, status line, help
	if contentHeight < 0 {
		contentHeight = 0
	}
	m.weatherTab.SetSize(contentWidth, contentHeight)
	m.forecastTab.SetSize(contentWidth, contentHeight)
	m.journalTab.SetSize(contentWidth, contentHeight)
	m.teamTab.SetSize(contentWidth, contentHeight)
	m.analyticsTab.SetSize(contentWidth, contentHeight)
	m.activitiesTab.SetSize(contentWidth, contentHeight)
	m.poetryTab.SetSize(contentWidth, contentHeight)
	m.settingsTab.SetSize(contentWidth, contentHeight)
}

func (m Model) fetchWeather() tea.Cmd {
	client := m.deps.Weather
	city := m.city
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
		defer cancel()
		w, err := client.Current(ctx, city)
		if err != nil {
			return weatherErrMsg{err: err}
		}
		return weatherMsg{weather: w}
	}
}

func (m Model) fetchForecast() tea.Cmd {
	client := m.deps.Weather
	city := m.city
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
		defer cancel()
		f, err := client.Forecast(ctx, city, constants.DefaultForecastDays)
		if err != nil {
			return forecastErrMsg{err: err}
		}
		return forecastMsg{forecast: f}
	}
}

func (m Model) fetchTeam(force bool) tea.Cmd {
	svc := m.deps.Team
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
		defer cancel()

		var (
			cities []models.TeamCity
			err    error
		)
		if force {
			cities, err = svc.ForceRefresh(ctx)
		} else {
			cities = svc.Cities(ctx)
		}
		feed := svc.ActivityFeed(ctx)
		count, age, valid := svc.CacheInfo()
		return teamMsg{cities: cities, feed: feed, count: count, age: age, valid: valid, err: err}
	}
}

func (m Model) fetchSuggestions(category, duration, equipment string) tea.Cmd {
	svc := m.deps.Activities
	w := m.current
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
		defer cancel()
		list := svc.Suggest(ctx, w, activitysvc.Filters{
			Category:  category,
			Duration:  duration,
			Equipment: equipment,
		})
		return suggestionsMsg{activities: list}
	}
}

func (m Model) fetchPoem(style constants.PoemStyle) tea.Cmd {
	svc := m.deps.AI
	w := m.current
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
		defer cancel()
		return poemMsg{poem: svc.Poem(ctx, w, style)}
	}
}

func (m Model) fetchInsight(w *models.WeatherData) tea.Cmd {
	svc := m.deps.AI
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
		defer cancel()
		return insightMsg{text: svc.Insight(ctx, w)}
	}
}

// computeAnalysis rebuilds the similarity board from the latest team sync
// plus the user's own city when its weather is already in hand.
func (m Model) computeAnalysis(cities []models.TeamCity) tea.Cmd {
	current := m.current
	return func() tea.Msg {
		profiles := make([]models.WeatherProfile, 0, len(cities)+1)
		for _, tc := range cities {
			profiles = append(profiles, models.ProfileFromTeamCity(tc))
		}
		if current != nil {
			profiles = append(profiles, models.ProfileFromWeather(*current))
		}

		msg := analysisMsg{profiles: profiles}
		if len(profiles) < 2 {
			return msg
		}
		msg.matrix = analyticssvc.SimilarityMatrix(profiles)
		clusters, err := analyticssvc.Clusters(profiles)
		if err != nil {
			logger.Warn("clustering failed", "error", err)
		} else {
			msg.clusters = clusters
		}
		if a, b, ok := closestPair(profiles, msg.matrix); ok {
			insight := analyticssvc.CompareCities(a, b, profiles)
			msg.insight = &insight
		}
		return msg
	}
}

// closestPair scans the upper triangle of the similarity matrix for the
// best-matched pair of distinct cities.
func closestPair(profiles []models.WeatherProfile, matrix [][]float64) (a, b string, ok bool) {
	best := -1.0
	for i := range matrix {
		for j := i + 1; j < len(matrix[i]); j++ {
			if matrix[i][j] > best {
				best = matrix[i][j]
				a, b = profiles[i].CityName, profiles[j].CityName
				ok = true
			}
		}
	}
	return a, b, ok
}
