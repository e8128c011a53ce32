package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	activitysvc "github.com/ehunter/skycast/internal/activities"
	aisvc "github.com/ehunter/skycast/internal/ai"
	"github.com/ehunter/skycast/internal/constants"
	journalsvc "github.com/ehunter/skycast/internal/journal"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/storage"
	teamsvc "github.com/ehunter/skycast/internal/team"
	"github.com/ehunter/skycast/internal/tui/components/activities"
	"github.com/ehunter/skycast/internal/tui/components/analytics"
	"github.com/ehunter/skycast/internal/tui/components/forecast"
	"github.com/ehunter/skycast/internal/tui/components/journal"
	"github.com/ehunter/skycast/internal/tui/components/poetry"
	"github.com/ehunter/skycast/internal/tui/components/settings"
	"github.com/ehunter/skycast/internal/tui/components/team"
	"github.com/ehunter/skycast/internal/tui/components/weather"
	"github.com/ehunter/skycast/internal/tui/styles"
	"github.com/ehunter/skycast/internal/tui/timer"
	weathersvc "github.com/ehunter/skycast/internal/weather"
)

// Deps carries the services the dashboard drives. Everything is built in
// main so the TUI never has to know about keyrings or DSNs.
type Deps struct {
	Store          storage.Provider
	Journal        *journalsvc.Service
	Weather        *weathersvc.Client
	Team           *teamsvc.Service
	AI             *aisvc.Service
	Activities     *activitysvc.Service
	DefaultCity    string
	MapsConfigured bool
}

type EntryFormModel struct {
	Title   string
	Content string
	Mood    string
}

type SettingsFormModel struct {
	Units       string
	DefaultCity string
	Theme       string
	AutoRefresh string
}

type Model struct {
	deps   Deps
	state  constants.SessionState
	keys   KeyMap
	help   help.Model
	styles styles.Set
	timers *timer.Manager

	weatherTab    weather.Model
	forecastTab   forecast.Model
	journalTab    journal.Model
	teamTab       team.Model
	analyticsTab  analytics.Model
	activitiesTab activities.Model
	poetryTab     poetry.Model
	settingsTab   settings.Model

	form          *huh.Form
	entryForm     *EntryFormModel
	settingsForm  *SettingsFormModel
	editingEntry  *models.JournalEntry
	entryToDelete *models.JournalEntry

	settings models.Settings
	city     string
	current  *models.WeatherData
	quitting bool
	width    int
	height   int
}

func NewModel(deps Deps) Model {
	sett, err := deps.Store.GetSettings()
	if err != nil {
		sett = models.DefaultSettings()
	}

	st := styles.NewSet(styles.PaletteFor(sett.Theme))
	units := constants.Units(sett.Units)

	city := sett.DefaultCity
	if city == "" {
		city = deps.DefaultCity
	}
	if city == "" {
		city = constants.DefaultCity
	}

	journalTab := journal.New(deps.Journal.All(), st, 0, 0)
	journalTab.SetStats(deps.Journal.Stats())

	settingsTab := settings.New(sett, st, 0, 0)
	aiDriver := ""
	if deps.AI.Available() {
		aiDriver = deps.AI.DriverName()
	}
	settingsTab.SetIntegrations(!deps.Weather.Offline(), aiDriver, deps.MapsConfigured)

	return Model{
		deps:          deps,
		state:         constants.StateWeather,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		styles:        st,
		timers:        timer.NewManager(),
		weatherTab:    weather.New(units, st, 0, 0),
		forecastTab:   forecast.New(units, st, 0, 0),
		journalTab:    journalTab,
		teamTab:       team.New(units, st, 0, 0),
		analyticsTab:  analytics.New(st, 0, 0),
		activitiesTab: activities.New(st, 0, 0),
		poetryTab:     poetry.New(st, 0, 0),
		settingsTab:   settingsTab,
		settings:      sett,
		city:          city,
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateWeather, constants.StateForecast, constants.StateAnalytics:
		keys = append(keys, m.keys.Refresh)
	case constants.StateJournal:
		keys = append(keys, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case constants.StateTeam:
		keys = append(keys, m.keys.Refresh)
	case constants.StateActivities:
		keys = append(keys, m.keys.Category, m.keys.Duration, m.keys.Gear)
	case constants.StatePoetry:
		keys = append(keys, m.keys.Style, m.keys.NewPoem)
	case constants.StateSettings:
		keys = append(keys, m.keys.Edit)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Refresh, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter}

	var actions []key.Binding
	switch m.state {
	case constants.StateJournal:
		actions = []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete}
	case constants.StateActivities:
		actions = []key.Binding{m.keys.Category, m.keys.Duration, m.keys.Gear}
	case constants.StatePoetry:
		actions = []key.Binding{m.keys.Style, m.keys.NewPoem}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Edit}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.weatherTab.Init(),
		m.fetchWeather(),
		m.fetchForecast(),
		m.fetchTeam(false),
	}
	if m.settings.AutoRefreshMin > 0 {
		every := time.Duration(m.settings.AutoRefreshMin) * time.Minute
		cmds = append(cmds, m.timers.Start(refreshTimerName, every, func() tea.Msg { return autoRefreshMsg{} }))
	}
	return tea.Batch(cmds...)
}
