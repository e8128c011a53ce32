package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// Units represents the measurement system used for display
type Units string

// PoemStyle represents the form of a generated weather poem
type PoemStyle string

// ActivityCategory represents the grouping of an activity suggestion
type ActivityCategory string

// ActivityDuration represents the rough time commitment of an activity
type ActivityDuration string

// ActivityEquipment represents the gear level an activity requires
type ActivityEquipment string

const (
	AppName               = "skycast"
	DefaultKeyringService = "skycast"
	DefaultConfigPath     = "~/.config/skycast/skycast.toml"
	DefaultDataDir        = "~/.local/share/skycast"
	Version               = "v0.4.0"

	// DefaultCity is shown on launch when neither settings nor config name one
	DefaultCity = "London"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// TimestampFormat is the ISO-8601 layout used for journal ordering keys
	TimestampFormat = time.RFC3339

	// Database constants
	JournalDBFile  = "journal.db"
	LogDirName     = "logs"
	LogFileName    = "skycast.log"
	DefaultDBPerms = 0o755

	// Units constants
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"

	// Poem styles
	PoemHaiku     PoemStyle = "haiku"
	PoemLimerick  PoemStyle = "limerick"
	PoemFreeVerse PoemStyle = "free_verse"
	PoemSonnet    PoemStyle = "sonnet"

	// Activity categories
	ActivityOutdoor ActivityCategory = "outdoor_adventures"
	ActivityIndoor  ActivityCategory = "indoor_activities"
	ActivityWeather ActivityCategory = "weather_specific"
	ActivitySocial  ActivityCategory = "social_activities"

	// Activity durations
	DurationShort  ActivityDuration = "short"
	DurationMedium ActivityDuration = "medium"
	DurationLong   ActivityDuration = "long"

	// Activity equipment levels
	EquipmentNone     ActivityEquipment = "none"
	EquipmentBasic    ActivityEquipment = "basic"
	EquipmentAdvanced ActivityEquipment = "advanced"
)

// Session states. The first NumMainTabs states map one-to-one onto the
// dashboard tabs; the remaining states are modal overlays.
const (
	StateWeather SessionState = iota
	StateForecast
	StateJournal
	StateTeam
	StateAnalytics
	StateActivities
	StatePoetry
	StateSettings
	StateEntryForm
	StateEditEntry
	StateSettingsForm
	StateConfirmDelete

	NumMainTabs = int(StateSettings) + 1
)
