package cli

import (
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/ehunter/skycast/internal/activities"
	"github.com/ehunter/skycast/internal/ai"
	"github.com/ehunter/skycast/internal/backup"
	"github.com/ehunter/skycast/internal/config"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/journal"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/maps"
	"github.com/ehunter/skycast/internal/migration"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/storage"
	"github.com/ehunter/skycast/internal/storage/postgres"
	"github.com/ehunter/skycast/internal/storage/sqlite"
	"github.com/ehunter/skycast/internal/team"
	"github.com/ehunter/skycast/internal/weather"
	"github.com/ehunter/skycast/migrations"
)

// Context carries the wired services every command runs against. main builds
// one after the config, storage, and API keys are resolved, so commands never
// touch the keyring or the DSN themselves.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      storage.Provider
	Journal    *journal.Service
	Weather    *weather.Client
	Team       *team.Service
	AI         *ai.Service
	Activities *activities.Service
	Maps       *maps.Client
	Units      constants.Units
}

// DefaultCity resolves the city used when a command gets no CITY argument:
// saved settings first, then the config file, then the built-in fallback.
func (c *Context) DefaultCity() string {
	if sett, err := c.Store.GetSettings(); err == nil && sett.DefaultCity != "" {
		return sett.DefaultCity
	}
	if c.Config != nil && c.Config.DefaultCity != "" {
		return c.Config.DefaultCity
	}
	return constants.DefaultCity
}

// PerformAutomaticBackup snapshots a SQLite database before the TUI takes
// over the terminal. Failures are logged, never fatal; Postgres databases
// have their own backup story.
func (c *Context) PerformAutomaticBackup() {
	store, ok := c.Store.(*sqlite.Store)
	if !ok {
		return
	}
	mgr := backup.NewManager(store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

// migrationRunner builds a schema runner for whichever store backs the
// context. The store must be loaded first so the connection exists.
func migrationRunner(store storage.Provider) (*migration.Runner, error) {
	var (
		db      *sql.DB
		dialect migration.Dialect
	)
	switch s := store.(type) {
	case *sqlite.Store:
		db = s.GetDB()
		dialect = migration.DialectSQLite
	case *postgres.Store:
		db = s.GetDB()
		dialect = migration.DialectPostgres
	default:
		return nil, fmt.Errorf("unsupported storage provider %T", store)
	}
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	subFS, err := fs.Sub(migrations.FS, string(dialect))
	if err != nil {
		return nil, fmt.Errorf("failed to locate %s migrations: %w", dialect, err)
	}
	return migration.NewRunner(db, subFS, dialect), nil
}

func formatTemp(v float64, units constants.Units) string {
	return fmt.Sprintf("%.1f%s", v, models.TempUnit(units))
}

func formatWind(v float64, units constants.Units) string {
	return fmt.Sprintf("%.1f %s", v, models.WindUnit(units))
}
