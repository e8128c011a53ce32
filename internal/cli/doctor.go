package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ehunter/skycast/internal/backup"
	"github.com/ehunter/skycast/internal/config"
	"github.com/ehunter/skycast/internal/storage/sqlite"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: config file present (defaults cover a missing one)
	if _, err := os.Stat(ctx.ConfigPath); err != nil {
		fmt.Printf("⚠ Config file: MISSING\n")
		fmt.Printf("   %s not found, running on defaults ('skycast init' writes one)\n", ctx.ConfigPath)
	} else {
		fmt.Printf("✓ Config file: OK\n")
	}

	// Check 2: data directory writable
	if err := checkDataDir(ctx.Config); err != nil {
		fmt.Printf("❌ Data directory: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data directory: OK\n")
	}

	// Check 3: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Checks 4+5 need a live connection to read the schema table
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}

		if err := checkMigrationsComplete(ctx); err != nil {
			fmt.Printf("❌ Migrations complete: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Migrations complete: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
		fmt.Printf("⊘ Migrations complete: SKIPPED (database not reachable)\n")
	}

	// Check 6: backups present (warning only, SQLite only)
	if store, ok := ctx.Store.(*sqlite.Store); ok {
		if err := checkBackupsPresent(store); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	} else {
		fmt.Printf("⊘ Backups present: SKIPPED (not a SQLite database)\n")
	}

	// Check 7: data validation
	if dbReachable {
		if err := checkValidation(ctx); err != nil {
			fmt.Printf("❌ Data validation: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Data validation: OK\n")
		}
	} else {
		fmt.Printf("⊘ Data validation: SKIPPED (database not reachable)\n")
	}

	// Check 8: integrations (informational, the app works without them)
	checkIntegrations(ctx)

	// Check 9: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDataDir(cfg *config.Config) error {
	info, err := os.Stat(cfg.DataDir)
	if os.IsNotExist(err) {
		return fmt.Errorf("data directory %s does not exist, run 'skycast init'", cfg.DataDir)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists but is not a directory", cfg.DataDir)
	}
	probe, err := os.CreateTemp(cfg.DataDir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("data directory is not writable: %w", err)
	}
	probe.Close()
	return os.Remove(probe.Name())
}

func checkDBReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return err
	}
	// A version read doubles as a connectivity probe.
	if _, err := runner.GetCurrentVersion(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *Context) error {
	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *Context) error {
	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	currentVersion, err := runner.GetCurrentVersion()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	latestVersion, err := runner.GetLatestVersion()
	if err != nil {
		return fmt.Errorf("failed to get latest schema version: %w", err)
	}

	if currentVersion < latestVersion {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", currentVersion, latestVersion)
	}
	return nil
}

func checkBackupsPresent(store *sqlite.Store) error {
	mgr := backup.NewManager(store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'skycast backup create'")
	}
	return nil
}

func checkValidation(ctx *Context) error {
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	entries, err := ctx.Store.GetAllEntries()
	if err != nil {
		return fmt.Errorf("failed to get journal entries: %w", err)
	}

	entryIDs := make(map[string]bool)
	for _, entry := range entries {
		if entryIDs[entry.ID] {
			return fmt.Errorf("duplicate journal entry ID found: %s", entry.ID)
		}
		entryIDs[entry.ID] = true
	}
	return nil
}

func checkIntegrations(ctx *Context) {
	if ctx.Weather.Offline() {
		fmt.Printf("○ OpenWeather key: not set (sample data mode)\n")
	} else {
		fmt.Printf("✓ OpenWeather key: OK\n")
	}
	if ctx.AI.Available() {
		fmt.Printf("✓ AI provider: %s\n", ctx.AI.DriverName())
	} else {
		fmt.Printf("○ AI provider: not set (canned poems and insights)\n")
	}
	if ctx.Maps.HasKey() {
		fmt.Printf("✓ Maps key: OK\n")
	} else {
		fmt.Printf("○ Maps key: not set (map command disabled)\n")
	}
}

func checkClockTimezone() error {
	now := time.Now()

	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		// This might be intentional, so just note it
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
