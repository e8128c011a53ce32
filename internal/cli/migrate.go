package cli

import (
	"fmt"
)

type MigrateCmd struct {
	Status bool `help:"Show schema versions without applying anything."`
}

func (c *MigrateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	defer ctx.Store.Close()

	runner, err := migrationRunner(ctx.Store)
	if err != nil {
		return err
	}

	if c.Status {
		current, err := runner.GetCurrentVersion()
		if err != nil {
			return fmt.Errorf("failed to get current schema version: %w", err)
		}
		latest, err := runner.GetLatestVersion()
		if err != nil {
			return fmt.Errorf("failed to get latest schema version: %w", err)
		}
		fmt.Printf("Schema version: %d\n", current)
		fmt.Printf("Latest version: %d\n", latest)
		switch {
		case current == latest:
			fmt.Println("Database is up to date.")
		case current < latest:
			fmt.Printf("%d migration(s) pending. Run 'skycast migrate' to apply.\n", latest-current)
		default:
			fmt.Println("Database is newer than this build; upgrade skycast.")
		}
		return nil
	}

	count, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		fmt.Println("No migrations to apply. Database is up to date.")
	} else {
		fmt.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}
