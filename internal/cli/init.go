package cli

import (
	"fmt"
	"os"
)

type InitCmd struct {
	Force bool `short:"f" help:"Rewrite the config file even if one exists."`
}

func (c *InitCmd) Run(ctx *Context) error {
	if _, err := os.Stat(ctx.ConfigPath); err == nil && !c.Force {
		fmt.Printf("Config already exists: %s (use --force to rewrite)\n", ctx.ConfigPath)
	} else {
		if err := ctx.Config.Write(ctx.ConfigPath); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("✓ Wrote config: %s\n", ctx.ConfigPath)
	}

	if err := ctx.Config.EnsureDataDir(); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	fmt.Printf("✓ Data directory: %s\n", ctx.Config.DataDir)

	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	fmt.Printf("✓ Initialized storage: %s\n", ctx.Store.GetConfigPath())
	fmt.Println("\nRun 'skycast' to open the dashboard.")
	return nil
}
