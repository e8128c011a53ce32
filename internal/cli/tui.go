package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ehunter/skycast/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Snapshot the database before the dashboard starts mutating it.
	ctx.PerformAutomaticBackup()

	deps := tui.Deps{
		Store:          ctx.Store,
		Journal:        ctx.Journal,
		Weather:        ctx.Weather,
		Team:           ctx.Team,
		AI:             ctx.AI,
		Activities:     ctx.Activities,
		DefaultCity:    ctx.DefaultCity(),
		MapsConfigured: ctx.Maps.HasKey(),
	}

	p := tea.NewProgram(tui.NewModel(deps), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
