package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

type TeamListCmd struct{}

func (c *TeamListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	cities := ctx.Team.Cities(reqCtx)
	if len(cities) == 0 {
		fmt.Println("No team cities available. Check the team CSV URL or run 'skycast team refresh'.")
		return nil
	}

	for _, tc := range cities {
		temp := tc.Weather.Temperature
		if ctx.Units == constants.UnitsImperial {
			temp = models.CToF(temp)
		}
		loc := tc.CityName
		if tc.Country != "" {
			loc = fmt.Sprintf("%s, %s", tc.CityName, tc.Country)
		}
		fmt.Printf("  %-16s %-24s %8s  %s\n",
			tc.MemberName, loc, formatTemp(temp, ctx.Units), tc.Weather.Description)
	}
	fmt.Printf("\n%d cities\n", len(cities))
	return nil
}

type TeamRefreshCmd struct{}

func (c *TeamRefreshCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	cities, err := ctx.Team.ForceRefresh(reqCtx)
	if err != nil {
		if len(cities) > 0 {
			fmt.Printf("⚠ Refresh failed, serving %d cached cities.\n", len(cities))
			fmt.Printf("   Error: %v\n", err)
			return nil
		}
		return fmt.Errorf("team refresh failed: %w", err)
	}

	fmt.Printf("✓ Synced %d team cities.\n", len(cities))
	return nil
}

type TeamFeedCmd struct{}

func (c *TeamFeedCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	feed := ctx.Team.ActivityFeed(reqCtx)
	if len(feed) == 0 {
		fmt.Println("No team activity yet.")
		return nil
	}

	for _, a := range feed {
		temp := a.Temperature
		if ctx.Units == constants.UnitsImperial {
			temp = models.CToF(temp)
		}
		fmt.Printf("  %s  %s %s in %s (%s, %s)\n",
			a.Time.Format("15:04"), a.Member, a.Action, a.City,
			a.Weather, formatTemp(temp, ctx.Units))
	}
	return nil
}

type TeamInfoCmd struct{}

func (c *TeamInfoCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	count, age, valid := ctx.Team.CacheInfo()
	fmt.Printf("Cache file:  %s\n", ctx.Config.TeamCachePath())
	fmt.Printf("Source URL:  %s\n", ctx.Config.TeamCSVURL)
	fmt.Printf("Cities:      %d\n", count)
	if count > 0 {
		fmt.Printf("Age:         %s\n", age.Round(time.Second))
	}
	if valid {
		fmt.Printf("Status:      fresh (TTL %s)\n", constants.TeamCacheTTL)
	} else {
		fmt.Printf("Status:      stale, next read will refetch\n")
	}
	return nil
}
