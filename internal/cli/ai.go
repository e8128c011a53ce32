package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ehunter/skycast/internal/activities"
	"github.com/ehunter/skycast/internal/constants"
)

type PoemCmd struct {
	City  []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
	Style string   `short:"s" help:"Poem form." default:"haiku" enum:"haiku,limerick,free_verse,sonnet"`
}

func (c *PoemCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
	defer cancel()

	w, err := ctx.Weather.Current(reqCtx, city)
	if err != nil {
		return fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}

	poem := ctx.AI.Poem(reqCtx, w, constants.PoemStyle(c.Style))
	fmt.Printf("%s  %s — %s\n\n", w.Emoji(), w.Location(), c.Style)
	fmt.Println(poem.Text)
	if poem.Fallback && ctx.AI.Available() {
		fmt.Println("\n(generation failed, this one is from the tin)")
	}
	return nil
}

type InsightCmd struct {
	City []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
}

func (c *InsightCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if !ctx.AI.Available() {
		return fmt.Errorf("no AI provider configured; set a Gemini or OpenAI key with 'skycast keys set'")
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
	defer cancel()

	w, err := ctx.Weather.Current(reqCtx, city)
	if err != nil {
		return fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}

	insight := ctx.AI.Insight(reqCtx, w)
	if insight == "" {
		return fmt.Errorf("the %s driver returned no insight", ctx.AI.DriverName())
	}
	fmt.Printf("%s  %s\n\n%s\n", w.Emoji(), w.Location(), insight)
	return nil
}

type SuggestCmd struct {
	City      []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
	Category  string   `short:"c" help:"Filter by category." enum:",outdoor_adventures,indoor_activities,weather_specific,social_activities" default:""`
	Duration  string   `short:"d" help:"Filter by time commitment." enum:",short,medium,long" default:""`
	Equipment string   `short:"e" help:"Filter by gear level." enum:",none,basic,advanced" default:""`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.AIRequestTimeout)
	defer cancel()

	w, err := ctx.Weather.Current(reqCtx, city)
	if err != nil {
		return fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}

	suggestions := ctx.Activities.Suggest(reqCtx, w, activities.Filters{
		Category:  c.Category,
		Duration:  c.Duration,
		Equipment: c.Equipment,
	})
	if len(suggestions) == 0 {
		fmt.Println("Nothing matches those filters.")
		return nil
	}

	fmt.Printf("%s  %s, %s — try one of these:\n\n",
		w.Emoji(), w.Location(), formatTemp(w.TempIn(ctx.Units), ctx.Units))
	for _, a := range suggestions {
		fmt.Printf("  %-24s %s\n", a.Name, categoryLabel(a.Category))
		if a.Description != "" {
			fmt.Printf("      %s\n", a.Description)
		}
	}
	return nil
}

// categoryLabel renders "outdoor_adventures" as "outdoor adventures".
func categoryLabel(category string) string {
	return strings.ReplaceAll(category, "_", " ")
}
