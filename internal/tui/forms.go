package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func newEntryForm(fm *EntryFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title cannot be empty")
					}
					return nil
				}),
			huh.NewText().
				Title("Entry").
				Lines(6).
				Value(&fm.Content),
			huh.NewSelect[string]().
				Title("Mood").
				Options(moodOptions()...).
				Value(&fm.Mood),
		),
	).WithTheme(huh.ThemeDracula())
}

func newSettingsForm(fm *SettingsFormModel) *huh.Form {
	themeOptions := make([]huh.Option[string], 0, len(styles.Themes()))
	for _, t := range styles.Themes() {
		themeOptions = append(themeOptions, huh.NewOption(t, t))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Units").
				Options(
					huh.NewOption("Metric (°C, m/s)", string(constants.UnitsMetric)),
					huh.NewOption("Imperial (°F, mph)", string(constants.UnitsImperial)),
				).
				Value(&fm.Units),
			huh.NewInput().
				Title("Default city").
				Placeholder(constants.DefaultCity).
				Value(&fm.DefaultCity),
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&fm.Theme),
			huh.NewInput().
				Title("Auto refresh (min)").
				Description("0 disables the dashboard refresh timer").
				Value(&fm.AutoRefresh).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if i < 0 {
						return fmt.Errorf("refresh interval cannot be negative")
					}
					return nil
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func moodOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(constants.DefaultMoods))
	for _, mood := range constants.DefaultMoods {
		label := mood
		if e := models.MoodEmoji(mood); e != "" {
			label = e + " " + mood
		}
		opts = append(opts, huh.NewOption(label, mood))
	}
	return opts
}
