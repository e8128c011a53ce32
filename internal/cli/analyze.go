package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ehunter/skycast/internal/analytics"
	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

type AnalyzeClustersCmd struct{}

func (c *AnalyzeClustersCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	profiles := teamProfiles(ctx, reqCtx)
	if len(profiles) < 2 {
		fmt.Println("Need at least two team cities to cluster. Run 'skycast team refresh' first.")
		return nil
	}

	results, err := analytics.Clusters(profiles)
	if err != nil {
		return fmt.Errorf("clustering failed: %w", err)
	}

	groups := map[int][]models.ClusterResult{}
	for _, r := range results {
		groups[r.Cluster] = append(groups[r.Cluster], r)
	}
	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		members := groups[id]
		fmt.Printf("%s %s\n", members[0].Emoji, members[0].Name)
		for _, m := range members {
			fmt.Printf("    %s\n", m.CityName)
		}
	}
	return nil
}

type AnalyzeCompareCmd struct {
	CityA string `arg:"" help:"First city."`
	CityB string `arg:"" help:"Second city."`
}

func (c *AnalyzeCompareCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	profiles := teamProfiles(ctx, reqCtx)
	nameA, profiles, err := ensureProfile(ctx, reqCtx, c.CityA, profiles)
	if err != nil {
		return err
	}
	nameB, profiles, err := ensureProfile(ctx, reqCtx, c.CityB, profiles)
	if err != nil {
		return err
	}

	ins := analytics.CompareCities(nameA, nameB, profiles)
	fmt.Printf("%s vs %s: %.0f%% similar\n", ins.CityA, ins.CityB, ins.Score)
	for _, f := range ins.TopFactors {
		fmt.Printf("  · %s\n", f)
	}
	if ins.Recommendation != "" {
		fmt.Printf("\n%s\n", ins.Recommendation)
	}
	return nil
}

type AnalyzeRecommendCmd struct {
	Temp     float64 `short:"t" help:"Preferred temperature (°C)." default:"22"`
	Humidity float64 `help:"Preferred humidity (%)." default:"50"`
	Wind     float64 `help:"Preferred wind speed (m/s)." default:"3"`
}

func (c *AnalyzeRecommendCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	profiles := teamProfiles(ctx, reqCtx)
	if len(profiles) == 0 {
		fmt.Println("No team cities to match against. Run 'skycast team refresh' first.")
		return nil
	}

	rec, err := analytics.Recommend(profiles, models.Preferences{
		Temperature: c.Temp,
		Humidity:    c.Humidity,
		WindSpeed:   c.Wind,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Best match: %s (%.0f%%)\n", rec.CityName, rec.MatchPercent)
	if rec.MemberName != "" {
		fmt.Printf("  Visit %s!\n", rec.MemberName)
	}
	for _, r := range rec.Reasons {
		fmt.Printf("  · %s\n", r)
	}
	return nil
}

type AnalyzePredictCmd struct {
	City  []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
	Hours int      `short:"H" help:"Hours ahead to estimate." default:"6"`
	Days  int      `help:"History window in days to fit against." default:"7"`
}

func (c *AnalyzePredictCmd) Validate() error {
	if c.Hours < 1 || c.Hours > 48 {
		return fmt.Errorf("hours must be between 1 and 48")
	}
	return nil
}

func (c *AnalyzePredictCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	history, err := ctx.Store.WeatherHistory(city, c.Days)
	if err != nil {
		return fmt.Errorf("failed to read weather history: %w", err)
	}
	if len(history) == 0 {
		fmt.Printf("No recorded history for %s. Fetch live weather a few times first.\n", city)
		return nil
	}

	fmt.Printf("Temperature estimate for %s (fit on %d points):\n\n", city, len(history))
	for _, est := range analytics.Forecast(history, c.Hours) {
		temp, low, high := est.Temperature, est.Low, est.High
		if ctx.Units == constants.UnitsImperial {
			temp, low, high = models.CToF(temp), models.CToF(low), models.CToF(high)
		}
		fmt.Printf("  +%2dh  %8s  (%s to %s, confidence %.0f%%)\n",
			est.Hour, formatTemp(temp, ctx.Units),
			formatTemp(low, ctx.Units), formatTemp(high, ctx.Units),
			est.Confidence*100)
	}
	fmt.Println("\nSimple trend fit, not a real forecast; treat it as a conversation starter.")
	return nil
}

type AnalyzeRadarCmd struct {
	City []string `arg:"" optional:"" help:"City name (defaults to the configured city)."`
}

func (c *AnalyzeRadarCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	city := strings.Join(c.City, " ")
	if city == "" {
		city = ctx.DefaultCity()
	}

	reqCtx, cancel := context.WithTimeout(context.Background(), constants.TeamRequestTimeout)
	defer cancel()

	name, profiles, err := ensureProfile(ctx, reqCtx, city, teamProfiles(ctx, reqCtx))
	if err != nil {
		return err
	}
	var profile models.WeatherProfile
	for _, p := range profiles {
		if p.CityName == name {
			profile = p
			break
		}
	}

	scores := analytics.Radar(profile)
	fmt.Printf("Conditions radar for %s:\n\n", name)
	for _, axis := range []struct {
		label string
		value float64
	}{
		{"Temperature", scores.Temperature},
		{"Humidity", scores.Humidity},
		{"Wind", scores.Wind},
		{"Pressure", scores.Pressure},
		{"UV", scores.UV},
		{"Visibility", scores.Visibility},
	} {
		fmt.Printf("  %-12s %-20s %3.0f\n", axis.label, strings.Repeat("█", int(axis.value/5)), axis.value)
	}
	return nil
}

// teamProfiles converts the current team roster into analytics profiles.
// An empty roster is not an error here; commands decide what to tell the user.
func teamProfiles(ctx *Context, reqCtx context.Context) []models.WeatherProfile {
	cities := ctx.Team.Cities(reqCtx)
	profiles := make([]models.WeatherProfile, 0, len(cities))
	for _, tc := range cities {
		profiles = append(profiles, models.ProfileFromTeamCity(tc))
	}
	return profiles
}

// ensureProfile guarantees city has a profile in the set, fetching live
// weather for cities nobody on the team lives in. Returns the canonical
// profile name since a live fetch may expand "berlin" to "Berlin, DE".
func ensureProfile(ctx *Context, reqCtx context.Context, city string, profiles []models.WeatherProfile) (string, []models.WeatherProfile, error) {
	for _, p := range profiles {
		if strings.EqualFold(p.CityName, city) || strings.EqualFold(bareCity(p.CityName), city) {
			return p.CityName, profiles, nil
		}
	}

	w, err := ctx.Weather.Current(reqCtx, city)
	if err != nil {
		return "", profiles, fmt.Errorf("failed to fetch weather for %s: %w", city, err)
	}
	p := models.ProfileFromWeather(*w)
	return p.CityName, append(profiles, p), nil
}

// bareCity strips the ", CC" country suffix live profiles carry.
func bareCity(name string) string {
	if i := strings.IndexByte(name, ','); i > 0 {
		return name[:i]
	}
	return name
}
