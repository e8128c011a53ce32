package cli

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
)

type JournalAddCmd struct {
	Title   string `arg:"" help:"Entry title."`
	Content string `short:"c" help:"Entry body. Reads stdin when '-'."`
	Mood    string `short:"m" help:"Mood tag (free text)." default:"neutral"`
	City    string `help:"Attach a weather snapshot for this city."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	content := c.Content
	if content == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read entry body from stdin: %w", err)
		}
		content = strings.TrimRight(string(raw), "\n")
	}

	entry := models.NewJournalEntry(c.Title, content, c.Mood)

	if c.City != "" {
		reqCtx, cancel := context.WithTimeout(context.Background(), constants.WeatherRequestTimeout)
		defer cancel()
		w, err := ctx.Weather.Current(reqCtx, c.City)
		if err != nil {
			return fmt.Errorf("failed to fetch weather snapshot for %s: %w", c.City, err)
		}
		entry.Weather = map[string]any{
			"city":        w.Location(),
			"temperature": w.Temperature,
			"description": w.Description,
		}
	}

	if !ctx.Journal.Save(entry) {
		return fmt.Errorf("failed to save journal entry")
	}
	fmt.Printf("Added entry: %s (ID: %s)\n", entry.Title, entry.ID)
	return nil
}

type JournalListCmd struct {
	Limit int `short:"n" help:"Show at most N entries (0 = all)." default:"0"`
}

func (c *JournalListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries := ctx.Journal.All()
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}
	printEntries(entries)
	return nil
}

type JournalViewCmd struct {
	ID string `arg:"" help:"Entry id (a unique prefix works)."`
}

func (c *JournalViewCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entry, err := findEntry(ctx, c.ID)
	if err != nil {
		return err
	}

	title := entry.Title
	if e := models.MoodEmoji(entry.Mood); e != "" {
		title = e + " " + title
	}
	fmt.Println(title)
	fmt.Printf("  ID:        %s\n", entry.ID)
	fmt.Printf("  Mood:      %s\n", entry.Mood)
	fmt.Printf("  Timestamp: %s\n", entry.Timestamp)
	if len(entry.Weather) > 0 {
		snapshot, err := json.Marshal(entry.Weather)
		if err == nil {
			fmt.Printf("  Weather:   %s\n", snapshot)
		}
	}
	if entry.Content != "" {
		fmt.Printf("\n%s\n", entry.Content)
	}
	return nil
}

type JournalEditCmd struct {
	ID      string  `arg:"" help:"Entry id (a unique prefix works)."`
	Title   *string `help:"New title."`
	Content *string `short:"c" help:"New body."`
	Mood    *string `short:"m" help:"New mood tag."`
}

func (c *JournalEditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entry, err := findEntry(ctx, c.ID)
	if err != nil {
		return err
	}
	if c.Title == nil && c.Content == nil && c.Mood == nil {
		return fmt.Errorf("nothing to change; pass --title, --content, or --mood")
	}

	if c.Title != nil {
		entry.Title = *c.Title
	}
	if c.Content != nil {
		entry.Content = *c.Content
	}
	if c.Mood != nil {
		entry.Mood = *c.Mood
	}

	if !ctx.Journal.Update(*entry) {
		return fmt.Errorf("failed to update journal entry %s", entry.ID)
	}
	fmt.Printf("Updated entry: %s\n", entry.ID)
	return nil
}

type JournalDeleteCmd struct {
	ID    string `arg:"" help:"Entry id (a unique prefix works)."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entry, err := findEntry(ctx, c.ID)
	if err != nil {
		return err
	}

	if !c.Force {
		fmt.Printf("Delete journal entry %q? [y/N]: ", entry.Title)
		reader := bufio.NewReader(os.Stdin)
		response, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Delete cancelled.")
			return nil
		}
	}

	if !ctx.Journal.Delete(entry.ID) {
		return fmt.Errorf("failed to delete journal entry %s", entry.ID)
	}
	fmt.Printf("Deleted entry: %s\n", entry.ID)
	return nil
}

type JournalSearchCmd struct {
	Query []string `arg:"" help:"Text to find in titles and bodies (case-sensitive)."`
}

func (c *JournalSearchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	entries := ctx.Journal.Search(strings.Join(c.Query, " "))
	printEntries(entries)
	return nil
}

type JournalMoodCmd struct {
	Mood string `arg:"" help:"Mood tag to filter by (exact match)."`
}

func (c *JournalMoodCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	printEntries(ctx.Journal.ByMood(c.Mood))
	return nil
}

type JournalStatsCmd struct{}

func (c *JournalStatsCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	stats := ctx.Journal.Stats()
	fmt.Printf("Entries:       %d\n", stats.Total)
	fmt.Printf("Last 30 days:  %d\n", stats.Recent30d)

	if len(stats.MoodCounts) == 0 {
		return nil
	}

	moods := make([]string, 0, len(stats.MoodCounts))
	for mood := range stats.MoodCounts {
		moods = append(moods, mood)
	}
	sort.Slice(moods, func(i, j int) bool {
		if stats.MoodCounts[moods[i]] != stats.MoodCounts[moods[j]] {
			return stats.MoodCounts[moods[i]] > stats.MoodCounts[moods[j]]
		}
		return moods[i] < moods[j]
	})

	fmt.Println("\nMoods:")
	for _, mood := range moods {
		label := mood
		if e := models.MoodEmoji(mood); e != "" {
			label = e + " " + label
		}
		fmt.Printf("  %-14s %s %d\n", label, strings.Repeat("█", stats.MoodCounts[mood]), stats.MoodCounts[mood])
	}
	return nil
}

type JournalExportCmd struct {
	Format string `help:"Export format (json|csv)." default:"json" enum:"json,csv"`
	Out    string `short:"o" help:"Write to a file instead of stdout."`
}

func (c *JournalExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if c.Out != "" {
		f, err := os.Create(c.Out)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	entries := ctx.Journal.All()
	if err := exportEntries(out, entries, c.Format); err != nil {
		return err
	}
	if c.Out != "" {
		fmt.Printf("Exported %d entries to %s\n", len(entries), c.Out)
	}
	return nil
}

// exportEntries writes the journal in the requested format, newest first,
// matching the order the dashboard shows.
func exportEntries(out io.Writer, entries []models.JournalEntry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode journal export: %w", err)
		}
	case "csv":
		w := csv.NewWriter(out)
		if err := w.Write([]string{"id", "timestamp", "mood", "title", "content"}); err != nil {
			return fmt.Errorf("failed to write export header: %w", err)
		}
		for _, e := range entries {
			if err := w.Write([]string{e.ID, e.Timestamp, e.Mood, e.Title, e.Content}); err != nil {
				return fmt.Errorf("failed to write entry %s: %w", e.ID, err)
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return fmt.Errorf("failed to flush export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	return nil
}

// findEntry resolves an id or unique id prefix to an entry.
func findEntry(ctx *Context, id string) (*models.JournalEntry, error) {
	if entry := ctx.Journal.Get(id); entry != nil {
		return entry, nil
	}

	var matches []models.JournalEntry
	for _, e := range ctx.Journal.All() {
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no journal entry with id %s", id)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("id prefix %s matches %d entries, be more specific", id, len(matches))
	}
}

func printEntries(entries []models.JournalEntry) {
	if len(entries) == 0 {
		fmt.Println("No entries found.")
		return
	}
	for _, e := range entries {
		mood := e.Mood
		if emoji := models.MoodEmoji(e.Mood); emoji != "" {
			mood = emoji
		}
		fmt.Printf("  %s  %s  %-40s %s\n", shortID(e.ID), e.Day(), e.Title, mood)
	}
	fmt.Printf("\n%d entries\n", len(entries))
}

// shortID trims a uuid to its first group, enough to disambiguate a journal.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
