// Package activities suggests things to do in the current weather. A
// rule-based catalog grouped by weather band is the backbone; an optional
// AI provider layers extra ideas on top, and results are filtered by time
// commitment and gear level, scored for fit, and cached per request shape.
package activities

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
)

const (
	baseScore  = 70.0
	maxAIIdeas = 5
)

// Ideas is the optional enrichment hook. The AI service satisfies it.
type Ideas interface {
	ActivityIdeas(ctx context.Context, w *models.WeatherData, prefs string) (string, error)
}

// Filters narrows a suggestion list. The category filter is strict and may
// leave nothing; duration and equipment fall back to the unfiltered list
// when nothing matches, so a narrow request never comes back empty.
type Filters struct {
	Category  string
	Duration  string // short | medium | long
	Equipment string // none | basic | advanced
}

type cacheEntry struct {
	suggestions []models.Activity
	storedAt    time.Time
}

// Service hands out activity suggestions. Safe for concurrent use.
type Service struct {
	ideas Ideas

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// New builds a service. A nil ideas provider disables AI enrichment; the
// catalog works on its own.
func New(ideas Ideas) *Service {
	return &Service{
		ideas: ideas,
		cache: make(map[string]cacheEntry),
	}
}

// Categories lists the catalog groupings in display order.
func Categories() []constants.ActivityCategory {
	return []constants.ActivityCategory{
		constants.ActivityOutdoor,
		constants.ActivityIndoor,
		constants.ActivityWeather,
		constants.ActivitySocial,
	}
}

// Suggest returns scored suggestions for the given conditions, best fit
// first. Results are cached for 30 minutes per weather/filter combination.
func (s *Service) Suggest(ctx context.Context, w *models.WeatherData, f Filters) []models.Activity {
	if w == nil {
		return nil
	}

	key := cacheKey(w, f)
	if hit, ok := s.cached(key); ok {
		logger.Debug("serving cached activity suggestions", "key", key)
		return hit
	}

	list := catalog(w)
	list = append(list, s.enrich(ctx, w, list)...)

	now := time.Now()
	for i := range list {
		list[i].Score = score(list[i], w, now)
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })

	list = applyFilters(list, f)
	s.store(key, list)
	return list
}

// enrich asks the AI provider for extra ideas. Any failure is logged and
// swallowed; the catalog result stands on its own.
func (s *Service) enrich(ctx context.Context, w *models.WeatherData, have []models.Activity) []models.Activity {
	if s.ideas == nil {
		return nil
	}
	text, err := s.ideas.ActivityIdeas(ctx, w, "")
	if err != nil {
		logger.Debug("activity enrichment unavailable", "error", err)
		return nil
	}
	return parseIdeas(text, w, have)
}

// parseIdeas extracts "Name - reason" lines from the provider's response,
// dropping anything malformed or already in the catalog.
func parseIdeas(text string, w *models.WeatherData, have []models.Activity) []models.Activity {
	seen := make(map[string]bool, len(have))
	for _, a := range have {
		seen[strings.ToLower(a.Name)] = true
	}

	category := catOutdoor
	if rainyCondition(w.Description) || w.Temperature <= 15 {
		category = catIndoor
	}

	var out []models.Activity
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), "-*0123456789. ")
		name, desc, ok := strings.Cut(line, " - ")
		if !ok {
			continue
		}
		name, desc = strings.TrimSpace(name), strings.TrimSpace(desc)
		if name == "" || desc == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, models.Activity{
			Name:        name,
			Category:    category,
			Duration:    durMedium,
			Equipment:   gearBasic,
			Description: desc,
		})
		if len(out) == maxAIIdeas {
			break
		}
	}
	return out
}

// score rates how well one activity fits the conditions, 0 to 100. Outdoor
// and weather-specific activities react to rain, wind, darkness, and season;
// social activities are treated as weather-neutral.
func score(a models.Activity, w *models.WeatherData, at time.Time) float64 {
	s := baseScore
	outdoor := a.Category == catOutdoor || a.Category == catWeather
	indoor := a.Category == catIndoor
	cond := strings.ToLower(w.Description)

	switch {
	case rainyCondition(cond) && outdoor:
		s -= 30
	case rainyCondition(cond) && indoor:
		s += 10
	case strings.Contains(cond, "clear") && outdoor:
		s += 10
	}

	if outdoor {
		if w.WindSpeed > 8 {
			s -= 15
		}
		if w.Temperature >= 18 && w.Temperature <= 26 {
			s += 10
		}
		if h := at.Hour(); h >= 21 || h < 6 {
			s -= 20
		}
		switch at.Month() {
		case time.December, time.January, time.February:
			s -= 5
		}
	} else if indoor {
		switch at.Month() {
		case time.June, time.July, time.August:
			s -= 5
		}
	}

	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

func rainyCondition(description string) bool {
	cond := strings.ToLower(description)
	return strings.Contains(cond, "rain") || strings.Contains(cond, "storm")
}

func applyFilters(list []models.Activity, f Filters) []models.Activity {
	if f.Category != "" {
		list = lo.Filter(list, func(a models.Activity, _ int) bool {
			return strings.EqualFold(a.Category, f.Category)
		})
	}
	if f.Duration != "" {
		if kept := lo.Filter(list, func(a models.Activity, _ int) bool {
			return strings.EqualFold(a.Duration, f.Duration)
		}); len(kept) > 0 {
			list = kept
		}
	}
	if f.Equipment != "" {
		allowed := allowedGear(f.Equipment)
		if kept := lo.Filter(list, func(a models.Activity, _ int) bool {
			return allowed[strings.ToLower(a.Equipment)]
		}); len(kept) > 0 {
			list = kept
		}
	}
	return list
}

// allowedGear widens the equipment filter downward: asking for "basic"
// also accepts no-gear activities, and "advanced" accepts everything.
func allowedGear(filter string) map[string]bool {
	switch strings.ToLower(filter) {
	case gearNone:
		return map[string]bool{gearNone: true}
	case gearBasic:
		return map[string]bool{gearNone: true, gearBasic: true}
	case gearAdvanced:
		return map[string]bool{gearNone: true, gearBasic: true, gearAdvanced: true}
	default:
		return map[string]bool{gearNone: true, gearBasic: true, gearAdvanced: true}
	}
}

func cacheKey(w *models.WeatherData, f Filters) string {
	return fmt.Sprintf("%.1f_%s_%s_%s_%s",
		w.Temperature, strings.ToLower(w.Description), f.Category, f.Duration, f.Equipment)
}

func (s *Service) cached(key string) ([]models.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.cache[key]
	if !ok {
		return nil, false
	}
	if time.Since(e.storedAt) >= constants.ActivityCacheTTL {
		delete(s.cache, key)
		return nil, false
	}
	return append([]models.Activity(nil), e.suggestions...), true
}

// store caches the filtered result and evicts the oldest entry once the
// cache grows past its cap.
func (s *Service) store(key string, list []models.Activity) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[key] = cacheEntry{
		suggestions: append([]models.Activity(nil), list...),
		storedAt:    time.Now(),
	}
	if len(s.cache) <= constants.ActivityCacheMax {
		return
	}

	var oldest string
	var oldestAt time.Time
	for k, e := range s.cache {
		if oldest == "" || e.storedAt.Before(oldestAt) {
			oldest, oldestAt = k, e.storedAt
		}
	}
	delete(s.cache, oldest)
}
