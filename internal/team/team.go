// Package team syncs the shared team weather export: a CSV published on
// GitHub, fetched at most once per 15-minute window and mirrored to a JSON
// cache file so restarts within the window stay offline.
package team

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
)

// Service owns the team city list. All access goes through one mutex; the
// observable contract is a 15-minute TTL with exactly one fetch per miss and
// stale-cache fallback on any failure.
type Service struct {
	url       string
	cachePath string
	http      *http.Client

	mu       sync.Mutex
	cities   []models.TeamCity
	lastSync time.Time
}

// New builds a service and primes it from the cache file when one exists.
// An empty url selects the shared team export.
func New(url, cachePath string) *Service {
	if url == "" {
		url = constants.DefaultTeamCSVURL
	}
	s := &Service{
		url:       url,
		cachePath: cachePath,
		http:      &http.Client{Timeout: constants.TeamRequestTimeout},
	}
	s.loadCache()
	return s
}

// Cities returns the team list, fetching the CSV only when the cached copy
// has aged out. Failures never surface: the previous list (possibly empty)
// is returned and the problem is logged.
func (s *Service) Cities(ctx context.Context) []models.TeamCity {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cacheValidLocked() {
		return append([]models.TeamCity(nil), s.cities...)
	}
	if err := s.fetchLocked(ctx); err != nil {
		logger.Error("team sync failed, serving cached data", "cities", len(s.cities), "error", err)
	}
	return append([]models.TeamCity(nil), s.cities...)
}

// ForceRefresh discards the TTL and fetches now. Unlike Cities it reports
// the failure, so the refresh command can show it.
func (s *Service) ForceRefresh(ctx context.Context) ([]models.TeamCity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fetchLocked(ctx); err != nil {
		return append([]models.TeamCity(nil), s.cities...), err
	}
	return append([]models.TeamCity(nil), s.cities...), nil
}

// CacheInfo reports the cached city count, the age of the last sync, and
// whether the cache is still inside its TTL.
func (s *Service) CacheInfo() (count int, age time.Duration, valid bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count = len(s.cities)
	if !s.lastSync.IsZero() {
		age = time.Since(s.lastSync)
	}
	return count, age, s.cacheValidLocked()
}

// ActivityFeed returns the ten most recent member updates, newest first.
// Rows whose timestamps do not parse are skipped.
func (s *Service) ActivityFeed(ctx context.Context) []models.TeamActivity {
	cities := s.Cities(ctx)

	feed := make([]models.TeamActivity, 0, len(cities))
	for _, c := range cities {
		ts, err := parseTimestamp(c.LastUpdated)
		if err != nil {
			logger.Warn("skipping feed row with bad timestamp", "member", c.MemberName, "value", c.LastUpdated)
			continue
		}
		feed = append(feed, models.TeamActivity{
			Member:      c.MemberName,
			City:        c.CityName,
			Action:      "updated weather data",
			Time:        ts,
			Weather:     c.Weather.Description,
			Temperature: c.Weather.Temperature,
		})
	}

	sort.Slice(feed, func(i, j int) bool { return feed[i].Time.After(feed[j].Time) })
	if len(feed) > constants.TeamFeedSize {
		feed = feed[:constants.TeamFeedSize]
	}
	return feed
}

func (s *Service) cacheValidLocked() bool {
	return !s.lastSync.IsZero() && time.Since(s.lastSync) < constants.TeamCacheTTL
}

// fetchLocked performs the single HTTP attempt and replaces the city list
// wholesale on success. Callers hold s.mu.
func (s *Service) fetchLocked(ctx context.Context) error {
	logger.Info("fetching team data", "url", s.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return fmt.Errorf("failed to build team request: %w", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("team fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("team export returned status %d", resp.StatusCode)
	}

	cities, err := parseCSV(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse team export: %w", err)
	}

	s.cities = cities
	s.lastSync = time.Now()
	s.writeCache()

	logger.Info("team sync complete", "cities", len(cities))
	return nil
}

// parseCSV reads the export header-wise, tolerating missing columns and
// keeping the first row per (member, city) pair.
func parseCSV(r io.Reader) ([]models.TeamCity, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	field := func(row []string, names ...string) string {
		for _, n := range names {
			if i, ok := col[n]; ok && i < len(row) {
				return strings.TrimSpace(row[i])
			}
		}
		return ""
	}

	var cities []models.TeamCity
	seen := map[string]bool{}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logger.Warn("skipping malformed team row", "error", err)
			continue
		}

		member := field(row, "member_name")
		if member == "" {
			member = "Unknown Member"
		}
		city := field(row, "city")
		if city == "" {
			city = "Unknown City"
		}

		key := member + "_" + city
		if seen[key] {
			continue
		}
		seen[key] = true

		ts := field(row, "timestamp", "datetime")
		if ts == "" {
			ts = time.Now().Format(constants.TimestampFormat)
		}

		cities = append(cities, models.TeamCity{
			MemberName:  member,
			CityName:    city,
			Country:     field(row, "country"),
			LastUpdated: ts,
			Weather: models.TeamWeather{
				Temperature:   safeFloat(field(row, "temperature")),
				Humidity:      safeFloat(field(row, "humidity")),
				WindSpeed:     safeFloat(field(row, "wind_speed")),
				Description:   field(row, "weather_description", "description"),
				Main:          field(row, "weather_main"),
				Pressure:      safeFloat(field(row, "pressure")),
				FeelsLike:     safeFloat(field(row, "feels_like")),
				Visibility:    safeFloat(field(row, "visibility")),
				WindDirection: safeFloat(field(row, "wind_direction")),
			},
			GitHubUsername: strings.ReplaceAll(strings.ToLower(member), " ", "_"),
		})
	}
	return cities, nil
}

// safeFloat converts best effort; anything unparseable is 0.
func safeFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// parseTimestamp accepts RFC 3339 and the naive ISO form the export uses.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// loadCache primes the city list from disk. A cache written inside the TTL
// counts as a valid sync so restarts stay off the network.
func (s *Service) loadCache() {
	if s.cachePath == "" {
		return
	}
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("failed to read team cache", "path", s.cachePath, "error", err)
		}
		return
	}

	var cache models.TeamCache
	if err := json.Unmarshal(data, &cache); err != nil {
		logger.Warn("discarding unreadable team cache", "path", s.cachePath, "error", err)
		return
	}

	s.cities = cache.Cities
	if ts, err := parseTimestamp(cache.Timestamp); err == nil {
		s.lastSync = ts
		if !s.cacheValidLocked() {
			s.lastSync = time.Time{}
		}
	}
	logger.Debug("loaded team cache", "cities", len(s.cities), "valid", s.cacheValidLocked())
}

// writeCache mirrors the current list to disk, replacing the file wholesale.
func (s *Service) writeCache() {
	if s.cachePath == "" {
		return
	}
	cache := models.TeamCache{
		Cities:    s.cities,
		Timestamp: s.lastSync.Format(constants.TimestampFormat),
	}
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		logger.Warn("failed to encode team cache", "error", err)
		return
	}
	if err := os.WriteFile(s.cachePath, data, 0o644); err != nil {
		logger.Warn("failed to write team cache", "path", s.cachePath, "error", err)
	}
}

// Members returns the distinct member names in first-seen order.
func (s *Service) Members(ctx context.Context) []string {
	cities := s.Cities(ctx)
	return lo.Uniq(lo.Map(cities, func(c models.TeamCity, _ int) string { return c.MemberName }))
}
