// Package maps wraps the Google Maps web APIs behind the map tab and the
// map command: geocoding, reverse geocoding, and static map rendering.
// Calls are rate limited client side and geocode lookups are cached for an
// hour. Without an API key the client still builds static map URLs but
// refuses network calls with ErrNoKey.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ehunter/skycast/internal/constants"
	apperrors "github.com/ehunter/skycast/internal/errors"
	"github.com/ehunter/skycast/internal/logger"
)

// ErrNoKey is returned for any operation that needs the network when no
// Google Maps API key is configured.
var ErrNoKey = errors.New("google maps API key not configured")

// GeocodeResult is one resolved location.
type GeocodeResult struct {
	Address string   `json:"address"`
	Lat     float64  `json:"lat"`
	Lon     float64  `json:"lon"`
	PlaceID string   `json:"place_id"`
	Types   []string `json:"types,omitempty"`
}

// Marker is one pin on a static map.
type Marker struct {
	Lat float64
	Lon float64
}

// MapOptions adjust a static map render. Zero values pick the defaults:
// zoom 13, 400x300, roadmap, one marker at the center.
type MapOptions struct {
	Zoom    int
	Size    string // "WIDTHxHEIGHT"
	MapType string
	Markers []Marker
}

// Config carries the client settings. BaseURL is overridable for tests.
type Config struct {
	APIKey  string
	BaseURL string
}

type geocodeEntry struct {
	result   GeocodeResult
	storedAt time.Time
}

// Client talks to the Maps APIs. Safe for concurrent use.
type Client struct {
	key     string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter

	mu    sync.Mutex
	cache map[string]geocodeEntry
}

// New builds a client. A missing key is allowed and only logged; URL
// building keeps working without one.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = constants.MapsBaseURL
	}
	if cfg.APIKey == "" {
		logger.Warn("google maps API key not configured, map features limited")
	}
	return &Client{
		key:     cfg.APIKey,
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: constants.WeatherRequestTimeout},
		limiter: rate.NewLimiter(rate.Every(constants.MapsMinInterval), 1),
		cache:   make(map[string]geocodeEntry),
	}
}

// HasKey reports whether network-backed map features are available.
func (c *Client) HasKey() bool { return c.key != "" }

// StaticMapURL builds the image URL for a map centered on the coordinates.
// The URL is built with or without a key so it can always be displayed.
func (c *Client) StaticMapURL(lat, lon float64, opts MapOptions) string {
	zoom := opts.Zoom
	if zoom <= 0 {
		zoom = constants.MapDefaultZoom
	}
	size := opts.Size
	if size == "" {
		size = constants.MapDefaultSize
	}
	mapType := opts.MapType
	if mapType == "" {
		mapType = "roadmap"
	}
	markers := opts.Markers
	if len(markers) == 0 {
		markers = []Marker{{Lat: lat, Lon: lon}}
	}
	pins := make([]string, len(markers))
	for i, m := range markers {
		pins[i] = coord(m.Lat, m.Lon)
	}

	q := url.Values{}
	q.Set("center", coord(lat, lon))
	q.Set("zoom", strconv.Itoa(zoom))
	q.Set("size", size)
	q.Set("maptype", mapType)
	q.Set("markers", strings.Join(pins, "|"))
	if c.key != "" {
		q.Set("key", c.key)
	}
	return c.baseURL + "/staticmap?" + q.Encode()
}

// Geocode resolves an address or city name to coordinates. Unknown places
// return ErrNotFound.
func (c *Client) Geocode(ctx context.Context, address string) (*GeocodeResult, error) {
	key := "geocode_" + strings.ToLower(strings.TrimSpace(address))
	if hit := c.cached(key); hit != nil {
		return hit, nil
	}

	var resp geocodeResponse
	if err := c.getJSON(ctx, "geocode/json", url.Values{"address": {address}}, &resp); err != nil {
		return nil, err
	}
	res, err := resp.first()
	if err != nil {
		return nil, err
	}
	c.store(key, *res)
	return res, nil
}

// ReverseGeocode resolves coordinates to the nearest address.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*GeocodeResult, error) {
	key := "reverse_" + coord(lat, lon)
	if hit := c.cached(key); hit != nil {
		return hit, nil
	}

	var resp geocodeResponse
	if err := c.getJSON(ctx, "geocode/json", url.Values{"latlng": {coord(lat, lon)}}, &resp); err != nil {
		return nil, err
	}
	res, err := resp.first()
	if err != nil {
		return nil, err
	}
	c.store(key, *res)
	return res, nil
}

// SaveStaticMap fetches the rendered map image and writes it to path.
func (c *Client) SaveStaticMap(ctx context.Context, lat, lon float64, opts MapOptions, path string) error {
	if c.key == "" {
		return ErrNoKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to rate limit maps request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.StaticMapURL(lat, lon, opts), nil)
	if err != nil {
		return fmt.Errorf("failed to build static map request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("static map request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("static map request returned status %d", resp.StatusCode)
	}

	img, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read static map: %w", err)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("failed to write static map: %w", err)
	}
	logger.Info("saved static map", "path", path, "bytes", len(img))
	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out *geocodeResponse) error {
	if c.key == "" {
		logger.Info("skipping maps request, no API key", "endpoint", endpoint)
		return ErrNoKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("failed to rate limit maps request: %w", err)
	}

	q.Set("key", c.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build maps request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("maps request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("maps request returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode maps response: %w", err)
	}
	return nil
}

func (c *Client) cached(key string) *GeocodeResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache[key]
	if !ok || time.Since(e.storedAt) >= constants.MapsCacheTTL {
		return nil
	}
	res := e.result
	return &res
}

func (c *Client) store(key string, res GeocodeResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[key] = geocodeEntry{result: res, storedAt: time.Now()}
}

type geocodeResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		FormattedAddress string   `json:"formatted_address"`
		PlaceID          string   `json:"place_id"`
		Types            []string `json:"types"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

func (r *geocodeResponse) first() (*GeocodeResult, error) {
	switch r.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, apperrors.ErrNotFound
	default:
		if r.ErrorMessage != "" {
			return nil, fmt.Errorf("maps API error: %s (%s)", r.Status, r.ErrorMessage)
		}
		return nil, fmt.Errorf("maps API error: %s", r.Status)
	}
	if len(r.Results) == 0 {
		return nil, apperrors.ErrNotFound
	}

	res := r.Results[0]
	return &GeocodeResult{
		Address: res.FormattedAddress,
		Lat:     res.Geometry.Location.Lat,
		Lon:     res.Geometry.Location.Lng,
		PlaceID: res.PlaceID,
		Types:   res.Types,
	}, nil
}

func coord(lat, lon float64) string {
	return strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lon, 'f', -1, 64)
}
