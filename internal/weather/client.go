// Package weather is the OpenWeatherMap client. Calls are single-attempt
// with a 10 second budget; without an API key the client serves
// deterministic sample conditions so the dashboard still renders.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/logger"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/storage"
)

// Config configures a weather client.
type Config struct {
	APIKey  string
	BaseURL string // defaults to the public data/2.5 endpoint
	Offline bool   // force sample data even with a key
	Store   storage.Provider
}

// Client fetches current conditions and forecasts. Successful live fetches
// are recorded to the local weather history when a store is attached.
type Client struct {
	apiKey  string
	baseURL string
	offline bool
	http    *http.Client
	store   storage.Provider
}

// New returns a client; a missing API key switches it to sample mode.
func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.OpenWeatherBaseURL
	}
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		offline: cfg.Offline || cfg.APIKey == "",
		http:    &http.Client{Timeout: constants.WeatherRequestTimeout},
		store:   cfg.Store,
	}
}

// Offline reports whether the client serves sample data.
func (c *Client) Offline() bool { return c.offline }

// Current returns current conditions for a city ("London" or "London,GB").
func (c *Client) Current(ctx context.Context, city string) (*models.WeatherData, error) {
	if c.offline {
		logger.Debug("serving sample weather", "city", city)
		return SampleCurrent(city), nil
	}

	var resp currentResponse
	if err := c.get(ctx, "/weather", url.Values{"q": {city}}, &resp); err != nil {
		return nil, err
	}

	w := resp.toModel()
	c.record(w)
	return w, nil
}

// Forecast returns up to days*8 three-hourly samples for a city, capped at
// the API's 40-point ceiling. days <= 0 means the full five days.
func (c *Client) Forecast(ctx context.Context, city string, days int) (*models.Forecast, error) {
	if days <= 0 {
		days = constants.MaxForecastPoints / constants.ForecastPointsPerDay
	}
	cnt := days * constants.ForecastPointsPerDay
	if cnt > constants.MaxForecastPoints {
		cnt = constants.MaxForecastPoints
	}

	if c.offline {
		logger.Debug("serving sample forecast", "city", city, "points", cnt)
		return SampleForecast(city, cnt), nil
	}

	q := url.Values{"q": {city}, "cnt": {strconv.Itoa(cnt)}}
	var resp forecastResponse
	if err := c.get(ctx, "/forecast", q, &resp); err != nil {
		return nil, err
	}
	return resp.toModel(), nil
}

// get performs one GET against the API. There is no retry: a timeout or bad
// status surfaces immediately and the caller decides what to show.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	query.Set("appid", c.apiKey)
	query.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized:
		return fmt.Errorf("weather service rejected the API key (status %d)", resp.StatusCode)
	case http.StatusNotFound:
		return fmt.Errorf("city not found (status %d)", resp.StatusCode)
	default:
		return fmt.Errorf("weather service returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode weather response: %w", err)
	}
	return nil
}

// record appends a history row, best effort; history is an input to trend
// analysis, never a reason to fail a fetch.
func (c *Client) record(w *models.WeatherData) {
	if c.store == nil {
		return
	}
	rec := models.WeatherRecord{
		Location:    w.Location(),
		Temperature: w.Temperature,
		Humidity:    w.Humidity,
		Pressure:    w.Pressure,
		WindSpeed:   w.WindSpeed,
		Description: w.Description,
		RecordedAt:  w.Timestamp.Format(constants.TimestampFormat),
	}
	if err := c.store.SaveWeather(rec); err != nil {
		logger.Warn("failed to record weather history", "location", rec.Location, "error", err)
	}
}

type currentResponse struct {
	Name  string `json:"name"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Visibility int `json:"visibility"` // meters
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All int `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
}

func (r currentResponse) toModel() *models.WeatherData {
	w := &models.WeatherData{
		City:         r.Name,
		Country:      r.Sys.Country,
		Temperature:  r.Main.Temp,
		FeelsLike:    r.Main.FeelsLike,
		Humidity:     r.Main.Humidity,
		WindSpeed:    r.Wind.Speed,
		WindDeg:      r.Wind.Deg,
		Pressure:     r.Main.Pressure,
		VisibilityKM: float64(r.Visibility) / 1000,
		Cloudiness:   r.Clouds.All,
		Lat:          r.Coord.Lat,
		Lon:          r.Coord.Lon,
		Sunrise:      time.Unix(r.Sys.Sunrise, 0),
		Sunset:       time.Unix(r.Sys.Sunset, 0),
		Timestamp:    time.Unix(r.Dt, 0),
	}
	if len(r.Weather) > 0 {
		w.Description = titleCase(r.Weather[0].Description)
		w.Icon = r.Weather[0].Icon
	}
	// The free tier has no UV endpoint; the axis stays at its zero default.
	return w
}

type forecastResponse struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Pressure  int     `json:"pressure"`
			Humidity  int     `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Pop float64 `json:"pop"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
}

func (r forecastResponse) toModel() *models.Forecast {
	f := &models.Forecast{
		City:    r.City.Name,
		Country: r.City.Country,
		Points:  make([]models.ForecastPoint, 0, len(r.List)),
	}
	for _, item := range r.List {
		p := models.ForecastPoint{
			Time:        time.Unix(item.Dt, 0),
			Temperature: item.Main.Temp,
			FeelsLike:   item.Main.FeelsLike,
			Humidity:    item.Main.Humidity,
			WindSpeed:   item.Wind.Speed,
			Pressure:    item.Main.Pressure,
			POP:         item.Pop,
		}
		if len(item.Weather) > 0 {
			p.Description = titleCase(item.Weather[0].Description)
			p.Icon = item.Weather[0].Icon
		}
		f.Points = append(f.Points, p)
	}
	return f
}

// titleCase uppercases the first letter of each word; OpenWeather sends
// descriptions all-lowercase and the dashboard has always shown them titled.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
