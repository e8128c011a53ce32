package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	apperrors "github.com/ehunter/skycast/internal/errors"
)

const geocodeJSON = `{
  "status": "OK",
  "results": [
    {
      "formatted_address": "London, UK",
      "place_id": "ChIJdd4hrwug2EcRmSrV3Vo6llI",
      "types": ["locality", "political"],
      "geometry": {"location": {"lat": 51.5073509, "lng": -0.1277583}}
    }
  ]
}`

func mustQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("unparseable URL %q: %v", raw, err)
	}
	return u.Query()
}

func TestStaticMapURLDefaults(t *testing.T) {
	q := mustQuery(t, New(Config{}).StaticMapURL(51.5, -0.12, MapOptions{}))

	want := map[string]string{
		"center":  "51.5,-0.12",
		"zoom":    "13",
		"size":    "400x300",
		"maptype": "roadmap",
		"markers": "51.5,-0.12",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query %s = %q, want %q", k, got, v)
		}
	}
	if q.Has("key") {
		t.Error("keyless client put a key parameter in the URL")
	}
}

func TestStaticMapURLOverrides(t *testing.T) {
	c := New(Config{APIKey: "k123"})
	q := mustQuery(t, c.StaticMapURL(51.5, -0.12, MapOptions{
		Zoom:    6,
		Size:    "640x480",
		Markers: []Marker{{Lat: 1, Lon: 2}, {Lat: 3, Lon: 4}},
	}))

	if q.Get("zoom") != "6" || q.Get("size") != "640x480" {
		t.Errorf("zoom/size = %q/%q, want 6/640x480", q.Get("zoom"), q.Get("size"))
	}
	if got := q.Get("markers"); got != "1,2|3,4" {
		t.Errorf("markers = %q, want \"1,2|3,4\"", got)
	}
	if q.Get("key") != "k123" {
		t.Errorf("key = %q, want k123", q.Get("key"))
	}
}

func TestGeocodeParsesAndCaches(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if got := r.URL.Query().Get("address"); got != "London" {
			t.Errorf("address param = %q, want London", got)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Error("request missing API key")
		}
		w.Write([]byte(geocodeJSON))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	got, err := c.Geocode(context.Background(), "London")
	if err != nil {
		t.Fatalf("Geocode() error: %v", err)
	}
	if got.Address != "London, UK" {
		t.Errorf("Address = %q, want \"London, UK\"", got.Address)
	}
	if got.Lat != 51.5073509 || got.Lon != -0.1277583 {
		t.Errorf("coordinates = %v,%v, want 51.5073509,-0.1277583", got.Lat, got.Lon)
	}
	if got.PlaceID == "" {
		t.Error("PlaceID is empty")
	}

	if _, err := c.Geocode(context.Background(), "London"); err != nil {
		t.Fatalf("cached Geocode() error: %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("geocode hit the network %d times, want 1", calls.Load())
	}
}

func TestGeocodeStatusErrors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		notFound bool
		contains string
	}{
		{
			name:     "zero results",
			body:     `{"status":"ZERO_RESULTS","results":[]}`,
			notFound: true,
		},
		{
			name:     "request denied",
			body:     `{"status":"REQUEST_DENIED","error_message":"the provided key is invalid"}`,
			contains: "the provided key is invalid",
		},
		{
			name:     "ok with no results",
			body:     `{"status":"OK","results":[]}`,
			notFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := New(Config{APIKey: "k", BaseURL: srv.URL})
			_, err := c.Geocode(context.Background(), "Nowhere")
			if err == nil {
				t.Fatal("Geocode() returned nil error")
			}
			if apperrors.IsNotFound(err) != tt.notFound {
				t.Errorf("IsNotFound(%v) = %v, want %v", err, apperrors.IsNotFound(err), tt.notFound)
			}
			if tt.contains != "" && !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("error %q does not mention %q", err, tt.contains)
			}
		})
	}
}

func TestReverseGeocodePassesCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("latlng"); got != "51.5,-0.12" {
			t.Errorf("latlng param = %q, want \"51.5,-0.12\"", got)
		}
		w.Write([]byte(geocodeJSON))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	got, err := c.ReverseGeocode(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("ReverseGeocode() error: %v", err)
	}
	if got.Address != "London, UK" {
		t.Errorf("Address = %q, want \"London, UK\"", got.Address)
	}
}

func TestNoKeyRefusesNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	if _, err := c.Geocode(context.Background(), "London"); !errors.Is(err, ErrNoKey) {
		t.Errorf("Geocode() error = %v, want ErrNoKey", err)
	}
	out := filepath.Join(t.TempDir(), "map.png")
	if err := c.SaveStaticMap(context.Background(), 0, 0, MapOptions{}, out); !errors.Is(err, ErrNoKey) {
		t.Errorf("SaveStaticMap() error = %v, want ErrNoKey", err)
	}
	if calls.Load() != 0 {
		t.Errorf("keyless client made %d network calls", calls.Load())
	}
}

func TestSaveStaticMapWritesImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/staticmap" {
			t.Errorf("request path = %q, want /staticmap", r.URL.Path)
		}
		w.Write([]byte("PNGDATA"))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	out := filepath.Join(t.TempDir(), "map.png")
	if err := c.SaveStaticMap(context.Background(), 51.5, -0.12, MapOptions{}, out); err != nil {
		t.Fatalf("SaveStaticMap() error: %v", err)
	}

	img, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading saved map: %v", err)
	}
	if string(img) != "PNGDATA" {
		t.Errorf("saved map = %q, want the served image bytes", img)
	}
}

func TestRequestsAreRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(geocodeJSON))
	}))
	defer srv.Close()

	c := New(Config{APIKey: "k", BaseURL: srv.URL})
	start := time.Now()
	for _, city := range []string{"London", "Paris", "Oslo"} {
		if _, err := c.Geocode(context.Background(), city); err != nil {
			t.Fatalf("Geocode(%s) error: %v", city, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 2*constants.MapsMinInterval {
		t.Errorf("three calls completed in %v, want at least %v", elapsed, 2*constants.MapsMinInterval)
	}
}
