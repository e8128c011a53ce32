package weather

import (
	"strings"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func snapshot() *models.WeatherData {
	return &models.WeatherData{
		City:         "London",
		Country:      "GB",
		Temperature:  22.5,
		FeelsLike:    21.0,
		Humidity:     65,
		WindSpeed:    3.0,
		WindDeg:      315,
		Pressure:     1012,
		Description:  "Clear Sky",
		Icon:         "01d",
		VisibilityKM: 10,
		UVIndex:      4.2,
		Cloudiness:   20,
		Sunrise:      time.Date(2025, 6, 1, 6, 12, 0, 0, time.UTC),
		Sunset:       time.Date(2025, 6, 1, 19, 48, 0, 0, time.UTC),
		Timestamp:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCompass(t *testing.T) {
	tests := []struct {
		deg  int
		want string
	}{
		{0, "N"},
		{45, "NE"},
		{90, "E"},
		{130, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337, "NW"},
		{338, "N"},
		{359, "N"},
		{360, "N"},
	}
	for _, tt := range tests {
		if got := compass(tt.deg); got != tt.want {
			t.Errorf("compass(%d) = %q, want %q", tt.deg, got, tt.want)
		}
	}
}

func TestViewShowsSnapshot(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsMetric, st, 80, 30)
	m.SetWeather(snapshot())

	view := m.View()
	for _, want := range []string{"London, GB", "22.5°C", "feels like 21.0°C", "3.0 m/s NW", "06:12", "19:48"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewImperialUnits(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsImperial, st, 80, 30)
	m.SetWeather(snapshot())

	view := m.View()
	if !strings.Contains(view, "72.5°F") {
		t.Errorf("view missing imperial temperature: %q", view)
	}
	if !strings.Contains(view, "6.7 mph") {
		t.Errorf("view missing imperial wind speed")
	}
}

func TestLoadingThenErrorStates(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsMetric, st, 80, 30)

	if !strings.Contains(m.View(), "fetching current conditions") {
		t.Error("fresh model should render the loading state")
	}

	m.SetError("weather API unreachable")
	if !strings.Contains(m.View(), "weather API unreachable") {
		t.Error("error without data should render the error text")
	}

	// With a snapshot on screen, a later failure keeps the data visible.
	m.SetWeather(snapshot())
	m.SetError("timeout")
	view := m.View()
	if !strings.Contains(view, "London, GB") {
		t.Error("stale snapshot should stay visible after a fetch error")
	}
	if !strings.Contains(view, "showing last data") {
		t.Error("stale-data notice missing")
	}
}

func TestInsightRendered(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsMetric, st, 80, 30)
	m.SetWeather(snapshot())
	m.SetInsight("Perfect day for a walk along the river.")

	if !strings.Contains(m.View(), "Perfect day for a walk") {
		t.Error("insight text missing from view")
	}
}
