package forecast

import (
	"strings"
	"testing"
	"time"

	"github.com/ehunter/skycast/internal/constants"
	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func fixture() *models.Forecast {
	// 2025-06-02 is a Monday.
	day1 := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	points := []models.ForecastPoint{
		{Time: day1.Add(6 * time.Hour), Temperature: 12, Description: "clear sky", Icon: "01d"},
		{Time: day1.Add(12 * time.Hour), Temperature: 21, Description: "clear sky", Icon: "01d"},
		{Time: day1.Add(18 * time.Hour), Temperature: 16, Description: "few clouds", Icon: "02d"},
		{Time: day2.Add(12 * time.Hour), Temperature: 24, Description: "light rain", Icon: "10d"},
	}
	return &models.Forecast{City: "London", Country: "GB", Points: points}
}

func TestViewShowsChartAndDayCards(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsMetric, st, 100, 40)
	m.SetForecast(fixture())

	view := m.View()
	for _, want := range []string{
		"5-day forecast — London, GB",
		"3-hourly temperature (°C)",
		"Mon Jun 2",
		"Tue Jun 3",
		"21° / 12°",
		"light rain",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestViewConvertsToImperial(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsImperial, st, 100, 40)
	m.SetForecast(fixture())

	view := m.View()
	if !strings.Contains(view, "3-hourly temperature (°F)") {
		t.Error("chart caption should carry °F")
	}
	// 21°C -> 69.8°F rendered as 70°, 12°C -> 53.6°F rendered as 54°.
	if !strings.Contains(view, "70° / 54°") {
		t.Errorf("day card not converted:\n%s", view)
	}
}

func TestLoadingAndEmptyStates(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(constants.UnitsMetric, st, 80, 20)

	if !strings.Contains(m.View(), "loading forecast") {
		t.Error("fresh model should render the loading state")
	}

	m.SetError("forecast API unreachable")
	if !strings.Contains(m.View(), "forecast API unreachable") {
		t.Error("error without data should render the error text")
	}
}

func TestDayTitleFallsBackOnBadDate(t *testing.T) {
	if got := dayTitle("not-a-date"); got != "not-a-date" {
		t.Errorf("dayTitle fallback = %q", got)
	}
	if got := dayTitle("2025-06-02"); got != "Mon Jun 2" {
		t.Errorf("dayTitle = %q, want Mon Jun 2", got)
	}
}
