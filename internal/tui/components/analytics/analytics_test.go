package analytics

import (
	"strings"
	"testing"

	"github.com/ehunter/skycast/internal/models"
	"github.com/ehunter/skycast/internal/tui/styles"
)

func fixture() ([]models.WeatherProfile, [][]float64) {
	profiles := []models.WeatherProfile{
		{CityName: "Paris, FR"},
		{CityName: "Berlin, DE"},
		{CityName: "Reykjavik, IS"},
	}
	matrix := [][]float64{
		{1, 0.82, 0.31},
		{0.82, 1, 0.45},
		{0.31, 0.45, 1},
	}
	return profiles, matrix
}

func TestHeatmapRendersCitiesAndScores(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 100, 30)

	profiles, matrix := fixture()
	m.SetAnalysis(profiles, matrix, nil)

	view := m.View()
	for _, want := range []string{"City similarity", "Paris", "Berlin", "Reykja", "100", "82", "31"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestClustersGrouped(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 100, 30)

	profiles, matrix := fixture()
	clusters := []models.ClusterResult{
		{CityName: "Paris, FR", Cluster: 0, Name: "Mild & Damp", Emoji: "🌦️"},
		{CityName: "Berlin, DE", Cluster: 0, Name: "Mild & Damp", Emoji: "🌦️"},
		{CityName: "Reykjavik, IS", Cluster: 1, Name: "Cold & Windy", Emoji: "🌬️"},
	}
	m.SetAnalysis(profiles, matrix, clusters)

	view := m.View()
	if !strings.Contains(view, "Weather patterns") {
		t.Fatal("cluster section missing")
	}
	if !strings.Contains(view, "Mild & Damp: Paris, FR, Berlin, DE") {
		t.Errorf("cluster grouping wrong:\n%s", view)
	}
	if !strings.Contains(view, "Cold & Windy: Reykjavik, IS") {
		t.Error("singleton cluster missing")
	}
}

func TestInsightLine(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 100, 30)

	profiles, matrix := fixture()
	m.SetAnalysis(profiles, matrix, nil)
	m.SetInsight(models.SimilarityInsight{
		CityA:          "Paris, FR",
		CityB:          "Berlin, DE",
		Score:          82,
		TopFactors:     []string{"temperature", "humidity"},
		Recommendation: "Nearly twin skies — great day for a shared outdoor call.",
	})

	view := m.View()
	if !strings.Contains(view, "Closest pair: Paris, FR ↔ Berlin, DE at 82%") {
		t.Errorf("insight headline missing:\n%s", view)
	}
	if !strings.Contains(view, "driven by temperature, humidity") {
		t.Error("top factors missing")
	}
}

func TestTooFewCities(t *testing.T) {
	st := styles.NewSet(styles.PaletteFor("midnight"))
	m := New(st, 100, 30)
	m.SetAnalysis([]models.WeatherProfile{{CityName: "Paris"}}, [][]float64{{1}}, nil)

	if !strings.Contains(m.View(), "Need at least two cities") {
		t.Error("small-team fallback text missing")
	}
}

func TestShortName(t *testing.T) {
	if got := shortName("Reykjavik, IS", 6); got != "Reykja" {
		t.Errorf("shortName = %q", got)
	}
	if got := shortName("Oslo, NO", 6); got != "Oslo" {
		t.Errorf("shortName should drop country suffix, got %q", got)
	}
}
