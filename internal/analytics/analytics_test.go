package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/ehunter/skycast/internal/models"
)

func testProfiles() []models.WeatherProfile {
	return []models.WeatherProfile{
		{CityName: "London", Temperature: 11, Humidity: 81, WindSpeed: 4.1, Pressure: 1012, Visibility: 10},
		{CityName: "Cairo", Temperature: 35, Humidity: 20, WindSpeed: 8.0, Pressure: 1008, Visibility: 10},
		{CityName: "Oslo", Temperature: 7, Humidity: 55, WindSpeed: 5.1, Pressure: 1019, Visibility: 10},
		{CityName: "Singapore", Temperature: 31, Humidity: 84, WindSpeed: 2.2, Pressure: 1009, Visibility: 9},
	}
}

func TestSimilarityMatrixShape(t *testing.T) {
	profiles := testProfiles()
	m := SimilarityMatrix(profiles)

	if len(m) != len(profiles) {
		t.Fatalf("matrix has %d rows, want %d", len(m), len(profiles))
	}
	for i := range m {
		if m[i][i] != 1 {
			t.Errorf("m[%d][%d] = %v, want 1", i, i, m[i][i])
		}
		for j := range m {
			if m[i][j] != m[j][i] {
				t.Errorf("matrix not symmetric at (%d,%d): %v vs %v", i, j, m[i][j], m[j][i])
			}
			if m[i][j] < -1.000001 || m[i][j] > 1.000001 {
				t.Errorf("m[%d][%d] = %v outside [-1,1]", i, j, m[i][j])
			}
		}
	}
}

func TestCompareCities(t *testing.T) {
	profiles := []models.WeatherProfile{
		{CityName: "A", Temperature: 20, Humidity: 50, WindSpeed: 5, Pressure: 1013, Visibility: 10},
		{CityName: "B", Temperature: 20, Humidity: 50, WindSpeed: 5, Pressure: 1013, Visibility: 10},
		{CityName: "C", Temperature: -5, Humidity: 90, WindSpeed: 12, Pressure: 985, Visibility: 2},
	}

	t.Run("identical cities score 100", func(t *testing.T) {
		got := CompareCities("A", "B", profiles)
		if math.Abs(got.Score-100) > 1e-6 {
			t.Errorf("Score = %v, want 100", got.Score)
		}
		if !strings.Contains(got.Recommendation, "very similar") {
			t.Errorf("Recommendation = %q", got.Recommendation)
		}
		if len(got.TopFactors) != 2 {
			t.Errorf("TopFactors = %v, want 2 entries", got.TopFactors)
		}
	})

	t.Run("opposite cities read as different", func(t *testing.T) {
		got := CompareCities("A", "C", profiles)
		if got.Score >= 50 {
			t.Errorf("Score = %v, want < 50", got.Score)
		}
		if !strings.Contains(got.Recommendation, "quite different") {
			t.Errorf("Recommendation = %q", got.Recommendation)
		}
	})

	t.Run("unknown city", func(t *testing.T) {
		got := CompareCities("A", "Atlantis", profiles)
		if got.Score != 0 || got.Recommendation != "Cities not found in data" {
			t.Errorf("got %+v", got)
		}
	})
}

func TestClustersAssignEveryProfile(t *testing.T) {
	profiles := testProfiles()
	// Duplicate London: identical vectors must share a cluster.
	profiles = append(profiles, models.WeatherProfile{
		CityName: "London2", Temperature: 11, Humidity: 81, WindSpeed: 4.1, Pressure: 1012, Visibility: 10,
	})

	results, err := Clusters(profiles)
	if err != nil {
		t.Fatalf("Clusters() failed: %v", err)
	}
	if len(results) != len(profiles) {
		t.Fatalf("got %d assignments, want %d", len(results), len(profiles))
	}

	maxID := 5
	if len(profiles) < maxID {
		maxID = len(profiles)
	}
	byCity := map[string]models.ClusterResult{}
	for _, r := range results {
		if r.Cluster < 0 || r.Cluster >= maxID {
			t.Errorf("%s assigned cluster %d, want [0,%d)", r.CityName, r.Cluster, maxID)
		}
		if r.Name == "" || r.Emoji == "" {
			t.Errorf("%s missing label: %+v", r.CityName, r)
		}
		byCity[r.CityName] = r
	}

	if byCity["London"].Cluster != byCity["London2"].Cluster {
		t.Errorf("identical profiles split: %d vs %d", byCity["London"].Cluster, byCity["London2"].Cluster)
	}
}

func TestClustersEmptyInput(t *testing.T) {
	results, err := Clusters(nil)
	if err != nil || results != nil {
		t.Errorf("Clusters(nil) = %v, %v", results, err)
	}
}

func TestRecommendPicksExactMatch(t *testing.T) {
	profiles := []models.WeatherProfile{
		{CityName: "London", Temperature: 20, Humidity: 50, WindSpeed: 5, Pressure: 1013, Visibility: 10},
		{CityName: "Cairo", Temperature: 35, Humidity: 20, WindSpeed: 8, Pressure: 1013, Visibility: 10, IsTeamMember: true, MemberName: "Ana"},
	}

	rec, err := Recommend(profiles, models.Preferences{Temperature: 20, Humidity: 50, WindSpeed: 5})
	if err != nil {
		t.Fatalf("Recommend() failed: %v", err)
	}
	if rec.CityName != "London" {
		t.Errorf("CityName = %q, want London", rec.CityName)
	}
	if rec.MatchPercent < 99 || rec.MatchPercent > 100 {
		t.Errorf("MatchPercent = %v, want ~100", rec.MatchPercent)
	}
	if len(rec.Reasons) != 3 {
		t.Errorf("Reasons = %v, want all three", rec.Reasons)
	}

	if _, err := Recommend(nil, models.Preferences{}); err == nil {
		t.Error("Recommend(nil) returned nil error")
	}
}

func TestRadarNormalization(t *testing.T) {
	p := models.WeatherProfile{
		Temperature: 10, Humidity: 55, WindSpeed: 10, Pressure: 1000, UVIndex: 6, Visibility: 5,
	}
	got := Radar(p)
	want := models.RadarScores{Temperature: 50, Humidity: 55, Wind: 50, Pressure: 50, UV: 50, Visibility: 50}
	if got != want {
		t.Errorf("Radar() = %+v, want %+v", got, want)
	}

	// Out-of-range values clamp to the axis ends.
	extreme := Radar(models.WeatherProfile{Temperature: -40, Visibility: 25})
	if extreme.Temperature != 0 || extreme.Visibility != 100 {
		t.Errorf("clamping failed: %+v", extreme)
	}
}
