package analytics

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"github.com/ehunter/skycast/internal/models"
)

// clusterProfiles are the fixed pattern labels, by cluster id.
var clusterProfiles = map[int]struct {
	name  string
	emoji string
}{
	0: {"Mild & Cloudy", "☁️"},
	1: {"Dry Heat", "🔥"},
	2: {"Storm Watch", "🌧️"},
	3: {"Cool & Crisp", "❄️"},
	4: {"Tropical", "🌴"},
}

func clusterLabel(id int) (string, string) {
	if p, ok := clusterProfiles[id]; ok {
		return p.name, p.emoji
	}
	return fmt.Sprintf("Cluster %d", id), "🌤️"
}

// Clusters groups the profiles into k = min(5, n) weather patterns and
// returns one labelled assignment per profile, in input order.
func Clusters(profiles []models.WeatherProfile) ([]models.ClusterResult, error) {
	if len(profiles) == 0 {
		return nil, nil
	}

	vecs := standardize(profiles)
	obs := make(clusters.Observations, len(vecs))
	for i, v := range vecs {
		obs[i] = clusters.Coordinates(v)
	}

	k := 5
	if len(profiles) < k {
		k = len(profiles)
	}

	km := kmeans.New()
	parts, err := km.Partition(obs, k)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}

	out := make([]models.ClusterResult, len(profiles))
	for i, p := range profiles {
		id := parts.Nearest(obs[i])
		name, emoji := clusterLabel(id)
		out[i] = models.ClusterResult{
			CityName: p.CityName,
			Cluster:  id,
			Name:     name,
			Emoji:    emoji,
		}
	}
	return out, nil
}
