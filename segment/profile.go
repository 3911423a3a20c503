package segment

import (
	"fmt"
	"sort"
)

// DefaultFallbackRecommendation is used for cluster names without a
// configured recommendation.
const DefaultFallbackRecommendation = "Monitor adoption trends and tailor market entry to local conditions."

// DefaultRecommendations are keyed by cluster name.
var DefaultRecommendations = map[string]string{
	"EV Leaders":              "Prioritize premium launches and fast-charging corridors; compete on network density.",
	"Fast Followers":          "Expand dealer and service networks ahead of demand; target fleet operators.",
	"Infrastructure Builders": "Leverage charging readiness with aggressive four-wheeler campaigns.",
	"Emerging Adopters":       "Partner with state programmes on subsidies and build awareness.",
	"Two-Wheeler Hubs":        "Focus on affordable two-wheelers and battery-swapping partnerships.",
	"Steady Growers":          "Grow steadily through tier-2 city dealerships and financing offers.",
	"Early Movers":            "Pilot charging hubs in metro areas and test pricing.",
	"Developing Markets":      "Invest in basic charging infrastructure before scaling sales.",
	"Nascent Markets":         "Run low-cost pilots and gather demand signals.",
	"Untapped Markets":        "Defer major investment; track policy changes and infrastructure plans.",
}

// ClusterProfile summarizes one cluster.
type ClusterProfile struct {
	Cluster int
	Name    string
	Size    int
	Means   []float64 // aligned with ProfileTable.Features

	TopState         string // largest EV registrations; first in input order on ties
	TopRegistrations float64
	Members          []string
}

// ProfileTable holds one profile per distinct cluster id, ascending.
type ProfileTable struct {
	Features []string
	Profiles []ClusterProfile
}

// Mean returns the mean of feature for profile i.
func (t *ProfileTable) Mean(i int, feature string) (float64, bool) {
	for j, f := range t.Features {
		if f == feature {
			return t.Profiles[i].Means[j], true
		}
	}
	return 0, false
}

// Profile computes per-cluster means of every feature over the imputed,
// unscaled matrix, along with each cluster's top performer.
func Profile(m *FeatureMatrix, records []StateRecord, c *Clustering) (*ProfileTable, error) {
	if len(c.Labels) != m.Rows() || len(records) != m.Rows() {
		return nil, fmt.Errorf("profile inputs disagree: %d labels, %d records, %d matrix rows",
			len(c.Labels), len(records), m.Rows())
	}

	byID := make(map[int]*ClusterProfile)
	p := len(m.Features)
	for i, id := range c.Labels {
		prof, ok := byID[id]
		if !ok {
			prof = &ClusterProfile{Cluster: id, Name: c.Assignments[i].Name, Means: make([]float64, p), TopState: records[i].State, TopRegistrations: records[i].EVRegistrations}
			byID[id] = prof
		}
		prof.Size++
		prof.Members = append(prof.Members, records[i].State)
		row := m.Raw.RawRowView(i)
		for j := range prof.Means {
			prof.Means[j] += row[j]
		}
		if records[i].EVRegistrations > prof.TopRegistrations {
			prof.TopState = records[i].State
			prof.TopRegistrations = records[i].EVRegistrations
		}
	}

	table := &ProfileTable{Features: append([]string(nil), m.Features...)}
	for _, prof := range byID {
		for j := range prof.Means {
			prof.Means[j] /= float64(prof.Size)
		}
		table.Profiles = append(table.Profiles, *prof)
	}
	sort.Slice(table.Profiles, func(a, b int) bool { return table.Profiles[a].Cluster < table.Profiles[b].Cluster })
	return table, nil
}

// Recommender looks up strategy text by cluster name.
type Recommender struct {
	byName   map[string]string
	fallback string
}

// NewRecommender copies recs; an empty fallback uses DefaultFallbackRecommendation.
func NewRecommender(recs map[string]string, fallback string) *Recommender {
	if fallback == "" {
		fallback = DefaultFallbackRecommendation
	}
	r := &Recommender{byName: make(map[string]string, len(recs)), fallback: fallback}
	for name, text := range recs {
		r.byName[name] = text
	}
	return r
}

// For returns the recommendation for name. ok is false when the fallback
// text was used.
func (r *Recommender) For(name string) (text string, ok bool) {
	if text, ok := r.byName[name]; ok {
		return text, true
	}
	return r.fallback, false
}
