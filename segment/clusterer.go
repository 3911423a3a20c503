package segment

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultClusterNames are the ten named tiers, ordered from the highest
// EV-volume cluster (id 0) downwards.
var DefaultClusterNames = []string{
	"EV Leaders",
	"Fast Followers",
	"Infrastructure Builders",
	"Emerging Adopters",
	"Two-Wheeler Hubs",
	"Steady Growers",
	"Early Movers",
	"Developing Markets",
	"Nascent Markets",
	"Untapped Markets",
}

// NameTable assigns a stable human-readable name to each cluster id.
type NameTable []string

// Validate checks that the table names every id in [0, k) with a unique,
// non-empty name.
func (t NameTable) Validate(k int) error {
	if k > len(t) {
		return fmt.Errorf("%w: k=%d but only %d cluster names are configured", ErrUnmappedCluster, k, len(t))
	}
	seen := make(map[string]int, len(t))
	for i, name := range t {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return fmt.Errorf("cluster_names[%d] is empty", i)
		}
		if prev, dup := seen[trimmed]; dup {
			return fmt.Errorf("cluster_names[%d] %q duplicates cluster_names[%d]", i, name, prev)
		}
		seen[trimmed] = i
	}
	return nil
}

// Name returns the name for id.
func (t NameTable) Name(id int) (string, error) {
	if id < 0 || id >= len(t) {
		return "", fmt.Errorf("%w: id %d", ErrUnmappedCluster, id)
	}
	return t[id], nil
}

// Assignment maps one state to its cluster.
type Assignment struct {
	State   string
	Region  string
	Cluster int
	Name    string
}

// Clustering is the final partition of the dataset.
type Clustering struct {
	K           int
	Assignments []Assignment // input order
	Labels      []int        // Labels[i] is the cluster of record i
	Centroids   [][]float64  // standardized space, indexed by cluster id
	Inertia     float64
	Silhouette  float64
}

// Names returns the cluster names indexed by id.
func (c *Clustering) Names() []string {
	names := make([]string, c.K)
	for _, a := range c.Assignments {
		names[a.Cluster] = a.Name
	}
	return names
}

// Cluster fits the final K-Means at k using the same seed stream and restart
// policy as SelectK, then renumbers clusters by descending mean EV
// registrations so id 0 is the highest-volume tier. The name table is
// validated before fitting.
func Cluster(m *FeatureMatrix, records []StateRecord, k int, names NameTable, cfg ModelConfig) (*Clustering, error) {
	if len(records) != m.Rows() {
		return nil, fmt.Errorf("got %d records for a %d-row feature matrix", len(records), m.Rows())
	}
	if err := names.Validate(k); err != nil {
		return nil, err
	}

	points := m.Points()
	rng := NewPartitionedRNG(NewRunKey(cfg.Seed))
	fit, err := FitKMeans(points, cfg.kmeansConfig(k), rng.ForSubsystem(SubsystemKMeans(k)))
	if err != nil {
		return nil, fmt.Errorf("fitting k=%d: %w", k, err)
	}

	order := volumeOrder(fit.Labels, records, k)
	labels := make([]int, len(fit.Labels))
	for i, l := range fit.Labels {
		labels[i] = order[l]
	}
	centroids := make([][]float64, k)
	for old, c := range fit.Centroids {
		centroids[order[old]] = c
	}

	score, err := SilhouetteScore(points, labels, k)
	if err != nil {
		return nil, fmt.Errorf("scoring k=%d: %w", k, err)
	}

	out := &Clustering{
		K:           k,
		Labels:      labels,
		Centroids:   centroids,
		Inertia:     fit.Inertia,
		Silhouette:  score,
		Assignments: make([]Assignment, len(records)),
	}
	for i, r := range records {
		name, err := names.Name(labels[i])
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", r.State, err)
		}
		out.Assignments[i] = Assignment{State: r.State, Region: r.Region, Cluster: labels[i], Name: name}
	}
	return out, nil
}

// volumeOrder maps fitted ids to new ids ranked by descending mean EV
// registrations. Equal means keep their fitted order.
func volumeOrder(labels []int, records []StateRecord, k int) []int {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, l := range labels {
		sums[l] += records[i].EVRegistrations
		counts[l]++
	}
	ids := make([]int, k)
	avg := make([]float64, k)
	for c := range ids {
		ids[c] = c
		if counts[c] > 0 {
			avg[c] = sums[c] / float64(counts[c])
		}
	}
	sort.SliceStable(ids, func(a, b int) bool { return avg[ids[a]] > avg[ids[b]] })

	order := make([]int, k)
	for rank, old := range ids {
		order[old] = rank
	}
	return order
}
