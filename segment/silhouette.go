package segment

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SilhouetteSamples returns the silhouette coefficient of every point:
// (b - a) / max(a, b), where a is the mean distance to the other members of
// its own cluster and b the mean distance to the nearest other cluster.
// Points in singleton clusters score 0.
func SilhouetteSamples(points [][]float64, labels []int, k int) ([]float64, error) {
	n := len(points)
	if len(labels) != n {
		return nil, fmt.Errorf("got %d labels for %d points", len(labels), n)
	}
	counts := make([]int, k)
	for i, l := range labels {
		if l < 0 || l >= k {
			return nil, fmt.Errorf("label %d of point %d outside [0, %d)", l, i, k)
		}
		counts[l]++
	}
	used := 0
	for _, c := range counts {
		if c > 0 {
			used++
		}
	}
	if used < 2 || used > n-1 {
		return nil, fmt.Errorf("silhouette needs between 2 and %d non-empty clusters, got %d", n-1, used)
	}

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := floats.Distance(points[i], points[j], 2)
			dist[i][j], dist[j][i] = d, d
		}
	}

	scores := make([]float64, n)
	sums := make([]float64, k)
	for i := 0; i < n; i++ {
		own := labels[i]
		if counts[own] < 2 {
			scores[i] = 0
			continue
		}
		for c := range sums {
			sums[c] = 0
		}
		for j := 0; j < n; j++ {
			sums[labels[j]] += dist[i][j]
		}
		a := sums[own] / float64(counts[own]-1)
		b := -1.0
		for c := range sums {
			if c == own || counts[c] == 0 {
				continue
			}
			if mean := sums[c] / float64(counts[c]); b < 0 || mean < b {
				b = mean
			}
		}
		denom := a
		if b > denom {
			denom = b
		}
		if denom > 0 {
			scores[i] = (b - a) / denom
		}
	}
	return scores, nil
}

// SilhouetteScore is the mean silhouette coefficient over all points.
func SilhouetteScore(points [][]float64, labels []int, k int) (float64, error) {
	scores, err := SilhouetteSamples(points, labels, k)
	if err != nil {
		return 0, err
	}
	return stat.Mean(scores, nil), nil
}
