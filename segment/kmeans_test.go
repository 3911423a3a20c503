package segment

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoBlobs() [][]float64 {
	return [][]float64{{0, 0}, {0, 1}, {10, 10}, {10, 11}}
}

func TestFitKMeans_TwoBlobs_SeparatesThem(t *testing.T) {
	// GIVEN two tight, distant pairs of points
	points := twoBlobs()

	// WHEN fitting k=2
	res, err := FitKMeans(points, KMeansConfig{K: 2, NInit: 5, MaxIter: 100, Tolerance: 1e-4}, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	// THEN each pair shares a label and the inertia is the within-pair spread
	assert.Equal(t, res.Labels[0], res.Labels[1])
	assert.Equal(t, res.Labels[2], res.Labels[3])
	assert.NotEqual(t, res.Labels[0], res.Labels[2])
	assert.InDelta(t, 1.0, res.Inertia, 1e-9)
	assert.Equal(t, 2, res.K)
	assert.GreaterOrEqual(t, res.Iterations, 1)
}

func TestFitKMeans_SameSeed_SameResult(t *testing.T) {
	points := [][]float64{{1, 2}, {2, 1}, {4, 4}, {5, 3}, {9, 9}, {8, 7}, {0, 5}}
	cfg := KMeansConfig{K: 3, NInit: 4, MaxIter: 50, Tolerance: 1e-4}

	a, err := FitKMeans(points, cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)
	b, err := FitKMeans(points, cfg, rand.New(rand.NewSource(99)))
	require.NoError(t, err)

	assert.Equal(t, a.Labels, b.Labels)
	assert.Equal(t, a.Centroids, b.Centroids)
	assert.Equal(t, a.Inertia, b.Inertia)
}

func TestFitKMeans_IdenticalPoints_NoEmptyCluster(t *testing.T) {
	// GIVEN points that all coincide
	points := [][]float64{{3, 3}, {3, 3}, {3, 3}, {3, 3}}

	// WHEN asking for two clusters
	res, err := FitKMeans(points, KMeansConfig{K: 2, NInit: 2, MaxIter: 10}, rand.New(rand.NewSource(5)))
	require.NoError(t, err)

	// THEN both clusters are populated and the fit is exact
	counts := map[int]int{}
	for _, l := range res.Labels {
		counts[l]++
	}
	assert.Len(t, counts, 2)
	assert.Equal(t, 0.0, res.Inertia)
}

func TestFitKMeans_InvalidConfig_ReturnsError(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	points := twoBlobs()
	tests := []struct {
		name   string
		points [][]float64
		cfg    KMeansConfig
	}{
		{"zero k", points, KMeansConfig{K: 0, NInit: 1, MaxIter: 1}},
		{"k above n", points, KMeansConfig{K: 5, NInit: 1, MaxIter: 1}},
		{"zero restarts", points, KMeansConfig{K: 2, NInit: 0, MaxIter: 1}},
		{"zero iterations", points, KMeansConfig{K: 2, NInit: 1, MaxIter: 0}},
		{"ragged points", [][]float64{{0, 0}, {1}}, KMeansConfig{K: 1, NInit: 1, MaxIter: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitKMeans(tt.points, tt.cfg, rng)
			assert.Error(t, err)
		})
	}
}

func TestAssign_TiesGoToLowerIndex(t *testing.T) {
	labels := make([]int, 1)
	assign([][]float64{{0}}, [][]float64{{1}, {-1}}, labels)
	assert.Equal(t, 0, labels[0])
}

func TestReseedEmpty_MovesFarthestPoint(t *testing.T) {
	// GIVEN all points on cluster 0 and an empty cluster 1
	points := [][]float64{{0}, {1}, {9}}
	centroids := [][]float64{{0}, {100}}
	labels := []int{0, 0, 0}

	reseedEmpty(points, centroids, labels)

	// THEN the point farthest from centroid 0 seeds cluster 1
	assert.Equal(t, []int{0, 0, 1}, labels)
	assert.Equal(t, []float64{9}, centroids[1])
}
