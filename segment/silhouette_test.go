package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSilhouetteScore_TwoPairs(t *testing.T) {
	// GIVEN {0,1} and {10,11} on a line
	points := [][]float64{{0}, {1}, {10}, {11}}

	scores, err := SilhouetteSamples(points, []int{0, 0, 1, 1}, 2)
	require.NoError(t, err)

	// THEN outer points score (10.5-1)/10.5 and inner points (9.5-1)/9.5
	assert.InDelta(t, 9.5/10.5, scores[0], 1e-12)
	assert.InDelta(t, 8.5/9.5, scores[1], 1e-12)
	assert.InDelta(t, 8.5/9.5, scores[2], 1e-12)
	assert.InDelta(t, 9.5/10.5, scores[3], 1e-12)

	mean, err := SilhouetteScore(points, []int{0, 0, 1, 1}, 2)
	require.NoError(t, err)
	assert.InDelta(t, (9.5/10.5+8.5/9.5)/2, mean, 1e-12)
}

func TestSilhouetteSamples_SingletonScoresZero(t *testing.T) {
	scores, err := SilhouetteSamples([][]float64{{0}, {1}, {10}}, []int{0, 0, 1}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, scores[0], 1e-12)
	assert.InDelta(t, 8.0/9.0, scores[1], 1e-12)
	assert.Equal(t, 0.0, scores[2])
}

func TestSilhouetteSamples_BadPartition_ReturnsError(t *testing.T) {
	points := [][]float64{{0}, {1}, {2}}
	tests := []struct {
		name   string
		labels []int
		k      int
	}{
		{"one cluster", []int{0, 0, 0}, 2},
		{"every point alone", []int{0, 1, 2}, 3},
		{"label out of range", []int{0, 1, 2}, 2},
		{"label count mismatch", []int{0, 1}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SilhouetteSamples(points, tt.labels, tt.k)
			assert.Error(t, err)
		})
	}
}
