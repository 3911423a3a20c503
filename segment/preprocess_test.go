package segment

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestPreprocess_NonFiniteValues_ImputedWithColumnMax(t *testing.T) {
	// GIVEN per-station ratios of 10, +Inf, 2 and NaN
	records, err := BuildRecords(Sources{States: []StateRecord{
		{State: "A", EVRegistrations: 100, ChargingStations: 10},
		{State: "B", EVRegistrations: 200, ChargingStations: 0},
		{State: "C", EVRegistrations: 50, ChargingStations: 25},
		{State: "D", EVRegistrations: 0, ChargingStations: 0},
	}})
	require.NoError(t, err)

	// WHEN preprocessing
	m, err := Preprocess(records, []string{FeatureEVRegistrations, FeatureEVsPerStation})
	require.NoError(t, err)

	// THEN both non-finite cells take the largest finite value
	assert.Equal(t, []float64{10, 10, 2, 10}, mat.Col(nil, 1, m.Raw))
	require.Len(t, m.Imputed, 2)
	assert.Equal(t, "B", m.Imputed[0].State)
	assert.True(t, math.IsInf(m.Imputed[0].Original, 1))
	assert.Equal(t, "D", m.Imputed[1].State)
	assert.True(t, math.IsNaN(m.Imputed[1].Original))
	assert.Equal(t, 10.0, m.Imputed[1].Value)

	// AND no non-finite value reaches the scaled matrix
	for _, v := range m.Scaled.RawMatrix().Data {
		assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}

func TestPreprocess_StandardizesColumns(t *testing.T) {
	records := []StateRecord{
		{State: "A", EVRegistrations: 10, MarketShare: 1},
		{State: "B", EVRegistrations: 20, MarketShare: 4},
		{State: "C", EVRegistrations: 60, MarketShare: 2},
		{State: "D", EVRegistrations: 30, MarketShare: 9},
	}
	m, err := Preprocess(records, []string{FeatureEVRegistrations, FeatureMarketShare})
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		mean, variance := stat.PopMeanVariance(mat.Col(nil, j, m.Scaled), nil)
		assert.InDelta(t, 0, mean, 1e-12, "column %d mean", j)
		assert.InDelta(t, 1, variance, 1e-12, "column %d population variance", j)
	}
	assert.Equal(t, 30.0, m.Means[0])
	assert.Equal(t, []string{"A", "B", "C", "D"}, m.States)
	assert.Equal(t, 4, m.Rows())
}

func TestPreprocess_ConstantColumn_CenteredOnly(t *testing.T) {
	records := []StateRecord{
		{State: "A", EVRegistrations: 1, InfraScore: 5},
		{State: "B", EVRegistrations: 2, InfraScore: 5},
		{State: "C", EVRegistrations: 3, InfraScore: 5},
	}
	m, err := Preprocess(records, []string{FeatureEVRegistrations, FeatureInfraScore})
	require.NoError(t, err)

	assert.Equal(t, 1.0, m.Scales[1])
	assert.Equal(t, []float64{0, 0, 0}, mat.Col(nil, 1, m.Scaled))
}

func TestPreprocess_AllNonFiniteColumn_ImputesZero(t *testing.T) {
	records, err := BuildRecords(Sources{States: []StateRecord{
		{State: "A", EVRegistrations: 1},
		{State: "B", EVRegistrations: 2},
	}})
	require.NoError(t, err)

	m, err := Preprocess(records, []string{FeatureEVsPerStation})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, mat.Col(nil, 0, m.Raw))
	assert.Len(t, m.Imputed, 2)
}

func TestPreprocess_InvalidInputs(t *testing.T) {
	_, err := Preprocess(nil, DefaultFeatures)
	assert.True(t, errors.Is(err, ErrNoStates))

	_, err = Preprocess([]StateRecord{{State: "A"}}, nil)
	assert.True(t, errors.Is(err, ErrNoFeatures))

	_, err = Preprocess([]StateRecord{{State: "A"}}, []string{"unknown"})
	assert.Error(t, err)
}

func TestFeatureMatrix_Points_FollowFeatureOrder(t *testing.T) {
	records := []StateRecord{
		{State: "A", EVRegistrations: 0, MarketShare: 10},
		{State: "B", EVRegistrations: 2, MarketShare: 0},
	}
	m, err := Preprocess(records, []string{FeatureMarketShare, FeatureEVRegistrations})
	require.NoError(t, err)

	points := m.Points()
	require.Len(t, points, 2)
	assert.Equal(t, []float64{1, -1}, points[0])
	assert.Equal(t, []float64{-1, 1}, points[1])
}
