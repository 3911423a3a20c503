package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplore_TopStatesAndRegions(t *testing.T) {
	records := []StateRecord{
		{State: "A", Region: "North", EVRegistrations: 10, MarketShare: 1, ChargingStations: 2},
		{State: "B", Region: "South", EVRegistrations: 300, MarketShare: 5, ChargingStations: 40},
		{State: "C", Region: "North", EVRegistrations: 200, MarketShare: 3, ChargingStations: 10},
	}
	m, err := Preprocess(records, []string{FeatureEVRegistrations, FeatureMarketShare})
	require.NoError(t, err)

	ex := Explore(records, m, 2)

	assert.Equal(t, 3, ex.StateCount)
	require.Len(t, ex.Top, 2)
	assert.Equal(t, "B", ex.Top[0].State)
	assert.Equal(t, "C", ex.Top[1].State)

	require.Len(t, ex.Regions, 2)
	assert.Equal(t, RegionSummary{Region: "South", States: 1, TotalRegistrations: 300, MeanMarketShare: 5, TotalStations: 40}, ex.Regions[0])
	assert.Equal(t, RegionSummary{Region: "North", States: 2, TotalRegistrations: 210, MeanMarketShare: 2, TotalStations: 12}, ex.Regions[1])

	require.NotNil(t, ex.Correlation)
	assert.InDelta(t, 1, ex.Correlation.At(0, 0), 1e-12)
	assert.Greater(t, ex.Correlation.At(0, 1), 0.9)
}

func TestExplore_TopNLargerThanDataset_ReturnsAll(t *testing.T) {
	records := []StateRecord{{State: "A"}}
	ex := Explore(records, nil, 10)
	assert.Len(t, ex.Top, 1)
	assert.Nil(t, ex.Correlation)
}
