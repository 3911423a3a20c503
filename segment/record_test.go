package segment

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateKey_NormalizesWhitespaceAndCase(t *testing.T) {
	assert.Equal(t, "uttar pradesh", StateKey("  Uttar   Pradesh "))
	assert.Equal(t, "", StateKey("   "))
}

func TestBuildRecords_EmptyInput_ReturnsErrNoStates(t *testing.T) {
	_, err := BuildRecords(Sources{})
	assert.True(t, errors.Is(err, ErrNoStates))
}

func TestBuildRecords_JoinMatchesNormalizedNames(t *testing.T) {
	// GIVEN a state spelled differently in the primary and secondary sources
	src := Sources{
		States:        []StateRecord{{State: "  Tamil   NADU ", EVRegistrations: 9000, ChargingStations: 30}},
		Manufacturers: map[string]int{"tamil nadu": 9},
		Sales:         map[string]map[string]float64{"tamil nadu": {"two_wheeler": 600, "four_wheeler": 399}},
	}

	// WHEN records are built
	records, err := BuildRecords(src)
	require.NoError(t, err)
	require.Len(t, records, 1)
	r := records[0]

	// THEN the joined columns and derived ratios use the matched values
	assert.Equal(t, 9.0, r.ManufacturerCount)
	assert.Equal(t, 999.0, r.ConventionalTotal)
	assert.Equal(t, 9.0, r.EVToConventional, "registrations / (conventional + 1)")
	assert.Equal(t, 300.0, r.EVsPerStation)
	assert.Equal(t, 1.0, r.ManufacturerDensity, "9 manufacturers per 9 thousand EVs")
}

func TestBuildRecords_UnmatchedState_ZeroFilled(t *testing.T) {
	// GIVEN secondary tables that do not mention the state
	src := Sources{
		States:        []StateRecord{{State: "Goa", EVRegistrations: 500, ChargingStations: 5}},
		Manufacturers: map[string]int{"kerala": 3},
		Sales:         map[string]map[string]float64{"kerala": {"two_wheeler": 10}},
	}

	records, err := BuildRecords(src)
	require.NoError(t, err)

	// THEN the joined columns are zero, not missing
	r := records[0]
	assert.Equal(t, 0.0, r.ManufacturerCount)
	assert.Equal(t, 0.0, r.ConventionalTotal)
	assert.Empty(t, r.Sales)
	assert.Equal(t, 500.0, r.EVToConventional)
	assert.Equal(t, 0.0, r.ManufacturerDensity)
}

func TestBuildRecords_NilSecondarySources_ZeroFilled(t *testing.T) {
	records, err := BuildRecords(Sources{States: []StateRecord{{State: "Goa", EVRegistrations: 10, ChargingStations: 2}}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, records[0].ManufacturerCount)
	assert.Equal(t, 10.0, records[0].EVToConventional)
}

func TestBuildRecords_ZeroStations_DerivesNonFinite(t *testing.T) {
	records, err := BuildRecords(Sources{States: []StateRecord{
		{State: "A", EVRegistrations: 100, ChargingStations: 0},
		{State: "B", EVRegistrations: 0, ChargingStations: 0},
	}})
	require.NoError(t, err)

	assert.True(t, math.IsInf(records[0].EVsPerStation, 1))
	assert.True(t, math.IsNaN(records[1].EVsPerStation))
	assert.Equal(t, 0.0, records[1].ManufacturerDensity, "zero registrations give zero density")
}

func TestBuildRecords_DuplicateState_ReturnsError(t *testing.T) {
	_, err := BuildRecords(Sources{States: []StateRecord{{State: "Delhi"}, {State: " delhi"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate state")
}

func TestBuildRecords_EmptyStateName_ReturnsError(t *testing.T) {
	_, err := BuildRecords(Sources{States: []StateRecord{{State: "Delhi"}, {State: "  "}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty state name")
}

func TestBuildRecords_DoesNotModifyInput(t *testing.T) {
	in := []StateRecord{{State: "Goa", EVRegistrations: 10, ChargingStations: 1}}
	_, err := BuildRecords(Sources{States: in, Manufacturers: map[string]int{"goa": 2}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, in[0].ManufacturerCount)
	assert.Nil(t, in[0].Sales)
}

func TestFeatureValue_KnownAndUnknown(t *testing.T) {
	r := StateRecord{EVRegistrations: 12, TwoWheelerPct: 40}
	v, err := FeatureValue(&r, FeatureTwoWheelerPct)
	require.NoError(t, err)
	assert.Equal(t, 40.0, v)

	_, err = FeatureValue(&r, "battery_size")
	assert.Error(t, err)
}

func TestValidFeatureNames_SortedAndCoverDefaults(t *testing.T) {
	names := ValidFeatureNames()
	assert.IsIncreasing(t, names)
	for _, f := range DefaultFeatures {
		assert.True(t, IsValidFeature(f), f)
		assert.Contains(t, names, f)
	}
}
