// Package testutil provides shared test infrastructure for the segment
// packages: synthetic state tables and float assertion helpers.
package testutil

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/ev-insights/ev-segments/segment"
)

// GroupProfile is the centre of one synthetic market segment.
type GroupProfile struct {
	Region           string
	EVRegistrations  float64
	MarketShare      float64
	ChargingStations float64
	InfraScore       float64
	TwoWheelerPct    float64
	ThreeWheelerPct  float64
	FourWheelerPct   float64
	Manufacturers    int
	Conventional     float64
}

// SeparatedGroups are four segments far apart on every default feature.
var SeparatedGroups = []GroupProfile{
	{Region: "North", EVRegistrations: 400000, MarketShare: 12, ChargingStations: 2500, InfraScore: 9, TwoWheelerPct: 20, ThreeWheelerPct: 10, FourWheelerPct: 70, Manufacturers: 40, Conventional: 900000},
	{Region: "South", EVRegistrations: 100000, MarketShare: 6, ChargingStations: 800, InfraScore: 6, TwoWheelerPct: 70, ThreeWheelerPct: 20, FourWheelerPct: 10, Manufacturers: 10, Conventional: 1200000},
	{Region: "East", EVRegistrations: 20000, MarketShare: 2, ChargingStations: 150, InfraScore: 3, TwoWheelerPct: 30, ThreeWheelerPct: 60, FourWheelerPct: 10, Manufacturers: 2, Conventional: 300000},
	{Region: "West", EVRegistrations: 1000, MarketShare: 0.2, ChargingStations: 10, InfraScore: 1, TwoWheelerPct: 50, ThreeWheelerPct: 5, FourWheelerPct: 45, Manufacturers: 0, Conventional: 50000},
}

// SeparatedSources builds Sources with perGroup states per SeparatedGroups
// entry. Every value is jittered by at most ±2% using a seeded generator, so
// the output is identical for the same seed. States are named "<Region>-<i>".
func SeparatedSources(perGroup int, seed int64) segment.Sources {
	rng := rand.New(rand.NewSource(seed))
	jitter := func(v float64) float64 {
		return v * (1 + (rng.Float64()*2-1)*0.02)
	}

	src := segment.Sources{
		Manufacturers: make(map[string]int),
		Sales:         make(map[string]map[string]float64),
		SalesYear:     2024,
	}
	for _, g := range SeparatedGroups {
		for i := 0; i < perGroup; i++ {
			name := fmt.Sprintf("%s-%d", g.Region, i+1)
			src.States = append(src.States, segment.StateRecord{
				State:            name,
				Region:           g.Region,
				EVRegistrations:  math.Round(jitter(g.EVRegistrations)),
				MarketShare:      jitter(g.MarketShare),
				ChargingStations: math.Round(jitter(g.ChargingStations)),
				InfraScore:       jitter(g.InfraScore),
				TwoWheelerPct:    jitter(g.TwoWheelerPct),
				ThreeWheelerPct:  jitter(g.ThreeWheelerPct),
				FourWheelerPct:   jitter(g.FourWheelerPct),
			})
			key := segment.StateKey(name)
			src.Manufacturers[key] = g.Manufacturers
			src.Sales[key] = map[string]float64{
				"two_wheeler":  math.Round(jitter(g.Conventional * 0.6)),
				"four_wheeler": math.Round(jitter(g.Conventional * 0.4)),
			}
		}
	}
	return src
}

// SeparatedRecords is SeparatedSources passed through BuildRecords.
func SeparatedRecords(t *testing.T, perGroup int, seed int64) []segment.StateRecord {
	t.Helper()
	records, err := segment.BuildRecords(SeparatedSources(perGroup, seed))
	if err != nil {
		t.Fatalf("BuildRecords on synthetic sources: %v", err)
	}
	return records
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
