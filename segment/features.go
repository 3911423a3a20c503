package segment

import (
	"fmt"
	"sort"
)

// Feature names accepted in Config.Features.
const (
	FeatureEVRegistrations     = "ev_registrations"
	FeatureMarketShare         = "market_share"
	FeatureChargingStations    = "charging_stations"
	FeatureInfraScore          = "infra_score"
	FeatureManufacturerCount   = "manufacturer_count"
	FeatureEVToConventional    = "ev_to_conventional"
	FeatureEVsPerStation       = "evs_per_station"
	FeatureTwoWheelerPct       = "two_wheeler_pct"
	FeatureThreeWheelerPct     = "three_wheeler_pct"
	FeatureFourWheelerPct      = "four_wheeler_pct"
	FeatureConventionalTotal   = "conventional_total"
	FeatureManufacturerDensity = "manufacturer_density"
)

// DefaultFeatures is the ordered feature set used for clustering.
var DefaultFeatures = []string{
	FeatureEVRegistrations,
	FeatureMarketShare,
	FeatureChargingStations,
	FeatureInfraScore,
	FeatureManufacturerCount,
	FeatureEVToConventional,
	FeatureEVsPerStation,
	FeatureTwoWheelerPct,
	FeatureFourWheelerPct,
}

var featureExtractors = map[string]func(r *StateRecord) float64{
	FeatureEVRegistrations:     func(r *StateRecord) float64 { return r.EVRegistrations },
	FeatureMarketShare:         func(r *StateRecord) float64 { return r.MarketShare },
	FeatureChargingStations:    func(r *StateRecord) float64 { return r.ChargingStations },
	FeatureInfraScore:          func(r *StateRecord) float64 { return r.InfraScore },
	FeatureManufacturerCount:   func(r *StateRecord) float64 { return r.ManufacturerCount },
	FeatureEVToConventional:    func(r *StateRecord) float64 { return r.EVToConventional },
	FeatureEVsPerStation:       func(r *StateRecord) float64 { return r.EVsPerStation },
	FeatureTwoWheelerPct:       func(r *StateRecord) float64 { return r.TwoWheelerPct },
	FeatureThreeWheelerPct:     func(r *StateRecord) float64 { return r.ThreeWheelerPct },
	FeatureFourWheelerPct:      func(r *StateRecord) float64 { return r.FourWheelerPct },
	FeatureConventionalTotal:   func(r *StateRecord) float64 { return r.ConventionalTotal },
	FeatureManufacturerDensity: func(r *StateRecord) float64 { return r.ManufacturerDensity },
}

// IsValidFeature reports whether name is a known feature.
func IsValidFeature(name string) bool {
	_, ok := featureExtractors[name]
	return ok
}

// ValidFeatureNames returns all known feature names, sorted.
func ValidFeatureNames() []string {
	names := make([]string, 0, len(featureExtractors))
	for name := range featureExtractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FeatureValue returns the value of the named feature for r.
func FeatureValue(r *StateRecord, name string) (float64, error) {
	extract, ok := featureExtractors[name]
	if !ok {
		return 0, fmt.Errorf("unknown feature %q", name)
	}
	return extract(r), nil
}
