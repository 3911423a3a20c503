package segment

import (
	"fmt"
	"strings"
)

// StateRecord is one administrative region with its EV adoption metrics.
// Fields below the first block are filled by BuildRecords.
type StateRecord struct {
	State            string
	Region           string
	EVRegistrations  float64
	MarketShare      float64 // EV share of new vehicle sales, percent
	ChargingStations float64
	InfraScore       float64 // infrastructure readiness score
	TwoWheelerPct    float64
	ThreeWheelerPct  float64
	FourWheelerPct   float64

	// Joined columns; zero when the state has no match in the secondary source.
	ManufacturerCount float64
	Sales             map[string]float64 // latest-year conventional sales by category
	ConventionalTotal float64

	// Derived ratios; EVsPerStation may be non-finite when ChargingStations is 0.
	EVToConventional    float64
	EVsPerStation       float64
	ManufacturerDensity float64 // manufacturers per thousand EV registrations
}

// Key returns the join key for the record.
func (r *StateRecord) Key() string {
	return StateKey(r.State)
}

// StateKey normalizes a state name for joining: surrounding whitespace is
// trimmed, inner runs collapse to one space and case is folded.
func StateKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// Sources carries the three raw input tables keyed for the join.
type Sources struct {
	States []StateRecord

	// Manufacturers maps a state key to its number of listing rows.
	// Nil when the listing could not be loaded.
	Manufacturers map[string]int

	// Sales maps a state key to category → units for SalesYear.
	// Nil when the spreadsheet could not be loaded.
	Sales     map[string]map[string]float64
	SalesYear int
}

// BuildRecords left-joins manufacturer counts and latest-year sales onto the
// EV metrics table and derives the ratio features. States without a match
// receive zero, not a missing value. The input slice is not modified.
func BuildRecords(src Sources) ([]StateRecord, error) {
	if len(src.States) == 0 {
		return nil, ErrNoStates
	}

	seen := make(map[string]int, len(src.States))
	records := make([]StateRecord, 0, len(src.States))
	for i, in := range src.States {
		key := in.Key()
		if key == "" {
			return nil, fmt.Errorf("state record %d: empty state name", i)
		}
		if prev, dup := seen[key]; dup {
			return nil, fmt.Errorf("state record %d: duplicate state %q (first seen at record %d)", i, in.State, prev)
		}
		seen[key] = i

		r := in
		r.ManufacturerCount = float64(src.Manufacturers[key])
		r.Sales = make(map[string]float64)
		r.ConventionalTotal = 0
		for category, units := range src.Sales[key] {
			r.Sales[category] = units
			r.ConventionalTotal += units
		}
		derive(&r)
		records = append(records, r)
	}
	return records, nil
}

func derive(r *StateRecord) {
	r.EVToConventional = r.EVRegistrations / (r.ConventionalTotal + 1)
	// Left unguarded: zero stations yield ±Inf/NaN, which preprocessing imputes.
	r.EVsPerStation = r.EVRegistrations / r.ChargingStations
	if r.EVRegistrations > 0 {
		r.ManufacturerDensity = r.ManufacturerCount / (r.EVRegistrations / 1000)
	} else {
		r.ManufacturerDensity = 0
	}
}
