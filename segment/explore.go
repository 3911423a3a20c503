package segment

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// RegionSummary rolls up the states of one region.
type RegionSummary struct {
	Region             string
	States             int
	TotalRegistrations float64
	MeanMarketShare    float64
	TotalStations      float64
}

// Exploration holds the descriptive summaries printed before clustering.
type Exploration struct {
	StateCount int
	Top        []StateRecord   // by EV registrations, descending
	Regions    []RegionSummary // by total registrations, descending
	Features   []string
	// Correlation is the Pearson correlation of the imputed features.
	// Nil when fewer than two states are available. Entries involving a
	// constant column are NaN.
	Correlation *mat.SymDense
}

// Explore computes exploratory summaries. m may be nil, in which case no
// correlation matrix is produced.
func Explore(records []StateRecord, m *FeatureMatrix, topN int) *Exploration {
	ex := &Exploration{StateCount: len(records)}

	sorted := append([]StateRecord(nil), records...)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].EVRegistrations > sorted[b].EVRegistrations })
	if topN > len(sorted) || topN < 0 {
		topN = len(sorted)
	}
	ex.Top = sorted[:topN]

	index := make(map[string]int)
	shareSums := make(map[string]float64)
	for _, r := range records {
		i, ok := index[r.Region]
		if !ok {
			i = len(ex.Regions)
			index[r.Region] = i
			ex.Regions = append(ex.Regions, RegionSummary{Region: r.Region})
		}
		ex.Regions[i].States++
		ex.Regions[i].TotalRegistrations += r.EVRegistrations
		ex.Regions[i].TotalStations += r.ChargingStations
		shareSums[r.Region] += r.MarketShare
	}
	for i := range ex.Regions {
		ex.Regions[i].MeanMarketShare = shareSums[ex.Regions[i].Region] / float64(ex.Regions[i].States)
	}
	sort.SliceStable(ex.Regions, func(a, b int) bool {
		return ex.Regions[a].TotalRegistrations > ex.Regions[b].TotalRegistrations
	})

	if m != nil && m.Rows() >= 2 {
		ex.Features = append([]string(nil), m.Features...)
		var corr mat.SymDense
		stat.CorrelationMatrix(&corr, m.Raw, nil)
		ex.Correlation = &corr
	}
	return ex
}
