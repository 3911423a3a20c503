package ingest

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Canonical column keys for the EV metrics table.
const (
	colState            = "state"
	colRegion           = "region"
	colEVRegistrations  = "ev_registrations"
	colMarketShare      = "market_share"
	colChargingStations = "charging_stations"
	colInfraScore       = "infra_score"
	colTwoWheelerPct    = "two_wheeler_pct"
	colThreeWheelerPct  = "three_wheeler_pct"
	colFourWheelerPct   = "four_wheeler_pct"
	colYear             = "year"
)

// headerAliases maps accepted normalized header spellings to canonical keys.
var headerAliases = map[string]string{
	"state":      colState,
	"states":     colState,
	"state_name": colState,
	"state_ut":   colState,
	"state_uts":  colState,

	"region": colRegion,
	"zone":   colRegion,

	"ev_registrations":       colEVRegistrations,
	"total_ev_registrations": colEVRegistrations,
	"registrations":          colEVRegistrations,
	"total_evs":              colEVRegistrations,
	"ev_count":               colEVRegistrations,

	"market_share":        colMarketShare,
	"ev_market_share":     colMarketShare,
	"market_share_pct":    colMarketShare,
	"ev_market_share_pct": colMarketShare,

	"charging_stations":        colChargingStations,
	"public_charging_stations": colChargingStations,
	"charging_points":          colChargingStations,
	"stations":                 colChargingStations,

	"infra_score":                    colInfraScore,
	"infrastructure_score":           colInfraScore,
	"infrastructure_readiness_score": colInfraScore,
	"readiness_score":                colInfraScore,

	"two_wheeler_pct":        colTwoWheelerPct,
	"two_wheeler_share":      colTwoWheelerPct,
	"two_wheeler_percentage": colTwoWheelerPct,
	"2w_pct":                 colTwoWheelerPct,
	"two_wheeler":            colTwoWheelerPct,
	"2w":                     colTwoWheelerPct,

	"three_wheeler_pct":        colThreeWheelerPct,
	"three_wheeler_share":      colThreeWheelerPct,
	"three_wheeler_percentage": colThreeWheelerPct,
	"3w_pct":                   colThreeWheelerPct,
	"three_wheeler":            colThreeWheelerPct,
	"3w":                       colThreeWheelerPct,

	"four_wheeler_pct":        colFourWheelerPct,
	"four_wheeler_share":      colFourWheelerPct,
	"four_wheeler_percentage": colFourWheelerPct,
	"4w_pct":                  colFourWheelerPct,
	"four_wheeler":            colFourWheelerPct,
	"4w":                      colFourWheelerPct,

	"year":           colYear,
	"financial_year": colYear,
	"fy":             colYear,
}

// nonCategoryColumns are sales sheet columns that never hold sales units.
var nonCategoryColumns = map[string]bool{
	colState: true, colRegion: true, colYear: true,
	"month": true, "district": true, "total": true, "grand_total": true,
	"s_no": true, "sno": true, "sl_no": true, "serial": true,
}

// normalizeHeader converts a header cell to snake_case:
// "EV Market Share (%)" → "ev_market_share".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	var b strings.Builder
	underscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(h)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			underscore = false
			continue
		}
		if !underscore && b.Len() > 0 {
			b.WriteByte('_')
			underscore = true
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// canonicalColumn returns the canonical key for a header, or the normalized
// header itself when no alias matches.
func canonicalColumn(h string) string {
	n := normalizeHeader(h)
	if c, ok := headerAliases[n]; ok {
		return c
	}
	return n
}

// columnIndex maps canonical keys to column positions. The first occurrence
// of a key wins.
func columnIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := canonicalColumn(h)
		if key == "" {
			continue
		}
		if _, dup := idx[key]; !dup {
			idx[key] = i
		}
	}
	return idx
}

// parseNumber parses a numeric cell, tolerating thousands separators and a
// trailing percent sign. Empty cells are 0. Negative and non-finite values
// (NaN, Inf) are rejected.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("negative value %v", v)
	}
	return v, nil
}

// parseYear extracts a four-digit year from cells such as "2023",
// "2023.0" or "FY 2023".
func parseYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(v) && !math.IsInf(v, 0) {
		return int(v), true
	}
	digits := 0
	for i, r := range s {
		if unicode.IsDigit(r) {
			digits++
			if digits == 4 {
				y, err := strconv.Atoi(s[i-3 : i+1])
				return y, err == nil
			}
		} else {
			digits = 0
		}
	}
	return 0, false
}

// cell returns row[i] or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
