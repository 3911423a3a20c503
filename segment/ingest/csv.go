package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/ev-insights/ev-segments/segment"
)

// metricColumns binds optional numeric EV-metric columns to record fields.
var metricColumns = []struct {
	key string
	set func(r *segment.StateRecord, v float64)
}{
	{colEVRegistrations, func(r *segment.StateRecord, v float64) { r.EVRegistrations = v }},
	{colMarketShare, func(r *segment.StateRecord, v float64) { r.MarketShare = v }},
	{colChargingStations, func(r *segment.StateRecord, v float64) { r.ChargingStations = v }},
	{colInfraScore, func(r *segment.StateRecord, v float64) { r.InfraScore = v }},
	{colTwoWheelerPct, func(r *segment.StateRecord, v float64) { r.TwoWheelerPct = v }},
	{colThreeWheelerPct, func(r *segment.StateRecord, v float64) { r.ThreeWheelerPct = v }},
	{colFourWheelerPct, func(r *segment.StateRecord, v float64) { r.FourWheelerPct = v }},
}

// LoadEVMetrics reads the per-state EV metrics CSV. The header row is
// required and must contain a state and an EV registrations column; other
// metric columns default to 0 when absent. Rows with an empty state are
// skipped.
func LoadEVMetrics(path string) ([]segment.StateRecord, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	idx := columnIndex(header)
	for _, required := range []string{colState, colEVRegistrations} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("CSV %s: missing required column %q", path, required)
		}
	}

	regionCol, hasRegion := idx[colRegion]
	var records []segment.StateRecord
	for i, row := range rows {
		state := cell(row, idx[colState])
		if segment.StateKey(state) == "" {
			continue
		}
		r := segment.StateRecord{State: state}
		if hasRegion {
			r.Region = cell(row, regionCol)
		}
		for _, mc := range metricColumns {
			col, ok := idx[mc.key]
			if !ok {
				continue
			}
			v, err := parseNumber(cell(row, col))
			if err != nil {
				return nil, fmt.Errorf("CSV %s row %d column %q: %w", path, i+1, header[col], err)
			}
			mc.set(&r, v)
		}
		records = append(records, r)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty CSV: no data rows in %s", path)
	}
	return records, nil
}

// LoadManufacturerCounts reads the manufacturer-location listing and counts
// rows per state key.
func LoadManufacturerCounts(path string) (map[string]int, error) {
	header, rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	col, ok := columnIndex(header)[colState]
	if !ok {
		return nil, fmt.Errorf("CSV %s: missing required column %q", path, colState)
	}
	counts := make(map[string]int)
	for _, row := range rows {
		if key := segment.StateKey(cell(row, col)); key != "" {
			counts[key]++
		}
	}
	return counts, nil
}

// readCSV returns the header and data rows of a CSV file. Rows may have
// differing field counts.
func readCSV(path string) ([]string, [][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening CSV %s: %w", path, err)
	}
	defer file.Close() //nolint:errcheck // read-only file

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("reading CSV header from %s: %w", path, err)
	}

	var rows [][]string
	rowIdx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("CSV %s row %d: %w", path, rowIdx+1, err)
		}
		rows = append(rows, record)
		rowIdx++
	}
	return header, rows, nil
}
