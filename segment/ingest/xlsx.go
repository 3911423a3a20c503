package ingest

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/ev-insights/ev-segments/segment"
)

// headerScanRows bounds how far down a sheet the header row is searched for.
const headerScanRows = 10

// SalesTable is the latest-year slice of the vehicle sales spreadsheet.
type SalesTable struct {
	Year       int
	Categories []string                      // sheet order
	ByState    map[string]map[string]float64 // state key → category → units
}

// LoadSales reads the yearly vehicle-sales-by-category spreadsheet. The
// first sheet whose leading rows contain a header with state and year
// columns is used; every other column outside nonCategoryColumns is a sales
// category. Only rows of the most recent year are kept and repeated states
// within that year are summed.
func LoadSales(path string) (*SalesTable, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening spreadsheet %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	sheet, rows, headerRow, err := findSalesSheet(f)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet %s: %w", path, err)
	}
	logrus.Debugf("Sales data found in sheet %q, header at row %d", sheet, headerRow+1)

	header := rows[headerRow]
	stateCol, yearCol := -1, -1
	type category struct {
		name string
		col  int
	}
	var cats []category
	for i, h := range header {
		switch canonicalColumn(h) {
		case colState:
			if stateCol < 0 {
				stateCol = i
			}
			continue
		case colYear:
			if yearCol < 0 {
				yearCol = i
			}
			continue
		}
		name := normalizeHeader(h)
		if name == "" || nonCategoryColumns[name] {
			continue
		}
		cats = append(cats, category{name: name, col: i})
	}

	data := rows[headerRow+1:]
	latest, found := 0, false
	for _, row := range data {
		if segment.StateKey(cell(row, stateCol)) == "" {
			continue
		}
		if y, ok := parseYear(cell(row, yearCol)); ok && (!found || y > latest) {
			latest, found = y, true
		}
	}
	if !found {
		return nil, fmt.Errorf("spreadsheet %s sheet %q: no rows with a valid year", path, sheet)
	}

	table := &SalesTable{Year: latest, ByState: make(map[string]map[string]float64)}
	for _, c := range cats {
		table.Categories = append(table.Categories, c.name)
	}
	for i, row := range data {
		key := segment.StateKey(cell(row, stateCol))
		if key == "" {
			continue
		}
		if y, ok := parseYear(cell(row, yearCol)); !ok || y != latest {
			continue
		}
		units := table.ByState[key]
		if units == nil {
			units = make(map[string]float64, len(cats))
			table.ByState[key] = units
		}
		for _, c := range cats {
			v, err := parseNumber(cell(row, c.col))
			if err != nil {
				return nil, fmt.Errorf("spreadsheet %s sheet %q row %d column %q: %w",
					path, sheet, headerRow+i+2, header[c.col], err)
			}
			units[c.name] += v
		}
	}
	return table, nil
}

// findSalesSheet returns the first sheet with a state/year header row
// within its first headerScanRows rows.
func findSalesSheet(f *excelize.File) (string, [][]string, int, error) {
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i := 0; i < len(rows) && i < headerScanRows; i++ {
			idx := columnIndex(rows[i])
			_, hasState := idx[colState]
			_, hasYear := idx[colYear]
			if hasState && hasYear {
				return name, rows, i, nil
			}
		}
	}
	return "", nil, 0, fmt.Errorf("no sheet with state and year header columns")
}
