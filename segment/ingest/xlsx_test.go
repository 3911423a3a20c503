package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeSalesWorkbook saves rows to the named sheet of a new workbook; the
// default sheet is kept empty so sheet discovery is exercised.
func writeSalesWorkbook(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // test file
	_, err := f.NewSheet(sheet)
	require.NoError(t, err)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		values := row
		require.NoError(t, f.SetSheetRow(sheet, cell, &values))
	}
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestLoadSales_KeepsLatestYearAndSumsRepeats(t *testing.T) {
	// GIVEN a sheet with a title row, two years and a state listed twice
	path := writeSalesWorkbook(t, "Sales", [][]any{
		{"Vehicle sales by state"},
		{"S.No", "State", "Year", "Two Wheeler", "Four Wheeler", "Total"},
		{1, "Kerala", 2022, 900, 100, 1000},
		{2, "Kerala", 2023, 500, 200, 700},
		{3, "Kerala", 2023, 50, 20, 70},
		{4, "Goa", "2023", "1,000", 300, 1300},
		{5, "", 2024, 1, 1, 2},
	})

	// WHEN loaded
	table, err := LoadSales(path)
	require.NoError(t, err)

	// THEN only 2023 rows survive, with repeats summed and totals ignored
	assert.Equal(t, 2023, table.Year)
	assert.Equal(t, []string{"two_wheeler", "four_wheeler"}, table.Categories)
	assert.Equal(t, map[string]map[string]float64{
		"kerala": {"two_wheeler": 550, "four_wheeler": 220},
		"goa":    {"two_wheeler": 1000, "four_wheeler": 300},
	}, table.ByState)
}

func TestLoadSales_NoHeaderSheet_ReturnsError(t *testing.T) {
	path := writeSalesWorkbook(t, "Notes", [][]any{{"Category", "Units"}, {"two", 3}})
	_, err := LoadSales(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sheet")
}

func TestLoadSales_NoValidYear_ReturnsError(t *testing.T) {
	path := writeSalesWorkbook(t, "Sales", [][]any{{"State", "Year", "Cars"}, {"Goa", "unknown", 4}})
	_, err := LoadSales(path)
	assert.Error(t, err)
}

func TestLoadSales_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadSales(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}
