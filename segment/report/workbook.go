package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ev-insights/ev-segments/segment"
)

// WriteWorkbook saves each table as its own sheet of an XLSX file, in order.
func WriteWorkbook(path string, tables []Table) error {
	if len(tables) == 0 {
		return fmt.Errorf("no tables to write")
	}
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // SaveAs reports write failures

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", t.Name); err != nil {
				return fmt.Errorf("naming sheet %q: %w", t.Name, err)
			}
		} else if _, err := f.NewSheet(t.Name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", t.Name, err)
		}

		header := make([]any, len(t.Headers))
		for j, h := range t.Headers {
			header[j] = h
		}
		if err := f.SetSheetRow(t.Name, "A1", &header); err != nil {
			return fmt.Errorf("sheet %q header: %w", t.Name, err)
		}
		for r, row := range t.Rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			values := append([]any(nil), row...)
			if err := f.SetSheetRow(t.Name, cell, &values); err != nil {
				return fmt.Errorf("sheet %q row %d: %w", t.Name, r+1, err)
			}
		}
		last, err := excelize.ColumnNumberToName(len(t.Headers))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(t.Name, "A", last, 18); err != nil {
			return fmt.Errorf("sheet %q widths: %w", t.Name, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", path, err)
	}
	return nil
}

// ExportWorkbook writes the assignment, profile and selection tables to path.
func ExportWorkbook(path string, res *segment.Result) error {
	return WriteWorkbook(path, []Table{AssignmentTable(res), ProfileTable(res), SelectionTable(res.Selection)})
}
