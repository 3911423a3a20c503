package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ev-insights/ev-segments/segment"
)

// CSVWriter writes tables as CSV files into one directory.
type CSVWriter struct {
	dir string
}

// NewCSVWriter creates a writer rooted at dir.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir}
}

// WriteTable writes t to name inside the writer's directory, creating the
// directory when needed, and returns the full path.
func (w *CSVWriter) WriteTable(name string, t Table) (path string, err error) {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	path = filepath.Join(w.dir, name)
	logrus.Debugf("Writing %d rows to %s", len(t.Rows), path)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(t.Headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}
	record := make([]string, len(t.Headers))
	for i, row := range t.Rows {
		record = record[:0]
		for _, v := range row {
			record = append(record, formatCell(v))
		}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", path, err)
	}
	return path, nil
}

// ExportAll writes the assignment, profile and model selection CSVs and
// returns their paths.
func (w *CSVWriter) ExportAll(res *segment.Result) ([]string, error) {
	outputs := []struct {
		name  string
		table Table
	}{
		{AssignmentsFile, AssignmentTable(res)},
		{ProfilesFile, ProfileTable(res)},
		{SelectionFile, SelectionTable(res.Selection)},
	}
	var paths []string
	for _, o := range outputs {
		path, err := w.WriteTable(o.name, o.table)
		if err != nil {
			return paths, fmt.Errorf("exporting %s: %w", o.name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
