// Package ingest loads the three input tables of the segmentation pipeline:
// the EV metrics CSV (primary), the manufacturer listing CSV and the vehicle
// sales spreadsheet. Headers are matched by snake_case name with aliases, so
// column order does not matter.
package ingest

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ev-insights/ev-segments/segment"
)

// ErrPrimaryUnavailable wraps any failure to load the EV metrics table.
// Nothing downstream can run without it.
var ErrPrimaryUnavailable = errors.New("primary EV dataset unavailable")

// Paths locates the input files. Secondary paths may be empty.
type Paths struct {
	EVData        string
	Manufacturers string
	Sales         string
}

// LoadSources loads all inputs. A primary failure is returned as an error
// wrapping ErrPrimaryUnavailable; a secondary failure is logged and its
// joined columns degrade to zero.
func LoadSources(p Paths) (segment.Sources, error) {
	var src segment.Sources
	if p.EVData == "" {
		return src, fmt.Errorf("%w: no path given", ErrPrimaryUnavailable)
	}
	states, err := LoadEVMetrics(p.EVData)
	if err != nil {
		return src, fmt.Errorf("%w: %w", ErrPrimaryUnavailable, err)
	}
	src.States = states
	logrus.Infof("Loaded %d states from %s", len(states), p.EVData)

	if p.Manufacturers == "" {
		logrus.Infof("No manufacturer listing given; manufacturer counts are zero")
	} else {
		counts, err := LoadManufacturerCounts(p.Manufacturers)
		if err != nil {
			logrus.Warnf("Manufacturer listing unavailable, counts default to zero: %v", err)
		} else {
			src.Manufacturers = counts
			logrus.Infof("Loaded manufacturer listing for %d states from %s", len(counts), p.Manufacturers)
		}
	}

	if p.Sales == "" {
		logrus.Infof("No sales spreadsheet given; conventional sales are zero")
	} else {
		sales, err := LoadSales(p.Sales)
		if err != nil {
			logrus.Warnf("Sales spreadsheet unavailable, conventional sales default to zero: %v", err)
		} else {
			src.Sales = sales.ByState
			src.SalesYear = sales.Year
			logrus.Infof("Loaded %d-state sales for year %d from %s", len(sales.ByState), sales.Year, p.Sales)
		}
	}
	return src, nil
}
