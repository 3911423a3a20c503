// Package report renders pipeline results: stdout summaries, CSV artifacts,
// an optional XLSX workbook and PNG charts.
package report

import (
	"strconv"

	"github.com/ev-insights/ev-segments/segment"
)

// Artifact file names written into the output directory.
const (
	AssignmentsFile = "state_clusters.csv"
	ProfilesFile    = "cluster_profiles.csv"
	SelectionFile   = "model_selection.csv"
	WorkbookFile    = "ev_segments.xlsx"
)

// Table is a named header + rows block shared by the CSV and XLSX writers.
// Cells are string, int, float64 or bool.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// AssignmentTable has one row per state with its core metrics and cluster.
func AssignmentTable(res *segment.Result) Table {
	t := Table{
		Name: "State Clusters",
		Headers: []string{"State", "Region", "EV_Registrations", "EV_Market_Share", "Charging_Stations",
			"Infrastructure_Score", "Manufacturer_Count", "EV_to_Conventional_Ratio", "Cluster", "Cluster_Name"},
	}
	for i, r := range res.Records {
		a := res.Clustering.Assignments[i]
		t.Rows = append(t.Rows, []any{
			r.State, r.Region, r.EVRegistrations, r.MarketShare, r.ChargingStations,
			r.InfraScore, r.ManufacturerCount, r.EVToConventional, a.Cluster, a.Name,
		})
	}
	return t
}

// ProfileTable has one row per cluster with the mean of every feature.
func ProfileTable(res *segment.Result) Table {
	p := res.Profiles
	t := Table{Name: "Cluster Profiles", Headers: []string{"Cluster", "Cluster_Name", "States"}}
	t.Headers = append(t.Headers, p.Features...)
	t.Headers = append(t.Headers, "Top_State")
	for _, prof := range p.Profiles {
		row := []any{prof.Cluster, prof.Name, prof.Size}
		for _, v := range prof.Means {
			row = append(row, v)
		}
		row = append(row, prof.TopState)
		t.Rows = append(t.Rows, row)
	}
	return t
}

// SelectionTable has one row per candidate k.
func SelectionTable(sel *segment.Selection) Table {
	t := Table{Name: "Model Selection", Headers: []string{"K", "Inertia", "Silhouette", "Selected"}}
	for _, c := range sel.Candidates {
		t.Rows = append(t.Rows, []any{c.K, c.Inertia, c.Silhouette, c.K == sel.BestK})
	}
	return t
}

// formatCell renders a cell for delimited output. Floats use the shortest
// representation that round-trips.
func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}
