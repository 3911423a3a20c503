package report

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/ev-insights/ev-segments/segment"
)

// PrintSelection writes the per-k score table.
func PrintSelection(w io.Writer, sel *segment.Selection) {
	fmt.Fprintln(w, "=== Model Selection ===")
	fmt.Fprintf(w, "%-4s %16s %12s\n", "k", "inertia", "silhouette")
	for _, c := range sel.Candidates {
		mark := ""
		if c.K == sel.BestK {
			mark = "  <- selected"
		}
		fmt.Fprintf(w, "%-4d %16.4f %12.4f%s\n", c.K, c.Inertia, c.Silhouette, mark)
	}
	fmt.Fprintf(w, "Selected k           : %d\n", sel.BestK)
	fmt.Fprintf(w, "Elbow suggestion     : %d\n", sel.ElbowK)
}

// PrintResult writes the full clustering report: dataset size, selection,
// cluster profiles, top performers and recommendations.
func PrintResult(w io.Writer, res *segment.Result, rec *segment.Recommender) {
	fmt.Fprintln(w, "=== EV Market Segmentation ===")
	fmt.Fprintf(w, "States               : %d\n", len(res.Records))
	fmt.Fprintf(w, "Features             : %s\n", strings.Join(res.Matrix.Features, ", "))
	fmt.Fprintf(w, "Imputed values       : %d\n", len(res.Matrix.Imputed))
	fmt.Fprintf(w, "Final silhouette     : %.4f\n", res.Clustering.Silhouette)
	fmt.Fprintln(w)

	PrintSelection(w, res.Selection)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Cluster Profiles ===")
	for i, prof := range res.Profiles.Profiles {
		fmt.Fprintf(w, "[%d] %s (%d states)\n", prof.Cluster, prof.Name, prof.Size)
		for j, f := range res.Profiles.Features {
			fmt.Fprintf(w, "    %-22s %14.2f\n", f, res.Profiles.Profiles[i].Means[j])
		}
		fmt.Fprintf(w, "    %-22s %s (%.0f registrations)\n", "top performer", prof.TopState, prof.TopRegistrations)
		fmt.Fprintf(w, "    %-22s %s\n", "members", strings.Join(prof.Members, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Recommendations ===")
	for _, prof := range res.Profiles.Profiles {
		text, _ := rec.For(prof.Name)
		fmt.Fprintf(w, "%s: %s\n", prof.Name, text)
	}
}

// PrintExploration writes the exploratory summaries.
func PrintExploration(w io.Writer, ex *segment.Exploration) {
	fmt.Fprintln(w, "=== Dataset Overview ===")
	fmt.Fprintf(w, "States               : %d\n", ex.StateCount)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "=== Top %d States by EV Registrations ===\n", len(ex.Top))
	for i, r := range ex.Top {
		fmt.Fprintf(w, "%2d. %-28s %12.0f  share %6.2f%%  stations %6.0f\n",
			i+1, r.State, r.EVRegistrations, r.MarketShare, r.ChargingStations)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Regional Summary ===")
	for _, reg := range ex.Regions {
		name := reg.Region
		if name == "" {
			name = "(unspecified)"
		}
		fmt.Fprintf(w, "%-16s states %3d  registrations %12.0f  mean share %6.2f%%  stations %8.0f\n",
			name, reg.States, reg.TotalRegistrations, reg.MeanMarketShare, reg.TotalStations)
	}

	if ex.Correlation == nil {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Feature Correlation ===")
	fmt.Fprintf(w, "%-22s", "")
	for j := range ex.Features {
		fmt.Fprintf(w, " %7s", fmt.Sprintf("f%d", j+1))
	}
	fmt.Fprintln(w)
	for i, f := range ex.Features {
		fmt.Fprintf(w, "%-22s", fmt.Sprintf("f%d %s", i+1, f))
		for j := range ex.Features {
			// Constant columns have no defined correlation.
			if v := ex.Correlation.At(i, j); math.IsNaN(v) {
				fmt.Fprintf(w, " %7s", "n/a")
			} else {
				fmt.Fprintf(w, " %7.3f", v)
			}
		}
		fmt.Fprintln(w)
	}
}
