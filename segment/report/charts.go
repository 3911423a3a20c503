package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/ev-insights/ev-segments/segment"
)

// Chart file names written by RenderCharts.
const (
	ElbowChartFile      = "elbow.png"
	SilhouetteChartFile = "silhouette.png"
	ClusterChartFile    = "clusters.png"
)

var highlight = color.RGBA{R: 220, G: 20, B: 60, A: 255}

// RenderCharts writes the elbow curve, the silhouette curve and a cluster
// scatter of EV registrations against charging stations into dir.
func RenderCharts(dir string, res *segment.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	sel := res.Selection
	var paths []string

	elbow := filepath.Join(dir, ElbowChartFile)
	if err := renderCurve(elbow, "Elbow method", "Inertia", sel, func(c segment.Candidate) float64 { return c.Inertia }); err != nil {
		return paths, err
	}
	paths = append(paths, elbow)

	sil := filepath.Join(dir, SilhouetteChartFile)
	if err := renderCurve(sil, "Silhouette analysis", "Mean silhouette", sel, func(c segment.Candidate) float64 { return c.Silhouette }); err != nil {
		return paths, err
	}
	paths = append(paths, sil)

	scatter := filepath.Join(dir, ClusterChartFile)
	if err := renderClusters(scatter, res); err != nil {
		return paths, err
	}
	paths = append(paths, scatter)
	return paths, nil
}

// renderCurve plots value(k) for every candidate and marks the selected k.
func renderCurve(path, title, yLabel string, sel *segment.Selection, value func(segment.Candidate) float64) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Number of clusters (k)"
	p.Y.Label.Text = yLabel

	xys := make(plotter.XYs, len(sel.Candidates))
	for i, c := range sel.Candidates {
		xys[i].X = float64(c.K)
		xys[i].Y = value(c)
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return fmt.Errorf("%s: %w", title, err)
	}
	points.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(line, points, plotter.NewGrid())

	best := sel.Best()
	marker, err := plotter.NewScatter(plotter.XYs{{X: float64(best.K), Y: value(best)}})
	if err != nil {
		return fmt.Errorf("%s: %w", title, err)
	}
	marker.GlyphStyle.Color = highlight
	marker.GlyphStyle.Radius = vg.Points(5)
	marker.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(marker)
	p.Legend.Add(fmt.Sprintf("selected k=%d", best.K), marker)

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// renderClusters draws one scatter series per cluster.
func renderClusters(path string, res *segment.Result) error {
	p := plot.New()
	p.Title.Text = "EV market segments"
	p.X.Label.Text = "EV registrations"
	p.Y.Label.Text = "Charging stations"
	p.Add(plotter.NewGrid())

	c := res.Clustering
	series := make([]plotter.XYs, c.K)
	for i, r := range res.Records {
		id := c.Labels[i]
		series[id] = append(series[id], plotter.XY{X: r.EVRegistrations, Y: r.ChargingStations})
	}
	names := c.Names()
	for id, xys := range series {
		if len(xys) == 0 {
			continue
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return fmt.Errorf("cluster %d: %w", id, err)
		}
		s.GlyphStyle.Color = plotutil.Color(id)
		s.GlyphStyle.Shape = plotutil.Shape(id)
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add(names[id], s)
	}
	p.Legend.Top = true

	if err := p.Save(10*vg.Inch, 7*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
