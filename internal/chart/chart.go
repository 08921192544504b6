// Package chart renders the exploratory and diagnostic plots as PNG files.
// It is a pure consumer of pipeline output; a failed render never fails the
// run.
package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"power_analysis/internal/store"
)

// maxScatterPoints caps scatter plot density; larger inputs are strided.
const maxScatterPoints = 5000

// DailySeries writes a line chart of mean daily active power.
func DailySeries(days []store.DailyMean, path string) error {
	pts := make(plotter.XYs, len(days))
	for i, d := range days {
		pts[i].X = float64(d.Day.Unix())
		pts[i].Y = d.Mean
	}

	p := plot.New()
	p.Title.Text = "Mean Daily Active Power"
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Active power (kW)"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building daily series line: %w", err)
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// HourlyProfile writes a line chart of mean active power per hour of day.
func HourlyProfile(profile [24]float64, path string) error {
	pts := make(plotter.XYs, len(profile))
	for h, mean := range profile {
		pts[h].X = float64(h)
		pts[h].Y = mean
	}

	p := plot.New()
	p.Title.Text = "Mean Active Power by Hour of Day"
	p.X.Label.Text = "Hour"
	p.Y.Label.Text = "Active power (kW)"

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("building hourly profile line: %w", err)
	}
	p.Add(line, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// PredictedVsActual writes a scatter of predictions against ground truth with
// the identity line for reference.
func PredictedVsActual(pred, truth []float64, title, path string) error {
	if len(pred) == 0 || len(pred) != len(truth) {
		return fmt.Errorf("need equal non-empty series, got %d predictions and %d truths",
			len(pred), len(truth))
	}

	stride := 1
	if len(pred) > maxScatterPoints {
		stride = len(pred) / maxScatterPoints
	}

	// The identity line spans the full actual range, including readings the
	// stride skips over.
	lo, hi := bounds(truth)

	var pts plotter.XYs
	for i := 0; i < len(pred); i += stride {
		pts = append(pts, plotter.XY{X: truth[i], Y: pred[i]})
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Actual (kW)"
	p.Y.Label.Text = "Predicted (kW)"

	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return fmt.Errorf("building scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(1)

	identity, err := plotter.NewLine(plotter.XYs{{X: lo, Y: lo}, {X: hi, Y: hi}})
	if err != nil {
		return fmt.Errorf("building identity line: %w", err)
	}
	identity.Color = color.RGBA{R: 200, A: 255}

	p.Add(scatter, identity, plotter.NewGrid())

	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
