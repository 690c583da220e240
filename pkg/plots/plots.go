// Package plots renders the finished histograms of a run-set to PDF.
package plots

import (
	"fmt"
	"image/color"
	"math"
	"time"

	vetoana "github.com/mjd-veto/vetoana_go/pkg"
	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	qdcCols = 4
	qdcRows = 8
)

// Multiplicity draws the class-0 multiplicity spectrum over 2..20 panels.
func Multiplicity(path string, h *hbook.H1D) error {
	p := hplot.New()
	p.Title.Text = ""
	p.X.Label.Text = "Veto Panel Multiplicity"

	hh := hplot.NewH1D(h)
	hh.LineStyle.Color = color.RGBA{B: 255, A: 255}
	p.Add(hh)
	p.Add(hplot.NewGrid())
	p.X.Min = 1.5
	p.X.Max = 20.5

	return hplot.Save(p, 20*vg.Centimeter, 20*vg.Centimeter, path)
}

// QDCGrid draws one spectrum per channel on a 4x8 grid.
func QDCGrid(path string, title string, hs [vetoana.NumChannels]*hbook.H1D) error {
	tp := hplot.NewTiledPlot(draw.Tiles{
		Cols: qdcCols,
		Rows: qdcRows,
		PadX: 1 * vg.Millimeter,
		PadY: 1 * vg.Millimeter,
	})
	tp.Align = true

	for ch, h := range hs {
		if h == nil || ch >= len(tp.Plots) {
			continue
		}
		p := tp.Plots[ch]
		p.Title.Text = fmt.Sprintf("%s %d", title, ch)
		hh := hplot.NewH1D(h)
		hh.LineStyle.Color = color.RGBA{G: 160, A: 255}
		p.Add(hh)
	}
	return hplot.Save(tp, 12*vg.Centimeter, 24*vg.Centimeter, path)
}

// TimeSeries draws the four-panel event count per day.
func TimeSeries(path string, h *hbook.H1D) error {
	p := hplot.New()
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Muon Event Count"
	p.X.Tick.Marker = plot.TimeTicks{
		Format: "2006-01-02",
		Time: func(t float64) time.Time {
			return time.Unix(int64(t)+vetoana.RootEpochOffset, 0).UTC()
		},
	}
	p.Add(hplot.NewH1D(h))
	return hplot.Save(p, 20*vg.Centimeter, 20*vg.Centimeter, path)
}

// RunTiming draws run duration against run number and the distribution of
// run durations.
func RunTiming(path string, runs []vetoana.RunStats, maxDuration float64) error {
	tp := hplot.NewTiledPlot(draw.Tiles{Cols: 1, Rows: 2, PadY: 5 * vg.Millimeter})

	pts := make([]hbook.Point2D, 0, len(runs))
	for _, r := range runs {
		if r.Duration > 0 {
			pts = append(pts, hbook.Point2D{X: float64(r.RunNumber), Y: r.Duration})
		}
	}
	top := tp.Plots[0]
	top.Title.Text = "Run Number vs. Run Duration"
	top.X.Label.Text = "run number"
	top.Y.Label.Text = "duration (s)"
	if len(pts) > 0 {
		top.Y.Scale = plot.LogScale{}
		top.Y.Tick.Marker = plot.LogTicks{}
		top.Add(hplot.NewS2D(hbook.NewS2D(pts...)))
	}

	bottom := tp.Plots[1]
	bottom.Title.Text = "Frequency of Run Durations"
	bottom.X.Label.Text = "duration (s)"
	if maxDuration > 0 {
		dist := hbook.NewH1D(30, 0, maxDuration)
		for _, r := range runs {
			dist.Fill(r.Duration, 1)
		}
		bottom.Add(hplot.NewH1D(dist, hplot.WithLogY(true)))
		bottom.Y.Scale = plot.LogScale{}
		bottom.Y.Tick.Marker = plot.LogTicks{}
	}
	return hplot.Save(tp, 12*vg.Centimeter, 24*vg.Centimeter, path)
}

// RunComparison draws the four-panel rate of every successful set with its
// Poisson error. Sets with an undefined rate are left out.
func RunComparison(path string, results []*vetoana.SetResult) error {
	p := hplot.New()
	p.Title.Text = "Comparison of Muons/time"
	p.X.Label.Text = "Configuration"
	p.Y.Label.Text = "Counts per second"

	var pts []hbook.Point2D
	var ticks []plot.Tick
	for i, r := range results {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: r.RunSet.ExtName})
		if r.Err != nil || !r.Summary.Rate.Defined || math.IsNaN(r.Summary.Rate.Value) {
			continue
		}
		pts = append(pts, hbook.Point2D{
			X:    float64(i),
			Y:    r.Summary.Rate.Value,
			ErrY: hbook.Range{Min: r.Summary.Rate.Err, Max: r.Summary.Rate.Err},
		})
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(results)) - 0.5
	if len(pts) > 0 {
		p.Add(hplot.NewS2D(hbook.NewS2D(pts...), hplot.WithYErrBars(true)))
	}
	return hplot.Save(p, 15*vg.Centimeter, 15*vg.Centimeter, path)
}

// SetPlots renders the standard plots of one run-set next to its tables.
func SetPlots(result *vetoana.SetResult, config vetoana.Configuration) error {
	hists := result.Hists()
	set := result.RunSet
	mod := config.FileModifier

	if err := Multiplicity(vetoana.SetOutputPath(config, set, "multip"+mod+".pdf"), hists.Multip[vetoana.ClassWeak]); err != nil {
		return fmt.Errorf("error plotting multiplicity: %w", err)
	}
	if err := QDCGrid(vetoana.SetOutputPath(config, set, "qdc"+mod+".pdf"), "hcqdc", hists.CutQDC); err != nil {
		return fmt.Errorf("error plotting QDC: %w", err)
	}
	if err := TimeSeries(vetoana.SetOutputPath(config, set, "time"+mod+".pdf"), hists.Time); err != nil {
		return fmt.Errorf("error plotting time series: %w", err)
	}
	if config.RunTiming {
		path := vetoana.SetOutputPath(config, set, "run-timing.pdf")
		if err := RunTiming(path, result.Summary.Runs, result.Summary.MaxRunDuration); err != nil {
			return fmt.Errorf("error plotting run timing: %w", err)
		}
	}
	return nil
}
