/*
Copyright © 2015-2022 Leo Antunes <leo@costela.net>

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/costela/uflcut/gomory"
)

// MinConvergencePoints is the number of iterations below which no
// convergence chart is drawn.
const MinConvergencePoints = 2

var (
	blue    = color.RGBA{R: 30, G: 144, B: 255, A: 255}
	crimson = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	green   = color.RGBA{G: 128, A: 255}
	red     = color.RGBA{R: 214, G: 39, B: 40, A: 255}

	dashed = []vg.Length{vg.Points(6), vg.Points(3)}
)

// PlotConvergence draws the relaxation value of every iteration of the trace,
// together with the initial relaxation and the integer optimum. It reports
// whether a chart was written; traces with too few iterations are skipped.
func PlotConvergence(trace *gomory.Trace, path string) (bool, error) {
	its := trace.Iterations
	if len(its) < MinConvergencePoints {
		return false, nil
	}

	values := make(plotter.XYs, len(its))
	for i, it := range its {
		values[i].X = float64(it.Iteration)
		values[i].Y = it.LPSolution
	}
	first, last := values[0].X, values[len(values)-1].X

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gomory cut convergence: %s", trace.Instance)
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Objective value (minimisation)"
	p.X.Tick.Marker = integerTicks{}
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	line, points, err := plotter.NewLinePoints(values)
	if err != nil {
		return false, err
	}
	line.Color = blue
	points.Color = blue
	p.Add(line, points)
	p.Legend.Add("LP with cuts", line, points)

	initial, err := horizontal(first, last, its[0].LPSolution, red)
	if err != nil {
		return false, err
	}
	optimum, err := horizontal(first, last, trace.Optimum, green)
	if err != nil {
		return false, err
	}
	p.Add(initial, optimum)
	p.Legend.Add(fmt.Sprintf("Initial LP (%.2f)", its[0].LPSolution), initial)
	p.Legend.Add(fmt.Sprintf("Integer optimum (%.2f)", trace.Optimum), optimum)

	return true, save(p, 12*vg.Inch, 7*vg.Inch, path)
}

func horizontal(x0, x1, y float64, c color.Color) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y}, {X: x1, Y: y}})
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Dashes = dashed
	return l, nil
}

// PlotGapClosure draws the initial and final relative gap of every instance,
// in percent.
func PlotGapClosure(summaries []gomory.Summary, path string) error {
	initial := make(plotter.XYs, len(summaries))
	final := make(plotter.XYs, len(summaries))
	for i, s := range summaries {
		initial[i] = plotter.XY{X: float64(i), Y: 100 * s.InitialGap}
		final[i] = plotter.XY{X: float64(i), Y: 100 * s.FinalGap}
	}

	p := comparative(summaries, "Gomory cuts: relative gap reduction", "Relative gap (%)")

	li, pi, err := plotter.NewLinePoints(initial)
	if err != nil {
		return err
	}
	li.Color, li.Dashes = blue, dashed
	pi.Color = blue

	lf, pf, err := plotter.NewLinePoints(final)
	if err != nil {
		return err
	}
	lf.Color = crimson
	pf.Color = crimson
	pf.Shape = draw.BoxGlyph{}

	p.Add(li, pi, lf, pf)
	p.Legend.Add("Initial gap (%)", li, pi)
	p.Legend.Add("Final gap (%)", lf, pf)

	return save(p, 16*vg.Inch, 9*vg.Inch, path)
}

// PlotComputationalCost draws the iterations of every instance as bars and
// the total number of cuts as a line.
func PlotComputationalCost(summaries []gomory.Summary, path string) error {
	iterations := make(plotter.Values, len(summaries))
	cuts := make(plotter.XYs, len(summaries))
	for i, s := range summaries {
		iterations[i] = float64(s.TotalIterations)
		cuts[i] = plotter.XY{X: float64(i), Y: float64(s.TotalCuts)}
	}

	p := comparative(summaries, "Computational cost of Gomory cuts", "Iterations / total cuts")

	bars, err := plotter.NewBarChart(iterations, vg.Points(14))
	if err != nil {
		return err
	}
	bars.Color = color.RGBA{R: 31, G: 119, B: 180, A: 160}
	bars.LineStyle.Width = 0

	line, points, err := plotter.NewLinePoints(cuts)
	if err != nil {
		return err
	}
	line.Color, line.Dashes = red, dashed
	points.Color = red

	p.Add(bars, line, points)
	p.Legend.Add("Iterations", bars)
	p.Legend.Add("Total cuts", line, points)

	return save(p, 16*vg.Inch, 9*vg.Inch, path)
}

// comparative prepares a chart with one nominal x position per instance.
func comparative(summaries []gomory.Summary, title, ylabel string) *plot.Plot {
	names := make([]string, len(summaries))
	for i, s := range summaries {
		names[i] = s.InstanceName
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Instance"
	p.Y.Label.Text = ylabel
	p.Y.Min = 0
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

func save(p *plot.Plot, w, h vg.Length, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// integerTicks labels whole iterations only.
type integerTicks struct{}

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := math.Ceil(min), math.Floor(max)
	step := math.Max(1, math.Ceil((hi-lo)/10))
	var ticks []plot.Tick
	for v := lo; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf("%d", int(v))})
	}
	return ticks
}
