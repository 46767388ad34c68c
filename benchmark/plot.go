package benchmark

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/gdlearn/pkg/errors"
)

// LossSeries is one training-loss curve, one value per iteration.
type LossSeries struct {
	Name string
	Loss []float64
}

// PlotLoss draws every series as a line over the iteration index and saves
// the chart to path. The image format follows the file extension.
func PlotLoss(path string, series ...LossSeries) error {
	if len(series) == 0 {
		return errors.NewValueError("PlotLoss", "no loss series to plot")
	}

	p := plot.New()
	p.Title.Text = "Training loss"
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "loss"
	p.Add(plotter.NewGrid())

	for i, s := range series {
		if len(s.Loss) == 0 {
			return errors.NewValueError("PlotLoss", "series "+s.Name+" is empty")
		}
		pts := make(plotter.XYs, len(s.Loss))
		for j, v := range s.Loss {
			pts[j].X = float64(j)
			pts[j].Y = v
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return errors.Wrapf(err, "plot series %s", s.Name)
		}
		l.Color = plotutil.Color(i)
		l.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(s.Name, l)
	}

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save loss plot %s", path)
	}
	return nil
}
