package chart

import (
	"io"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// GonumRenderer draws charts with gonum/plot. Format is one of png, jpg, jpeg, tif, tiff, svg,
// pdf or eps. Lines leaving the vertical axis are clipped.
type GonumRenderer struct {
	Format string
}

func (r GonumRenderer) Render(w io.Writer, data *Data) error {
	lineColor, err := data.Config.LineColor()
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = data.Config.Title
	p.X.Label.Text = data.Config.XLabel
	p.Y.Label.Text = data.Config.YLabel

	pts := make(plotter.XYs, len(data.Points))
	for i, pt := range data.Points {
		pts[i].X = pt.X
		pts[i].Y = pt.Y
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return errors.Wrap(err, "unable to create line")
	}

	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)

	// Add grows the axes to the data, the vertical bounds are fixed afterwards.
	p.Y.Min = data.Config.YMin
	p.Y.Max = data.Config.YMax

	if data.Ticks != nil {
		ticks := make(plot.ConstantTicks, len(data.Ticks))
		for i, tick := range data.Ticks {
			ticks[i] = plot.Tick{Value: tick.Value, Label: tick.Label}
		}

		p.X.Tick.Marker = ticks
	}

	wt, err := p.WriterTo(data.Config.Width, data.Config.Height, r.Format)
	if err != nil {
		return errors.Wrapf(err, "unable to create %s writer", r.Format)
	}

	_, err = wt.WriteTo(w)
	if err != nil {
		return errors.Wrapf(err, "unable to write %s chart", r.Format)
	}

	return nil
}

var _ Renderer = GonumRenderer{}
