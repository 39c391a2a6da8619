package chart

import (
	"io"
	"math"
	"strconv"

	"github.com/pkg/errors"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	goChartDPI = 100
	// maxXTicks bounds the ticks generated for integral x values.
	maxXTicks = 10
)

// GoChartRenderer draws charts with go-chart. Format is png or svg.
type GoChartRenderer struct {
	Format string
}

func (r GoChartRenderer) provider() (gochart.RendererProvider, error) {
	switch r.Format {
	case "png":
		return gochart.PNG, nil
	case "svg":
		return gochart.SVG, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", r.Format)
	}
}

func (r GoChartRenderer) Render(w io.Writer, data *Data) error {
	provider, err := r.provider()
	if err != nil {
		return err
	}

	lineColor, err := data.Config.LineColor()
	if err != nil {
		return err
	}

	xs := make([]float64, len(data.Points))
	ys := make([]float64, len(data.Points))

	for i, pt := range data.Points {
		xs[i] = pt.X
		ys[i] = pt.Y
	}

	// go-chart needs two distinct x values to compute a range.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}

	ticks := integerTicks(xs)
	if data.Ticks != nil {
		ticks = make([]gochart.Tick, 0, len(data.Ticks))
		for _, tick := range data.Ticks {
			ticks = append(ticks, gochart.Tick{Value: tick.Value, Label: tick.Label})
		}
	}

	graph := gochart.Chart{
		Title:  data.Config.Title,
		Width:  int(data.Config.Width.Dots(goChartDPI)),
		Height: int(data.Config.Height.Dots(goChartDPI)),
		DPI:    goChartDPI,
		XAxis: gochart.XAxis{
			Name:  data.Config.XLabel,
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{
			Name:  data.Config.YLabel,
			Range: &gochart.ContinuousRange{Min: data.Config.YMin, Max: data.Config.YMax},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: drawing.Color{R: lineColor.R, G: lineColor.G, B: lineColor.B, A: lineColor.A},
					StrokeWidth: 2,
				},
			},
		},
	}

	err = graph.Render(provider, w)
	if err != nil {
		return errors.Wrapf(err, "unable to render %s chart", r.Format)
	}

	return nil
}

// integerTicks labels iteration counts without decimals. go-chart would otherwise place ticks at
// fractional positions. It returns nil when any value is not integral.
func integerTicks(xs []float64) []gochart.Tick {
	lo, hi := xs[0], xs[0]
	for _, x := range xs {
		if x != math.Trunc(x) {
			return nil
		}

		lo = min(lo, x)
		hi = max(hi, x)
	}

	step := 1.0
	for i := 0; (hi-lo)/step > maxXTicks; i++ {
		step = []float64{2, 5, 10}[i%3] * math.Pow(10, float64(i/3))
	}

	var ticks []gochart.Tick
	for v := math.Ceil(lo/step) * step; v <= hi; v += step {
		ticks = append(ticks, gochart.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 0, 64)})
	}

	return ticks
}

var _ Renderer = GoChartRenderer{}
