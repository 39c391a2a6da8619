// Package lossplot reads a training log and presents the chart of its metric against the
// iteration count.
package lossplot

import (
	"context"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/askiada/go-lossplot/pkg/chart"
	"github.com/askiada/go-lossplot/pkg/pipeline/measure"
	"github.com/askiada/go-lossplot/pkg/series"
)

var ErrDisplayMustBeSet = errors.New("display must be set")

// Plotter extracts a series from a file and hands its chart to a display.
type Plotter struct {
	display    chart.Display
	parser     series.Parser
	chartOpts  []chart.Option
	measureRun bool
}

// Option configures a Plotter.
type Option func(p *Plotter)

// WithParser replaces the comma-separated parser. The parser is used for a single Plot call
// at a time.
func WithParser(parser series.Parser) Option {
	return func(p *Plotter) {
		p.parser = parser
	}
}

// WithChartOptions customises the chart on top of chart.DefaultConfig.
func WithChartOptions(opts ...chart.Option) Option {
	return func(p *Plotter) {
		p.chartOpts = append(p.chartOpts, opts...)
	}
}

// WithMeasure logs how long each extraction step took, at verbosity 2.
func WithMeasure() Option {
	return func(p *Plotter) {
		p.measureRun = true
	}
}

// New creates a Plotter presenting its charts on display.
func New(display chart.Display, opts ...Option) (*Plotter, error) {
	if display == nil {
		return nil, ErrDisplayMustBeSet
	}

	p := &Plotter{
		display: display,
		parser:  series.CommaParser{},
	}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Plot reads path, converts its series and shows the chart. No chart is produced when any step
// fails.
func (p *Plotter) Plot(ctx context.Context, path string) error {
	extractOpts := []series.ExtractOption{series.WithParser(p.parser)}

	var msr *measure.DefaultMeasure
	if p.measureRun {
		msr = measure.NewDefaultMeasure()
		extractOpts = append(extractOpts, series.WithPipelineOptions(measure.PipelineMeasure(msr)))
	}

	s, err := series.ExtractFile(ctx, path, extractOpts...)
	if err != nil {
		return err
	}

	klog.V(1).Infof("extracted %d samples from %s", s.Len(), path)

	if msr != nil {
		for _, line := range measure.Report(msr) {
			klog.V(2).Info(line)
		}
	}

	data, err := chart.NewData(s, chart.NewConfig(p.chartOpts...))
	if err != nil {
		return errors.Wrapf(err, "unable to build chart of %s", path)
	}

	err = p.display.Show(ctx, data)
	if err != nil {
		return errors.Wrap(err, "unable to show chart")
	}

	return nil
}
