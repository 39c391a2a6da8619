// Package chart renders a series as a line chart with a fixed vertical axis.
package chart

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot/vg"
	"gopkg.in/go-playground/colors.v1"
)

const (
	DefaultYMin   = 0
	DefaultYMax   = 0.5
	DefaultXLabel = "#iterations"
	DefaultYLabel = "score"
	DefaultColor  = "#1f77b4"
)

// Config describes the axes and the look of a chart.
type Config struct {
	Title  string
	XLabel string
	YLabel string
	// YMin and YMax are the fixed bounds of the vertical axis. Samples outside of them are
	// kept in the data, they are only outside the drawing area.
	YMin  float64
	YMax  float64
	Color string
	// Width and Height are the size of file outputs.
	Width  vg.Length
	Height vg.Length
}

// DefaultConfig returns the configuration of a loss chart: no title, y axis fixed to [0, 0.5].
func DefaultConfig() Config {
	return Config{
		XLabel: DefaultXLabel,
		YLabel: DefaultYLabel,
		YMin:   DefaultYMin,
		YMax:   DefaultYMax,
		Color:  DefaultColor,
		Width:  6.4 * vg.Inch,
		Height: 4.8 * vg.Inch,
	}
}

// Option modifies a Config.
type Option func(c *Config)

func WithTitle(title string) Option {
	return func(c *Config) {
		c.Title = title
	}
}

func WithLabels(xLabel, yLabel string) Option {
	return func(c *Config) {
		c.XLabel = xLabel
		c.YLabel = yLabel
	}
}

func WithYRange(yMin, yMax float64) Option {
	return func(c *Config) {
		c.YMin = yMin
		c.YMax = yMax
	}
}

// WithColor sets the line colour. Any notation understood by go-playground/colors is accepted
// (#rgb, #rrggbb, rgb(), rgba()).
func WithColor(lineColor string) Option {
	return func(c *Config) {
		c.Color = lineColor
	}
}

func WithSize(width, height vg.Length) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// NewConfig applies opts on top of DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// Validate checks the range, size and colour of c.
func (c Config) Validate() error {
	if !(c.YMin < c.YMax) {
		return errors.Wrapf(ErrInvalidRange, "[%g, %g]", c.YMin, c.YMax)
	}

	if c.Width <= 0 || c.Height <= 0 {
		return errors.Wrapf(ErrInvalidSize, "%v x %v", c.Width, c.Height)
	}

	_, err := c.LineColor()

	return err
}

// LineColor parses Color.
func (c Config) LineColor() (color.NRGBA, error) {
	parsed, err := colors.Parse(c.Color)
	if err != nil {
		return color.NRGBA{}, errors.Wrapf(err, "unable to parse colour %q", c.Color)
	}

	rgba := parsed.ToRGBA()

	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: uint8(rgba.A * 255)}, nil //nolint:gosec // alpha is within [0, 1]
}
