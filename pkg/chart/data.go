package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-lossplot/pkg/series"
)

var (
	ErrEmptySeries       = errors.New("series is empty")
	ErrValueNotNumeric   = errors.New("value is not a finite number")
	ErrInvalidRange      = errors.New("y axis minimum must be lower than its maximum")
	ErrInvalidSize       = errors.New("chart size must be positive")
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// Point is a sample in chart coordinates.
type Point struct {
	X, Y float64
}

// Tick labels a position of the horizontal axis.
type Tick struct {
	Value float64
	Label string
}

// Data is the numeric form of a series, ready to be rendered.
type Data struct {
	Config Config
	Points []Point
	// Ticks is set when the iteration labels are not all numbers: samples are then placed at
	// 0..n-1 and labelled with their text.
	Ticks []Tick
	// Labels are the iteration labels as read from the input.
	Labels []string
}

// NewData converts s. Values are parsed as float64 after trimming surrounding spaces and must
// be finite; the series itself is left untouched.
func NewData(s *series.Series, cfg Config) (*Data, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid chart configuration")
	}

	if s == nil || s.Len() == 0 {
		return nil, ErrEmptySeries
	}

	data := &Data{
		Config: cfg,
		Points: make([]Point, s.Len()),
		Labels: s.X,
	}

	for i, value := range s.Y {
		y, ok := parseFinite(value)
		if !ok {
			return nil, errors.Wrapf(ErrValueNotNumeric, "sample %d: %q", i+1, value)
		}

		data.Points[i].Y = y
	}

	categorical := false

	for i, label := range s.X {
		x, ok := parseFinite(label)
		if !ok {
			categorical = true

			break
		}

		data.Points[i].X = x
	}

	if categorical {
		data.Ticks = make([]Tick, s.Len())
		for i, label := range s.X {
			data.Points[i].X = float64(i)
			data.Ticks[i] = Tick{Value: float64(i), Label: label}
		}
	}

	return data, nil
}

// InRange reports whether y is within the vertical axis.
func (d *Data) InRange(y float64) bool {
	return y >= d.Config.YMin && y <= d.Config.YMax
}

func parseFinite(text string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return f, true
}
