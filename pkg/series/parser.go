package series

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

var ErrMalformedLine = errors.New("line must contain at least two comma-separated fields")

// Parser extracts a record from a line of the input. ok is false when the line carries no
// sample and must be skipped.
type Parser interface {
	Parse(lineNo int, line string) (rec Record, ok bool, err error)
}

// Resetter is implemented by parsers that carry state from one line to the next. Extract calls
// Reset before the first line so every extraction starts from a clean parser.
type Resetter interface {
	Reset()
}

// CommaParser takes the first two comma-separated fields of every line. Any additional field
// is ignored.
type CommaParser struct{}

func (CommaParser) Parse(lineNo int, line string) (Record, bool, error) {
	fields := strings.SplitN(line, ",", 3)
	if len(fields) < 2 {
		return Record{}, false, errors.Wrapf(ErrMalformedLine, "line %d", lineNo)
	}

	return Record{Line: lineNo, Label: fields[0], Value: fields[1]}, true, nil
}

// Metric selects the value a CaffeParser extracts.
type Metric string

const (
	MetricLoss     Metric = "loss"
	MetricAccuracy Metric = "accuracy"
)

var (
	lossPattern      = regexp.MustCompile(`Iteration ([0-9]+), loss = ([0-9.e-]+)$`)
	accuracyPattern  = regexp.MustCompile(`accuracy = ([0-9.]+)$`)
	iterationPattern = regexp.MustCompile(`Iteration ([0-9]+),`)
)

// CaffeParser reads solver logs such as
//
//	I0101 12:00:00.000000  1234 solver.cpp:228] Iteration 100, loss = 0.25
//	I0101 12:00:01.000000  1234 solver.cpp:404]     Test net output #0: accuracy = 0.91
//
// Lines that do not carry the selected metric are skipped. Accuracy values are paired with the
// last iteration seen before them, so a CaffeParser must see the lines in order and must not
// be shared between concurrent extractions. Reset forgets that iteration.
type CaffeParser struct {
	Metric Metric

	iteration string
}

func (p *CaffeParser) Reset() {
	p.iteration = ""
}

func (p *CaffeParser) Parse(lineNo int, line string) (Record, bool, error) {
	if p.Metric == MetricAccuracy {
		if m := iterationPattern.FindStringSubmatch(line); m != nil {
			p.iteration = m[1]

			return Record{}, false, nil
		}

		m := accuracyPattern.FindStringSubmatch(line)
		if m == nil || p.iteration == "" {
			return Record{}, false, nil
		}

		return Record{Line: lineNo, Label: p.iteration, Value: m[1]}, true, nil
	}

	m := lossPattern.FindStringSubmatch(line)
	if m == nil {
		return Record{}, false, nil
	}

	return Record{Line: lineNo, Label: m[1], Value: m[2]}, true, nil
}

var (
	_ Parser   = CommaParser{}
	_ Parser   = (*CaffeParser)(nil)
	_ Resetter = (*CaffeParser)(nil)
)
