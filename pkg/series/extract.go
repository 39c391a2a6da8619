package series

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-lossplot/pkg/pipeline"
	"github.com/askiada/go-lossplot/pkg/pipeline/model"
)

type line struct {
	number int
	text   string
}

type extractOptions struct {
	parser      Parser
	pipelineOps []model.PipelineOption
}

// ExtractOption configures Extract.
type ExtractOption func(o *extractOptions)

// WithParser replaces the default CommaParser.
func WithParser(parser Parser) ExtractOption {
	return func(o *extractOptions) {
		o.parser = parser
	}
}

// WithPipelineOptions attaches options, such as a measure, to the extraction pipeline.
func WithPipelineOptions(opts ...model.PipelineOption) ExtractOption {
	return func(o *extractOptions) {
		o.pipelineOps = append(o.pipelineOps, opts...)
	}
}

// ExtractFile opens path and extracts its series. The file is closed before ExtractFile
// returns, whatever the outcome.
func ExtractFile(ctx context.Context, path string, opts ...ExtractOption) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to open %s", path)
	}
	defer file.Close()

	s, err := Extract(ctx, file, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to extract series from %s", path)
	}

	return s, nil
}

// Extract reads rd line by line and returns one sample per record, in input order. The first
// malformed line aborts the extraction and no series is returned.
func Extract(ctx context.Context, rd io.Reader, opts ...ExtractOption) (*Series, error) {
	o := &extractOptions{parser: CommaParser{}}
	for _, opt := range opts {
		opt(o)
	}

	if r, ok := o.parser.(Resetter); ok {
		r.Reset()
	}

	pipe, err := pipeline.New(ctx, o.pipelineOps...)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create pipeline")
	}

	lines, err := pipeline.AddRootStep(pipe, "read", func(ctx context.Context, rootChan chan<- line) error {
		return readLines(ctx, rd, rootChan)
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add read step")
	}

	records, err := pipeline.AddStepOneToMany(pipe, "parse", lines, func(_ context.Context, l line) ([]Record, error) {
		rec, ok, err := o.parser.Parse(l.number, l.text)
		if err != nil || !ok {
			return nil, err
		}

		return []Record{rec}, nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add parse step")
	}

	s := &Series{X: []string{}, Y: []string{}}

	err = pipeline.AddSink(pipe, "collect", records, func(_ context.Context, rec Record) error {
		s.Append(rec.Label, rec.Value)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to add collect step")
	}

	err = pipe.Run()
	if err != nil {
		return nil, err
	}

	return s, nil
}

func readLines(ctx context.Context, rd io.Reader, rootChan chan<- line) error {
	reader := bufio.NewReader(rd)

	number := 0
	for {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return errors.Wrapf(err, "unable to read line %d", number+1)
		}

		if text == "" && err != nil {
			return nil
		}

		number++

		select {
		case <-ctx.Done():
			return ctx.Err() //nolint:wrapcheck // wrapped with the step name
		case rootChan <- line{number: number, text: strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")}:
		}

		if err != nil {
			return nil
		}
	}
}
