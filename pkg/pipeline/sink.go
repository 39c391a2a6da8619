package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-lossplot/pkg/pipeline/model"
)

func prepareSink[I any](pipe *Pipeline, name string, input *model.Step[I]) (*model.StepInfo, error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil || input.Details == nil {
		return nil, ErrInputMustBeSet
	}

	details := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}

	err := pipe.link(input.Details, details)
	if err != nil {
		return nil, err
	}

	err = pipe.linkEnd(details)
	if err != nil {
		return nil, err
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareSink(input.Details, details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before sink function")
		}
	}

	return details, nil
}

// AddSink adds the step consuming every element of input. It is the only sequential step of
// the pipeline: sinkFn is never called concurrently.
func AddSink[I any](pipe *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	details, err := prepareSink(pipe, name, input)
	if err != nil {
		return err
	}

	errC := pipe.errs.watch(name)

	go func() {
		defer close(errC)

		err := consume(pipe, input, details, sinkFn)
		if err != nil {
			errC <- err
		}
	}()
	return nil
}

func consume[I any](pipe *Pipeline, input *model.Step[I], details *model.StepInfo, sinkFn func(ctx context.Context, input I) error) error {
	for {
		startInputChan := time.Now()
		select {
		case <-pipe.ctx.Done():
			return pipe.ctx.Err() //nolint:wrapcheck // wrapped with the sink name by the merger
		case in, ok := <-input.Output:
			if !ok {
				for _, opt := range pipe.opts {
					err := opt.AfterSink(details, time.Since(pipe.startTime))
					if err != nil {
						return errors.Wrap(err, "unable to run after sink function")
					}
				}

				return nil
			}

			endInputChan := time.Since(startInputChan)
			startFn := time.Now()

			err := sinkFn(pipe.ctx, in)
			if err != nil {
				return err
			}

			endFn := time.Since(startFn)

			for _, opt := range pipe.opts {
				err := opt.OnSinkOutput(input.Details, details, endInputChan, endFn)
				if err != nil {
					return errors.Wrap(err, "unable to run on sink output function")
				}
			}
		}
	}
}
