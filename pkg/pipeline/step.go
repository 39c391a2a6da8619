package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-lossplot/pkg/pipeline/model"
)

func notifyStepOutput(opts []model.PipelineOption, parent, step *model.StepInfo, iterationDuration, computationDuration time.Duration) error {
	for _, opt := range opts {
		err := opt.OnStepOutput(parent, step, iterationDuration, computationDuration)
		if err != nil {
			return errors.Wrap(err, "unable to run on step output function")
		}
	}

	return nil
}

func sequentialOneToManyFn[I any, O any](ctx context.Context, goIdx int, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	for {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "go routine %d", goIdx)
		}

		start := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			startFn := time.Now()

			outs, err := oneToManyFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}

			endFn := time.Since(startFn)

			for _, out := range outs {
				// we check the context again to make sure all go routines currently running
				// stop to add new elements to the pipeline
				select {
				case <-ctx.Done():
					return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
				case output.Output <- out:
				}

				err := notifyStepOutput(opts, input.Details, output.Details, time.Since(start)-endFn, endFn)
				if err != nil {
					return err
				}
			}
		}
	}
}

func concurrentOneToManyFn[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)
	// starts many consumers concurrently
	// each consumer stops as soon as an error happens
	for goIdx := range output.Details.Concurrent {
		errGrp.Go(func() error {
			return sequentialOneToManyFn(dCtx, goIdx, opts, input, output, oneToManyFn)
		})
	}

	return errGrp.Wait() //nolint:wrapcheck // errors are already wrapped by the consumers
}

func oneToMany[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToManyFn func(context.Context, I) ([]O, error)) error {
	if output.Details.Concurrent <= 1 {
		output.Details.Concurrent = 1

		return sequentialOneToManyFn(ctx, 0, opts, input, output, oneToManyFn)
	}

	return concurrentOneToManyFn(ctx, opts, input, output, oneToManyFn)
}

func oneToOne[I any, O any](ctx context.Context, opts []model.PipelineOption, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	return oneToMany(ctx, opts, input, output, func(ctx context.Context, in I) ([]O, error) {
		out, err := oneToOneFn(ctx, in)
		if err != nil {
			return nil, err
		}

		return []O{out}, nil
	})
}

func prepareStep[I, O any](pipe *Pipeline, name string, input *model.Step[I], opts ...StepOption[O]) (*model.Step[O], error) {
	if pipe == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil || input.Details == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
		Output: make(chan O),
	}
	for _, opt := range opts {
		opt(step)
	}

	err := pipe.link(input.Details, step.Details)
	if err != nil {
		return nil, err
	}

	for _, opt := range pipe.opts {
		err := opt.PrepareStep(input.Details, step.Details)
		if err != nil {
			return nil, errors.Wrap(err, "unable to run before step function")
		}
	}

	return step, nil
}

func addStep[I any, O any](pipe *Pipeline, input *model.Step[I], step *model.Step[O], stepToStepFn func(ctx context.Context, input *model.Step[I], output *model.Step[O]) error) *model.Step[O] {
	errC := pipe.errs.watch(step.Details.Name)

	go func() {
		defer func() {
			close(errC)
			close(step.Output)
		}()

		err := stepToStepFn(pipe.ctx, input, step)
		if err != nil {
			errC <- err
		}
	}()
	return step
}

// AddStepOneToOne adds a step emitting exactly one element for each input element.
func AddStepOneToOne[I any, O any](pipe *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return oneToOne(ctx, pipe.opts, in, out, oneToOneFn)
	}), nil
}

// AddStepOneToMany adds a step emitting zero or more elements for each input element.
func AddStepOneToMany[I any, O any](pipe *Pipeline, name string, input *model.Step[I], oneToManyFn func(context.Context, I) ([]O, error), opts ...StepOption[O]) (*model.Step[O], error) {
	step, err := prepareStep(pipe, name, input, opts...)
	if err != nil {
		return nil, err
	}

	return addStep(pipe, input, step, func(ctx context.Context, in *model.Step[I], out *model.Step[O]) error {
		return oneToMany(ctx, pipe.opts, in, out, oneToManyFn)
	}), nil
}
