package pipeline

import "github.com/askiada/go-lossplot/pkg/pipeline/model"

// StepOption configures a step before it starts.
type StepOption[O any] func(s *model.Step[O])

// StepConcurrency sets the number of workers of a step. Elements are only kept in order with a
// single worker.
func StepConcurrency[O any](concurrent int) StepOption[O] {
	return func(s *model.Step[O]) {
		s.Details.Concurrent = concurrent
	}
}
