package pipeline

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
	ErrDuplicateStep     = errors.New("step name already used")
)

// stageResult carries the outcome of one stage: at most one error, then the channel is closed.
type stageResult struct {
	stage string
	errC  <-chan error
}

// stageErrors collects the result channel of every stage added to a pipeline.
type stageErrors struct {
	mu      sync.Mutex
	results []stageResult
}

// watch registers stage and returns the channel its goroutine reports to. The caller closes it
// once the stage is done.
func (se *stageErrors) watch(stage string) chan error {
	errC := make(chan error, 1)

	se.mu.Lock()
	defer se.mu.Unlock()
	se.results = append(se.results, stageResult{stage: stage, errC: errC})

	return errC
}

// first blocks until every stage is done and returns nil, or returns the first stage error as
// soon as it is reported.
func (se *stageErrors) first() error {
	se.mu.Lock()
	results := append([]stageResult(nil), se.results...)
	se.mu.Unlock()

	for err := range mergeErrors(results...) {
		if err != nil {
			return err
		}
	}

	return nil
}

// mergeErrors fans the stage results into a single channel, each error prefixed with the name of
// its stage. The output is sized so that no stage blocks after first has returned.
func mergeErrors(results ...stageResult) <-chan error {
	var wg sync.WaitGroup

	out := make(chan error, len(results))

	wg.Add(len(results))

	for _, res := range results {
		go func() {
			defer wg.Done()

			if res.errC == nil {
				return
			}

			for err := range res.errC {
				out <- errors.Wrap(err, res.stage)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
