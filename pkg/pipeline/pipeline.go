package pipeline

import (
	"context"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-lossplot/pkg/pipeline/model"
)

// Pipeline is a pipeline of steps.
type Pipeline struct {
	ctx       context.Context //nolint:containedctx // stages are started before Run is called
	cancel    context.CancelFunc
	errs      *stageErrors
	topology  graph.Graph[string, string]
	opts      []model.PipelineOption
	startTime time.Time
}

// New creates a new pipeline. Stages stop as soon as ctx is done.
func New(ctx context.Context, opts ...model.PipelineOption) (*Pipeline, error) {
	dCtx, cancel := context.WithCancel(ctx)

	pipe := &Pipeline{
		ctx:       dCtx,
		cancel:    cancel,
		errs:      &stageErrors{},
		topology:  graph.New(graph.StringHash, graph.Directed(), graph.Acyclic()),
		opts:      opts,
		startTime: time.Now(),
	}

	for _, name := range []string{model.StartStep.Details.Name, model.EndStep.Details.Name} {
		err := pipe.topology.AddVertex(name)
		if err != nil {
			cancel()

			return nil, errors.Wrapf(err, "unable to add %s vertex", name)
		}
	}

	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			cancel()

			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return pipe, nil
}

// link registers step in the topology, downstream of parent.
func (p *Pipeline) link(parent, step *model.StepInfo) error {
	err := p.topology.AddVertex(step.Name)
	if err != nil {
		if errors.Is(err, graph.ErrVertexAlreadyExists) {
			return errors.Wrapf(ErrDuplicateStep, "step %q", step.Name)
		}

		return errors.Wrapf(err, "unable to add step %s", step.Name)
	}

	err = p.topology.AddEdge(parent.Name, step.Name)
	if err != nil {
		return errors.Wrapf(err, "unable to link %s to %s", parent.Name, step.Name)
	}

	return nil
}

func (p *Pipeline) linkEnd(sink *model.StepInfo) error {
	err := p.topology.AddEdge(sink.Name, model.EndStep.Details.Name)
	if err != nil {
		return errors.Wrapf(err, "unable to link %s to the end", sink.Name)
	}

	return nil
}

// Steps returns the name of every stage in flow order, starting with the start vertex and
// ending with the end vertex.
func (p *Pipeline) Steps() ([]string, error) {
	steps, err := graph.TopologicalSort(p.topology)
	if err != nil {
		return nil, errors.Wrap(err, "unable to sort steps")
	}

	return steps, nil
}

// Run waits for the pipeline to finish. Remaining stages are cancelled when it returns.
func (p *Pipeline) Run() error {
	defer p.cancel()

	err := p.errs.first()
	if err != nil {
		return err
	}

	return p.finishRun()
}

func (p *Pipeline) finishRun() error {
	for _, opt := range p.opts {
		err := opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}
