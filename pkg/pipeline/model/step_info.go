package model

type stepType string

const (
	RootStepType   stepType = "root"
	NormalStepType stepType = "step"
	SinkStepType   stepType = "sink"
)

// StepInfo describes a stage of the pipeline.
type StepInfo struct {
	Type       stepType
	Name       string
	Concurrent int
}

var (
	StartStep = &Step[any]{Details: &StepInfo{Name: "start"}}
	EndStep   = &Step[any]{Details: &StepInfo{Name: "end"}}
)

// Step is the output side of a stage. Downstream stages read from Output.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}
