// Package measure records how long each step of a pipeline spends computing and waiting.
package measure

import "time"

// Measure holds one Metric per step.
type Measure interface {
	AddMetric(name string, concurrent int) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric aggregates the durations of a single step.
type Metric interface {
	AddDuration(elapsed time.Duration)
	AddTransportDuration(inputStepName string, elapsed time.Duration)
	AVGDuration() time.Duration
	AVGTransportDuration() map[string]time.Duration
	Total() int64
	SetTotalDuration(endDuration time.Duration)
	GetTotalDuration() time.Duration
}
