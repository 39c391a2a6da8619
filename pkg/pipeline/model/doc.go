// Package model provides the data structures shared by the pipeline package and its options.
// It defines the step descriptors passed between stages and the hooks a pipeline option
// implements to observe a run.
package model
