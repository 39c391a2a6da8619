// Package pipeline provides a staged data-flow engine.
//
// A pipeline is built from a root step producing elements, any number of intermediate steps
// transforming them and a sink consuming them. Stages are connected by channels and run in
// their own goroutines as soon as they are added; Run waits for all of them.
//
// The pipeline stops on the first error. The error is returned from Run wrapped with the name
// of the stage that produced it and every other stage is cancelled through the pipeline
// context.
//
// With the default concurrency of one worker per step, elements reach the sink in the order
// the root step produced them.
package pipeline
