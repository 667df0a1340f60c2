// Package ports declares the interfaces the pipeline core depends on.
package ports

import "context"

// Processor is the business logic port of a pipeline.
// Implementations document their own failure modes and report them as errors.
//
//go:generate mockgen -source=processor.go -destination=mocks/mock_processor.go -package=mocks
type Processor[In, Out any] interface {
	// Process turns an input into a result.
	Process(ctx context.Context, input In) (Out, error)
}
