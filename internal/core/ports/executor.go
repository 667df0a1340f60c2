package ports

import "context"

// Executor is the driving port of a pipeline. Callers hand it one input and
// it runs that input through processing and delivery.
type Executor[In any] interface {
	// Execute processes input and delivers the result.
	Execute(ctx context.Context, input In) error
}
