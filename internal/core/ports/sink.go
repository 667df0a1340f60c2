package ports

import "context"

// Sink is the output port of a pipeline. It performs the externally
// observable effect for a processed result.
//
//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks
type Sink[T any] interface {
	// Send delivers a result. It must not return before the delivery has completed.
	Send(ctx context.Context, result T) error
}
