// Package pipeline implements the application service that connects a
// processor to a sink.
package pipeline

import (
	"context"

	"go.trai.ch/portway/internal/core/ports"
)

// Service runs inputs through a processor and hands each result to a sink.
// Both collaborators are fixed at construction.
type Service[In, Out any] struct {
	processor ports.Processor[In, Out]
	sink      ports.Sink[Out]
}

var _ ports.Executor[string] = (*Service[string, string])(nil)

// New creates a Service from a processor and a sink.
func New[In, Out any](processor ports.Processor[In, Out], sink ports.Sink[Out]) *Service[In, Out] {
	return &Service[In, Out]{
		processor: processor,
		sink:      sink,
	}
}

// Execute processes input and sends the result to the sink.
// Errors from either stage are returned as is. The sink is not called when processing fails.
func (s *Service[In, Out]) Execute(ctx context.Context, input In) error {
	result, err := s.processor.Process(ctx, input)
	if err != nil {
		return err
	}
	return s.sink.Send(ctx, result)
}
