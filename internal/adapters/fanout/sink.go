// Package fanout implements a sink that delivers one result to several sinks.
package fanout

import (
	"context"

	"go.trai.ch/portway/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// Sink forwards every result to each of its targets exactly once.
// Send returns only after all deliveries have finished.
type Sink[T any] struct {
	targets  []ports.Sink[T]
	parallel bool
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// Sequential delivers to targets in order and stops at the first error.
func Sequential[T any](targets ...ports.Sink[T]) *Sink[T] {
	return &Sink[T]{targets: targets}
}

// Parallel delivers to all targets concurrently. A failure cancels the
// context passed to the remaining deliveries; the first error is returned.
func Parallel[T any](targets ...ports.Sink[T]) *Sink[T] {
	return &Sink[T]{targets: targets, parallel: true}
}

// Send delivers result to every target.
func (s *Sink[T]) Send(ctx context.Context, result T) error {
	if !s.parallel {
		for _, target := range s.targets {
			if err := target.Send(ctx, result); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, target := range s.targets {
		g.Go(func() error {
			return target.Send(gctx, result)
		})
	}
	return g.Wait()
}
