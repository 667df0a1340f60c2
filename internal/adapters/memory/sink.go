// Package memory implements a sink that records results in process memory.
package memory

import (
	"context"
	"slices"
	"sync"

	"go.trai.ch/portway/internal/core/ports"
)

// Sink records every result it receives. It is safe for concurrent use.
type Sink[T any] struct {
	mu      sync.Mutex
	records []T
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// New creates an empty recording sink.
func New[T any]() *Sink[T] {
	return &Sink[T]{}
}

// Send appends result to the recorded values.
func (s *Sink[T]) Send(_ context.Context, result T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, result)
	return nil
}

// Records returns a copy of the recorded values in arrival order.
func (s *Sink[T]) Records() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Reset discards all recorded values.
func (s *Sink[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}
