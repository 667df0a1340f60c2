// Package passthrough provides the identity processor.
package passthrough

import (
	"context"

	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
)

// Identity is a processor that returns its input unchanged.
// The zero value of T counts as undefined and is rejected.
type Identity[T comparable] struct{}

var _ ports.Processor[string, string] = Identity[string]{}

// New creates an identity processor.
func New[T comparable]() Identity[T] {
	return Identity[T]{}
}

// Process returns input, or domain.ErrUndefinedInput if input is the zero value.
func (Identity[T]) Process(_ context.Context, input T) (T, error) {
	var zero T
	if input == zero {
		return zero, domain.ErrUndefinedInput
	}
	return input, nil
}
