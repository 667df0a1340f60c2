// Package console implements a sink that prints each result as a line of text.
package console

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/portway/internal/ui/output"
	"go.trai.ch/portway/internal/ui/style"
	"go.trai.ch/zerr"
)

// Sink writes "Sent to <label>: <result>" lines to a writer.
// The prefix is coloured only when the writer is a colour terminal, so
// redirected output always carries the plain line.
type Sink[T any] struct {
	label string
	out   *termenv.Output
	mu    sync.Mutex
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// New creates a console sink writing to w (stdout if nil) under the given label.
func New[T any](w io.Writer, label string) *Sink[T] {
	if w == nil {
		w = os.Stdout
	}
	if label == "" {
		label = domain.DefaultSinkLabel
	}
	return &Sink[T]{
		label: label,
		out:   output.New(w, termenv.WithProfile(profileFor(w))),
	}
}

func profileFor(w io.Writer) termenv.Profile {
	if !output.IsTerminal(w) {
		return termenv.Ascii
	}
	return output.ColorProfile()
}

// Send prints result.
func (s *Sink[T]) Send(_ context.Context, result T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := output.Paint(s.out, "Sent to "+s.label+":", string(style.Accent))
	if _, err := fmt.Fprintf(s.out, "%s %v\n", prefix, result); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "sink", s.label)
	}
	return nil
}
