// Package memo implements a processor decorator that caches results per input.
package memo

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.trai.ch/portway/internal/core/ports"
)

// Processor wraps another processor and reuses its result for repeated inputs
// until the entry expires. Errors are never cached.
type Processor[Out any] struct {
	next  ports.Processor[string, Out]
	cache *gocache.Cache
}

// New wraps next with a cache whose entries live for ttl.
func New[Out any](next ports.Processor[string, Out], ttl time.Duration) *Processor[Out] {
	return &Processor[Out]{
		next:  next,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Process returns the cached result for input, or computes and caches it.
func (p *Processor[Out]) Process(ctx context.Context, input string) (Out, error) {
	if v, ok := p.cache.Get(input); ok {
		if out, ok := v.(Out); ok {
			return out, nil
		}
	}

	out, err := p.next.Process(ctx, input)
	if err != nil {
		return out, err
	}

	p.cache.SetDefault(input, out)
	return out, nil
}
