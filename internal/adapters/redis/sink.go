// Package redis implements a sink that pushes deliveries onto a Redis list.
package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sink appends each result, wrapped in a domain.Delivery, to a Redis list.
type Sink[T any] struct {
	client *goredis.Client
	key    string
	name   string
	owned  bool
	clock  func() time.Time
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// New creates a sink on an existing client. The caller keeps ownership of client.
func New[T any](client *goredis.Client, key, name string) *Sink[T] {
	if key == "" {
		key = domain.DefaultRedisKey
	}
	return &Sink[T]{client: client, key: key, name: name, clock: time.Now}
}

// Dial connects to addr and verifies the connection with PING.
// The returned sink owns the client and closes it on Close.
func Dial[T any](ctx context.Context, addr, key, name string) (*Sink[T], error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "addr", addr)
	}

	s := New[T](client, key, name)
	s.owned = true
	return s, nil
}

// Send pushes result onto the list.
func (s *Sink[T]) Send(ctx context.Context, result T) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkMarshalFailed.Error())
	}

	entry, err := json.Marshal(domain.Delivery{
		ID:        uuid.NewString(),
		Sink:      s.name,
		Payload:   payload,
		CreatedAt: s.clock().UTC(),
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkMarshalFailed.Error())
	}

	if err := s.client.RPush(ctx, s.key, entry).Err(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "key", s.key)
	}
	return nil
}

// List returns every delivery currently on the list, oldest first.
func (s *Sink[T]) List(ctx context.Context) ([]domain.Delivery, error) {
	raw, err := s.client.LRange(ctx, s.key, 0, -1).Result()
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkReadFailed.Error()), "key", s.key)
	}

	deliveries := make([]domain.Delivery, 0, len(raw))
	for _, item := range raw {
		var d domain.Delivery
		if err := json.Unmarshal([]byte(item), &d); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkUnmarshalFailed.Error()), "key", s.key)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, nil
}

// Close releases the client if the sink created it.
func (s *Sink[T]) Close() error {
	if !s.owned {
		return nil
	}
	return s.client.Close()
}
