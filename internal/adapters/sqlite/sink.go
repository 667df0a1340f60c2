// Package sqlite implements a sink that stores deliveries in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
	_ "modernc.org/sqlite" // SQLite driver
)

const schema = `
CREATE TABLE IF NOT EXISTS deliveries (
	id         TEXT PRIMARY KEY,
	sink       TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL
)`

// Sink stores each result as a JSON payload in the deliveries table.
type Sink[T any] struct {
	db    *sql.DB
	name  string
	path  string
	clock func() time.Time
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// Option configures a Sink.
type Option func(*options)

type options struct {
	clock func() time.Time
}

// WithClock overrides the time source used for CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// Open opens (creating if needed) the database at path. name is recorded on every delivery.
func Open[T any](path, name string, opts ...Option) (*Sink[T], error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "path", path)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "path", path)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "path", path)
	}

	return &Sink[T]{db: db, name: name, path: path, clock: o.clock}, nil
}

// Send inserts result as a new delivery row.
func (s *Sink[T]) Send(ctx context.Context, result T) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkMarshalFailed.Error())
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO deliveries (id, sink, payload, created_at) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), s.name, string(payload), s.clock().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "sink", s.name)
	}
	return nil
}

// List returns all stored deliveries in insertion order.
func (s *Sink[T]) List(ctx context.Context) ([]domain.Delivery, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sink, payload, created_at FROM deliveries ORDER BY rowid`)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSinkReadFailed.Error())
	}
	defer func() { _ = rows.Close() }()

	var deliveries []domain.Delivery //nolint:prealloc // size unknown from query
	for rows.Next() {
		var (
			d         domain.Delivery
			payload   string
			createdAt string
		)
		if err := rows.Scan(&d.ID, &d.Sink, &payload, &createdAt); err != nil {
			return nil, zerr.Wrap(err, domain.ErrSinkReadFailed.Error())
		}
		d.Payload = json.RawMessage(payload)
		d.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkUnmarshalFailed.Error()), "id", d.ID)
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSinkReadFailed.Error())
	}
	return deliveries, nil
}

// Close closes the database connection.
func (s *Sink[T]) Close() error {
	return s.db.Close()
}
