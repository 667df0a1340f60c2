// Package journal implements a sink that appends deliveries to a JSON lines file.
package journal

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxLineSize bounds a single journal entry when reading the file back.
const maxLineSize = 4 << 20

// Sink appends one JSON-encoded domain.Delivery per line to a file.
type Sink[T any] struct {
	path  string
	name  string
	clock func() time.Time
	mu    sync.Mutex
}

var _ ports.Sink[string] = (*Sink[string])(nil)

// New creates a journal sink for the file at path. The file and its parent
// directories are created on the first Send.
func New[T any](path, name string) *Sink[T] {
	return &Sink[T]{path: path, name: name, clock: time.Now}
}

// Send appends result to the journal.
func (s *Sink[T]) Send(_ context.Context, result T) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkMarshalFailed.Error())
	}

	line, err := json.Marshal(domain.Delivery{
		ID:        uuid.NewString(),
		Sink:      s.name,
		Payload:   payload,
		CreatedAt: s.clock().UTC(),
	})
	if err != nil {
		return zerr.Wrap(err, domain.ErrSinkMarshalFailed.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "path", s.path)
	}

	//nolint:gosec // Path comes from trusted configuration
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, domain.FilePerm)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkOpenFailed.Error()), "path", s.path)
	}

	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "path", s.path)
	}

	if err := f.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrSinkWriteFailed.Error()), "path", s.path)
	}
	return nil
}

// List reads every delivery from the journal. A missing file yields no deliveries.
func (s *Sink[T]) List(_ context.Context) ([]domain.Delivery, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path comes from trusted configuration
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkReadFailed.Error()), "path", s.path)
	}

	var deliveries []domain.Delivery
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for line := 1; scanner.Scan(); line++ {
		if len(bytes.TrimSpace(scanner.Bytes())) == 0 {
			continue
		}
		var d domain.Delivery
		if err := json.Unmarshal(scanner.Bytes(), &d); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkUnmarshalFailed.Error()), "line", line)
		}
		deliveries = append(deliveries, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSinkReadFailed.Error()), "path", s.path)
	}
	return deliveries, nil
}

// Close is a no-op; the file is opened per Send.
func (s *Sink[T]) Close() error {
	return nil
}
