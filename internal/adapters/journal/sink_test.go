package journal_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portway/internal/adapters/journal"
	"go.trai.ch/portway/internal/core/domain"
)

func TestSink_SendAndList(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".portway", "journal.jsonl")
	sink := journal.New[string](path, "journal")
	ctx := context.Background()

	require.NoError(t, sink.Send(ctx, "first"))
	require.NoError(t, sink.Send(ctx, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "\n"))

	deliveries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)
	assert.JSONEq(t, `"first"`, string(deliveries[0].Payload))
	assert.JSONEq(t, `"second"`, string(deliveries[1].Payload))
	assert.Equal(t, "journal", deliveries[1].Sink)
	require.NoError(t, sink.Close())
}

func TestSink_List_MissingFile(t *testing.T) {
	sink := journal.New[string](filepath.Join(t.TempDir(), "absent.jsonl"), "journal")

	deliveries, err := sink.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, deliveries)
}

func TestSink_List_CorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	require.NoError(t, os.WriteFile(path, []byte("{not json}\n"), domain.FilePerm))

	_, err := journal.New[string](path, "journal").List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSinkUnmarshalFailed.Error())
}

func TestSink_Send_UnwritableDirectory(t *testing.T) {
	// A regular file where the parent directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, domain.FilePerm))

	sink := journal.New[string](filepath.Join(blocker, "journal.jsonl"), "journal")
	err := sink.Send(context.Background(), "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrSinkOpenFailed.Error())
}

func TestSink_ConcurrentSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	sink := journal.New[int](path, "journal")

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, sink.Send(context.Background(), i))
		}()
	}
	wg.Wait()

	deliveries, err := sink.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, deliveries, 20)
}
