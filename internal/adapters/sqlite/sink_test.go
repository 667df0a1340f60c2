package sqlite_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/portway/internal/adapters/sqlite"
)

func openSink[T any](t *testing.T, opts ...sqlite.Option) *sqlite.Sink[T] {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "deliveries.db")
	sink, err := sqlite.Open[T](path, "database", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sink.Close() })
	return sink
}

func TestSink_SendAndList(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC)
	sink := openSink[string](t, sqlite.WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	require.NoError(t, sink.Send(ctx, "Example of Hexagonal Architecture"))
	require.NoError(t, sink.Send(ctx, "second"))

	deliveries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 2)

	assert.JSONEq(t, `"Example of Hexagonal Architecture"`, string(deliveries[0].Payload))
	assert.JSONEq(t, `"second"`, string(deliveries[1].Payload))
	assert.Equal(t, "database", deliveries[0].Sink)
	assert.True(t, fixed.Equal(deliveries[0].CreatedAt))

	_, err = uuid.Parse(deliveries[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, deliveries[0].ID, deliveries[1].ID)
}

func TestSink_StructPayload(t *testing.T) {
	type event struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	sink := openSink[event](t)
	ctx := context.Background()
	require.NoError(t, sink.Send(ctx, event{Name: "signup", Count: 3}))

	deliveries, err := sink.List(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)

	var got event
	require.NoError(t, json.Unmarshal(deliveries[0].Payload, &got))
	assert.Equal(t, event{Name: "signup", Count: 3}, got)
}

func TestSink_ReopenKeepsDeliveries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deliveries.db")
	ctx := context.Background()

	first, err := sqlite.Open[string](path, "database")
	require.NoError(t, err)
	require.NoError(t, first.Send(ctx, "persisted"))
	require.NoError(t, first.Close())

	second, err := sqlite.Open[string](path, "database")
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	deliveries, err := second.List(ctx)
	require.NoError(t, err)
	require.Len(t, deliveries, 1)
	assert.JSONEq(t, `"persisted"`, string(deliveries[0].Payload))
}

func TestSink_MarshalError(t *testing.T) {
	sink := openSink[chan int](t)

	err := sink.Send(context.Background(), make(chan int))
	require.Error(t, err)
}

func TestSink_SendAfterClose(t *testing.T) {
	sink := openSink[string](t)
	require.NoError(t, sink.Close())

	err := sink.Send(context.Background(), "late")
	require.Error(t, err)
}
