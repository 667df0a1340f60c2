package telemetry_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/portway/internal/adapters/memory"
	"go.trai.ch/portway/internal/adapters/passthrough"
	"go.trai.ch/portway/internal/adapters/telemetry"
	"go.trai.ch/portway/internal/core/ports/mocks"
	"go.trai.ch/portway/internal/engine/pipeline"
	"go.uber.org/mock/gomock"
)

func setupRecorder(t *testing.T) (*tracetest.SpanRecorder, *sdktrace.TracerProvider) {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return sr, tp
}

func spanNames(spans []sdktrace.ReadOnlySpan) []string {
	names := make([]string, 0, len(spans))
	for _, s := range spans {
		names = append(names, s.Name())
	}
	return names
}

func TestTracedPipeline_Success(t *testing.T) {
	sr, tp := setupRecorder(t)
	tracer := tp.Tracer("test")

	sink := memory.New[string]()
	svc := pipeline.New[string, string](
		telemetry.TraceProcessor[string, string](tracer, "identity", passthrough.New[string]()),
		telemetry.TraceSink[string](tracer, "memory", sink),
	)

	ctx, root := telemetry.StartExecution(context.Background(), tracer, attribute.String("input.source", "test"))
	err := svc.Execute(ctx, "hello")
	telemetry.EndExecution(root, err)
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, []string{telemetry.SpanProcess, telemetry.SpanSend, telemetry.SpanExecute}, spanNames(spans))

	// Process and send are children of the execution span.
	rootID := spans[2].SpanContext().SpanID()
	assert.Equal(t, rootID, spans[0].Parent().SpanID())
	assert.Equal(t, rootID, spans[1].Parent().SpanID())

	assert.Contains(t, spans[0].Attributes(), attribute.String("processor.kind", "identity"))
	assert.Contains(t, spans[1].Attributes(), attribute.String("sink.name", "memory"))
	assert.Equal(t, []string{"hello"}, sink.Records())
}

func TestTraceProcessor_RecordsError(t *testing.T) {
	sr, tp := setupRecorder(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failure := errors.New("boom")
	next := mocks.NewMockProcessor[string, string](ctrl)
	next.EXPECT().Process(gomock.Any(), "x").Return("", failure)

	_, err := telemetry.TraceProcessor[string, string](tp.Tracer("test"), "mock", next).
		Process(context.Background(), "x")
	require.ErrorIs(t, err, failure)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)
	require.Len(t, spans[0].Events(), 1)
	assert.Equal(t, "exception", spans[0].Events()[0].Name)
}

func TestTraceSink_RecordsError(t *testing.T) {
	sr, tp := setupRecorder(t)

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	failure := errors.New("offline")
	next := mocks.NewMockSink[string](ctrl)
	next.EXPECT().Send(gomock.Any(), "x").Return(failure)

	err := telemetry.TraceSink[string](tp.Tracer("test"), "redis", next).Send(context.Background(), "x")
	require.ErrorIs(t, err, failure)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestEndExecution_RecordsError(t *testing.T) {
	sr, tp := setupRecorder(t)

	_, span := telemetry.StartExecution(context.Background(), tp.Tracer("test"))
	telemetry.EndExecution(span, errors.New("failed"))

	spans := sr.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, telemetry.SpanExecute, spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
}

func TestTracer_UsesGlobalProvider(t *testing.T) {
	assert.NotNil(t, telemetry.Tracer())
}
