// Package telemetry decorates pipeline ports with OpenTelemetry spans.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/portway/internal/core/ports"
)

// InstrumentationName identifies spans produced by portway.
const InstrumentationName = "go.trai.ch/portway"

// Span names.
const (
	SpanExecute = "pipeline.execute"
	SpanProcess = "processor.process"
	SpanSend    = "sink.send"
)

// Tracer returns the tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Processor wraps a processor so each call runs inside a span.
type Processor[In, Out any] struct {
	next   ports.Processor[In, Out]
	tracer trace.Tracer
	kind   string
}

// TraceProcessor decorates next. kind is recorded as the processor.kind attribute.
func TraceProcessor[In, Out any](tracer trace.Tracer, kind string, next ports.Processor[In, Out]) *Processor[In, Out] {
	return &Processor[In, Out]{next: next, tracer: tracer, kind: kind}
}

// Process calls the wrapped processor and records any error on the span.
func (p *Processor[In, Out]) Process(ctx context.Context, input In) (Out, error) {
	ctx, span := p.tracer.Start(ctx, SpanProcess, trace.WithAttributes(
		attribute.String("processor.kind", p.kind),
	))
	defer span.End()

	out, err := p.next.Process(ctx, input)
	if err != nil {
		recordError(span, err)
	}
	return out, err
}

// Sink wraps a sink so each delivery runs inside a span.
type Sink[T any] struct {
	next   ports.Sink[T]
	tracer trace.Tracer
	name   string
}

// TraceSink decorates next. name is recorded as the sink.name attribute.
func TraceSink[T any](tracer trace.Tracer, name string, next ports.Sink[T]) *Sink[T] {
	return &Sink[T]{next: next, tracer: tracer, name: name}
}

// Send calls the wrapped sink and records any error on the span.
func (s *Sink[T]) Send(ctx context.Context, result T) error {
	ctx, span := s.tracer.Start(ctx, SpanSend, trace.WithAttributes(
		attribute.String("sink.name", s.name),
	))
	defer span.End()

	err := s.next.Send(ctx, result)
	if err != nil {
		recordError(span, err)
	}
	return err
}

// StartExecution opens the root span for one pipeline execution.
func StartExecution(ctx context.Context, tracer trace.Tracer, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, SpanExecute, trace.WithAttributes(attrs...))
}

// EndExecution records err, if any, and ends span.
func EndExecution(span trace.Span, err error) {
	if err != nil {
		recordError(span, err)
	}
	span.End()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
