package app

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/portway/internal/adapters/console"
	"go.trai.ch/portway/internal/adapters/expression"
	"go.trai.ch/portway/internal/adapters/fanout"
	"go.trai.ch/portway/internal/adapters/journal"
	"go.trai.ch/portway/internal/adapters/memo"
	"go.trai.ch/portway/internal/adapters/memory"
	"go.trai.ch/portway/internal/adapters/passthrough"
	"go.trai.ch/portway/internal/adapters/redis"
	"go.trai.ch/portway/internal/adapters/sqlite"
	"go.trai.ch/portway/internal/adapters/telemetry"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/portway/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// built is a wired pipeline together with the resources its sinks hold.
type built struct {
	service       ports.Executor[string]
	processorKind domain.ProcessorKind
	sinkCount     int
	tracer        trace.Tracer
	closers       []io.Closer
}

func (b *built) close() error {
	var errs error
	for i := len(b.closers) - 1; i >= 0; i-- {
		errs = errors.Join(errs, b.closers[i].Close())
	}
	b.closers = nil
	return errs
}

func (a *App) build(ctx context.Context, cfg *domain.PipelineConfig, tracer trace.Tracer) (*built, error) {
	b := &built{processorKind: cfg.Processor.Kind, sinkCount: len(cfg.Sinks), tracer: tracer}

	processor, err := b.buildProcessor(cfg.Processor)
	if err != nil {
		return nil, err
	}

	sink, err := a.buildSink(ctx, cfg, b)
	if err != nil {
		_ = b.close()
		return nil, err
	}

	b.service = pipeline.New[string, string](
		tagProcessor[string, string]{next: processor},
		tagSink[string]{next: sink},
	)
	return b, nil
}

func (b *built) buildProcessor(spec domain.ProcessorSpec) (ports.Processor[string, string], error) {
	var processor ports.Processor[string, string]
	switch spec.Kind {
	case domain.ProcessorIdentity:
		processor = passthrough.New[string]()
	case domain.ProcessorExpression:
		p, err := expression.New(spec.Expression)
		if err != nil {
			return nil, err
		}
		processor = p
	default:
		return nil, zerr.With(domain.ErrUnknownProcessor, "kind", string(spec.Kind))
	}

	if spec.CacheTTL > 0 {
		processor = memo.New(processor, spec.CacheTTL)
	}

	return telemetry.TraceProcessor(b.tracer, string(spec.Kind), processor), nil
}

func (a *App) buildSink(ctx context.Context, cfg *domain.PipelineConfig, b *built) (ports.Sink[string], error) {
	if len(cfg.Sinks) == 0 {
		return nil, domain.ErrNoSinks
	}

	sinks := make([]ports.Sink[string], 0, len(cfg.Sinks))
	for _, spec := range cfg.Sinks {
		sink, err := a.openSink(ctx, spec, b)
		if err != nil {
			return nil, zerr.With(err, "sink", spec.Name())
		}
		sinks = append(sinks, telemetry.TraceSink(b.tracer, spec.Name(), sink))
	}

	if len(sinks) == 1 {
		return sinks[0], nil
	}

	switch cfg.Delivery {
	case domain.DeliveryParallel:
		return fanout.Parallel(sinks...), nil
	case domain.DeliverySequential, "":
		return fanout.Sequential(sinks...), nil
	default:
		return nil, zerr.With(domain.ErrUnknownDeliveryMode, "delivery", string(cfg.Delivery))
	}
}

func (a *App) openSink(ctx context.Context, spec domain.SinkSpec, b *built) (ports.Sink[string], error) {
	spec = spec.WithDefaults()
	name := spec.Name()

	switch spec.Kind {
	case domain.SinkConsole:
		return console.New[string](a.stdout, name), nil
	case domain.SinkMemory:
		return memory.New[string](), nil
	case domain.SinkSQLite:
		s, err := sqlite.Open[string](spec.Path, name)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, s)
		return s, nil
	case domain.SinkRedis:
		s, err := redis.Dial[string](ctx, spec.Addr, spec.Key, name)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, s)
		return s, nil
	case domain.SinkJournal:
		s := journal.New[string](spec.Path, name)
		b.closers = append(b.closers, s)
		return s, nil
	default:
		return nil, zerr.With(domain.ErrUnknownSink, "kind", string(spec.Kind))
	}
}

// tagProcessor marks processor failures with domain.ErrProcessingFailed.
type tagProcessor[In, Out any] struct {
	next ports.Processor[In, Out]
}

func (t tagProcessor[In, Out]) Process(ctx context.Context, input In) (Out, error) {
	out, err := t.next.Process(ctx, input)
	if err != nil {
		return out, errors.Join(domain.ErrProcessingFailed, err)
	}
	return out, nil
}

// tagSink marks delivery failures with domain.ErrDeliveryFailed.
type tagSink[T any] struct {
	next ports.Sink[T]
}

func (t tagSink[T]) Send(ctx context.Context, result T) error {
	if err := t.next.Send(ctx, result); err != nil {
		return errors.Join(domain.ErrDeliveryFailed, err)
	}
	return nil
}
