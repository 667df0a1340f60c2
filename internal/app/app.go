// Package app implements the application layer for portway.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/portway/internal/adapters/telemetry"
	"go.trai.ch/portway/internal/adapters/watcher"
	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	watcher      ports.Watcher
	stdout       io.Writer
	tracer       trace.Tracer
	debounce     time.Duration
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, log ports.Logger, w ports.Watcher) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		watcher:      w,
		stdout:       os.Stdout,
		tracer:       telemetry.Tracer(),
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithStdout sets the writer console sinks print to.
func (a *App) WithStdout(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithTracer sets the tracer used for pipeline spans.
func (a *App) WithTracer(tracer trace.Tracer) *App {
	a.tracer = tracer
	return a
}

// WithDebounce sets the window used to coalesce file changes in Watch.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// RunOptions holds the command line overrides applied on top of the configuration.
type RunOptions struct {
	ConfigPath string
	// Input replaces the configured input when HasInput is set, even if empty.
	Input      string
	HasInput   bool
	Processor  string
	Expression string
	Sinks      []string
	Delivery   string
	// Trace reports every pipeline span through the logger.
	Trace bool
}

// Run builds the configured pipeline and executes it once.
func (a *App) Run(ctx context.Context, opts RunOptions) (err error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	tracer, shutdown := a.tracerFor(opts)
	defer shutdown()

	p, err := a.build(ctx, cfg, tracer)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.close())
	}()

	input := cfg.Input
	if opts.HasInput {
		input = opts.Input
	}

	return a.execute(ctx, p, input)
}

// Watch builds the configured pipeline once, executes it with the content of
// path, then again after every change to the file until ctx is canceled.
// Failed executions are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, path string, opts RunOptions) (err error) {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	tracer, shutdown := a.tracerFor(opts)
	defer shutdown()

	p, err := a.build(ctx, cfg, tracer)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.close())
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Start(ctx, path); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	trigger := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		select {
		case trigger <- struct{}{}:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range a.watcher.Events() {
			if event.Operation == ports.OpRemove || event.Operation == ports.OpRename {
				continue
			}
			debouncer.Add(event.Path)
		}
	}()

	a.logger.Info(fmt.Sprintf("watching %s", path))
	var seen contentFilter
	a.executeFile(ctx, p, path, &seen)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-trigger:
			a.executeFile(ctx, p, path, &seen)
		}
	}
}

// executeFile runs the pipeline with the content of path unless it is
// identical to the content of the previous run.
func (a *App) executeFile(ctx context.Context, p *built, path string, seen *contentFilter) {
	input, err := readInput(path)
	if err == nil {
		if !seen.changed(input) {
			return
		}
		err = a.execute(ctx, p, input)
	}
	if err != nil && ctx.Err() == nil {
		a.logger.Error(err)
	}
}

// contentFilter remembers the digest of the last input.
type contentFilter struct {
	seen bool
	last uint64
}

func (f *contentFilter) changed(input string) bool {
	sum := xxhash.Sum64String(input)
	if f.seen && sum == f.last {
		return false
	}
	f.seen, f.last = true, sum
	return true
}

func (a *App) execute(ctx context.Context, p *built, input string) error {
	ctx, span := telemetry.StartExecution(ctx, p.tracer,
		attribute.String("processor.kind", string(p.processorKind)),
		attribute.Int("sink.count", p.sinkCount),
	)
	err := p.service.Execute(ctx, input)
	telemetry.EndExecution(span, err)
	return err
}

// tracerFor returns the tracer for one command. With opts.Trace set it
// replaces the configured tracer with one that logs every finished span.
func (a *App) tracerFor(opts RunOptions) (trace.Tracer, func()) {
	if !opts.Trace {
		return a.tracer, func() {}
	}
	tp := telemetry.NewLoggingProvider(a.logger)
	return tp.Tracer(telemetry.InstrumentationName), func() {
		_ = tp.Shutdown(context.Background())
	}
}

func (a *App) loadConfig(opts RunOptions) (*domain.PipelineConfig, error) {
	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if err := a.applyOverrides(cfg, opts); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) applyOverrides(cfg *domain.PipelineConfig, opts RunOptions) error {
	switch {
	case opts.Processor != "":
		kind, err := domain.ParseProcessorKind(opts.Processor)
		if err != nil {
			return err
		}
		cfg.Processor.Kind = kind
	case opts.Expression != "":
		cfg.Processor.Kind = domain.ProcessorExpression
	}
	if opts.Expression != "" {
		cfg.Processor.Expression = opts.Expression
		if cfg.Processor.Kind != domain.ProcessorExpression {
			a.logger.Warn(fmt.Sprintf("--expr is ignored by the %s processor", cfg.Processor.Kind))
		}
	}
	if cfg.Processor.Kind == domain.ProcessorExpression && cfg.Processor.Expression == "" {
		return zerr.With(domain.ErrInvalidExpression, "reason", "an expression processor needs --expr")
	}

	if opts.Delivery != "" {
		mode, err := domain.ParseDeliveryMode(opts.Delivery)
		if err != nil {
			return err
		}
		cfg.Delivery = mode
	}

	if len(opts.Sinks) > 0 {
		sinks := make([]domain.SinkSpec, 0, len(opts.Sinks))
		for _, name := range opts.Sinks {
			kind, err := domain.ParseSinkKind(name)
			if err != nil {
				return err
			}
			sinks = append(sinks, domain.SinkSpec{Kind: kind}.WithDefaults())
		}
		cfg.Sinks = sinks
	}

	return nil
}

func readInput(path string) (string, error) {
	// #nosec G304 -- path is the file the user asked to watch
	data, err := os.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrInputReadFailed.Error()), "path", path)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
