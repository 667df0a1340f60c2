// Package domain holds the core types shared by the pipeline, its ports and adapters.
package domain

import (
	"path/filepath"
	"time"

	"go.trai.ch/zerr"
)

const (
	// ConfigFileName is the configuration file looked up in the working directory.
	ConfigFileName = "portway.yaml"

	// DefaultInput is the input used when neither the CLI nor the config supplies one.
	DefaultInput = "Example of Hexagonal Architecture"

	// DefaultSinkLabel names the console sink when no label is configured.
	DefaultSinkLabel = "database"

	// DefaultRedisKey is the list key deliveries are pushed to.
	DefaultRedisKey = "portway:deliveries"

	// DefaultRedisAddr is the server redis sinks connect to without an addr.
	DefaultRedisAddr = "localhost:6379"

	// DirPerm is the permission used for directories created by sinks.
	DirPerm = 0o750

	// FilePerm is the permission used for files created by sinks.
	FilePerm = 0o600
)

// ProcessorKind selects the business logic of a pipeline.
type ProcessorKind string

const (
	// ProcessorIdentity passes the input through unchanged.
	ProcessorIdentity ProcessorKind = "identity"
	// ProcessorExpression evaluates an expr-lang expression against the input.
	ProcessorExpression ProcessorKind = "expression"
)

// SinkKind selects an output adapter.
type SinkKind string

const (
	// SinkConsole prints "Sent to <label>: <result>" to stdout.
	SinkConsole SinkKind = "console"
	// SinkMemory records results in process memory.
	SinkMemory SinkKind = "memory"
	// SinkSQLite stores deliveries in a SQLite database.
	SinkSQLite SinkKind = "sqlite"
	// SinkRedis pushes deliveries onto a Redis list.
	SinkRedis SinkKind = "redis"
	// SinkJournal appends deliveries to a JSON lines file.
	SinkJournal SinkKind = "journal"
)

// DeliveryMode controls how a result is handed to several sinks.
type DeliveryMode string

const (
	// DeliverySequential sends to each sink in declaration order, stopping at the first failure.
	DeliverySequential DeliveryMode = "sequential"
	// DeliveryParallel sends to all sinks concurrently and waits for every one of them.
	DeliveryParallel DeliveryMode = "parallel"
)

// ProcessorSpec describes the processor of a pipeline.
type ProcessorSpec struct {
	Kind       ProcessorKind
	Expression string
	CacheTTL   time.Duration
}

// SinkSpec describes one sink of a pipeline.
type SinkSpec struct {
	Kind  SinkKind
	Label string
	Path  string
	Addr  string
	Key   string
}

// Name returns the label a sink reports in deliveries and spans.
func (s SinkSpec) Name() string {
	if s.Label != "" {
		return s.Label
	}
	if s.Kind == SinkConsole {
		return DefaultSinkLabel
	}
	return string(s.Kind)
}

// WithDefaults returns a copy of s with unset locations filled in.
func (s SinkSpec) WithDefaults() SinkSpec {
	switch s.Kind {
	case SinkSQLite:
		if s.Path == "" {
			s.Path = filepath.Join(DefaultStorePath(), "deliveries.db")
		}
	case SinkJournal:
		if s.Path == "" {
			s.Path = filepath.Join(DefaultStorePath(), "journal.jsonl")
		}
	case SinkRedis:
		if s.Addr == "" {
			s.Addr = DefaultRedisAddr
		}
		if s.Key == "" {
			s.Key = DefaultRedisKey
		}
	case SinkConsole, SinkMemory:
	}
	return s
}

// PipelineConfig is the fully resolved configuration of a pipeline.
type PipelineConfig struct {
	Input     string
	Processor ProcessorSpec
	Delivery  DeliveryMode
	Sinks     []SinkSpec
}

// DefaultConfig returns the configuration used when no config file exists:
// an identity processor feeding a single console sink.
func DefaultConfig() *PipelineConfig {
	return &PipelineConfig{
		Input:     DefaultInput,
		Processor: ProcessorSpec{Kind: ProcessorIdentity},
		Delivery:  DeliverySequential,
		Sinks:     []SinkSpec{{Kind: SinkConsole, Label: DefaultSinkLabel}},
	}
}

// DefaultStorePath returns the directory persisted sinks default to, relative to the working directory.
func DefaultStorePath() string {
	return ".portway"
}

// ParseProcessorKind validates s. An empty string selects ProcessorIdentity.
func ParseProcessorKind(s string) (ProcessorKind, error) {
	switch k := ProcessorKind(s); k {
	case "":
		return ProcessorIdentity, nil
	case ProcessorIdentity, ProcessorExpression:
		return k, nil
	default:
		return "", zerr.With(ErrUnknownProcessor, "kind", s)
	}
}

// ParseSinkKind validates s.
func ParseSinkKind(s string) (SinkKind, error) {
	switch k := SinkKind(s); k {
	case SinkConsole, SinkMemory, SinkSQLite, SinkRedis, SinkJournal:
		return k, nil
	default:
		return "", zerr.With(ErrUnknownSink, "kind", s)
	}
}

// ParseDeliveryMode validates s. An empty string selects DeliverySequential.
func ParseDeliveryMode(s string) (DeliveryMode, error) {
	switch m := DeliveryMode(s); m {
	case "":
		return DeliverySequential, nil
	case DeliverySequential, DeliveryParallel:
		return m, nil
	default:
		return "", zerr.With(ErrUnknownDeliveryMode, "delivery", s)
	}
}
