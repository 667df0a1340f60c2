package domain

import "go.trai.ch/zerr"

var (
	// ErrUndefinedInput is returned by processors that receive the zero value of their input type.
	ErrUndefinedInput = zerr.New("input is undefined")

	// ErrProcessingFailed tags errors raised by the processor stage of a pipeline.
	ErrProcessingFailed = zerr.New("processing failed")

	// ErrDeliveryFailed tags errors raised by the sink stage of a pipeline.
	ErrDeliveryFailed = zerr.New("delivery failed")

	// ErrUnknownProcessor is returned when a configuration names a processor kind that does not exist.
	ErrUnknownProcessor = zerr.New("unknown processor kind")

	// ErrUnknownSink is returned when a configuration names a sink kind that does not exist.
	ErrUnknownSink = zerr.New("unknown sink kind")

	// ErrUnknownDeliveryMode is returned when the delivery mode is neither sequential nor parallel.
	ErrUnknownDeliveryMode = zerr.New("invalid delivery mode, expected 'sequential' or 'parallel'")

	// ErrNoSinks is returned when a pipeline configuration declares no sinks.
	ErrNoSinks = zerr.New("no sinks configured")

	// ErrInvalidExpression is returned when an expression processor cannot compile its source.
	ErrInvalidExpression = zerr.New("invalid expression")

	// ErrExpressionEvalFailed is returned when an expression fails at run time.
	ErrExpressionEvalFailed = zerr.New("expression evaluation failed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrInvalidCacheTTL is returned when processor.cache_ttl is not a valid duration.
	ErrInvalidCacheTTL = zerr.New("invalid cache ttl")

	// ErrSinkOpenFailed is returned when a sink cannot open its backing resource.
	ErrSinkOpenFailed = zerr.New("failed to open sink")

	// ErrSinkMarshalFailed is returned when a result cannot be encoded for a persisted sink.
	ErrSinkMarshalFailed = zerr.New("failed to marshal delivery")

	// ErrSinkWriteFailed is returned when a sink cannot write a delivery.
	ErrSinkWriteFailed = zerr.New("failed to write delivery")

	// ErrSinkReadFailed is returned when a persisted sink cannot list its deliveries.
	ErrSinkReadFailed = zerr.New("failed to read deliveries")

	// ErrSinkUnmarshalFailed is returned when a stored delivery cannot be decoded.
	ErrSinkUnmarshalFailed = zerr.New("failed to unmarshal delivery")

	// ErrWatchFailed is returned when the input file cannot be watched.
	ErrWatchFailed = zerr.New("failed to watch input file")

	// ErrInputReadFailed is returned when the watched input file cannot be read.
	ErrInputReadFailed = zerr.New("failed to read input file")
)
