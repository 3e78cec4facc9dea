// Package tracing configures OpenTelemetry for the chemistry data MCP server
// and provides the spans it records: one per tool call and one per guarded
// backend call nested beneath it.
package tracing

import (
	"context"
	"os"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	TracerName = "chemdata-mcp-server"
)

// Span attribute keys
const (
	AttrTool       = attribute.Key("chemdata.tool")
	AttrCategory   = attribute.Key("chemdata.tool.category")
	AttrReadOnly   = attribute.Key("chemdata.tool.read_only")
	AttrService    = attribute.Key("chemdata.service")
	AttrOperation  = attribute.Key("chemdata.backend.operation")
	AttrTimeout    = attribute.Key("chemdata.backend.timeout_ms")
	AttrOutcome    = attribute.Key("chemdata.outcome")
	AttrElapsed    = attribute.Key("chemdata.elapsed_ms")
	AttrIdentifier = attribute.Key("chemdata.identifier")
	AttrScheme     = attribute.Key("chemdata.identifier.scheme")
	AttrServices   = attribute.Key("chemdata.services")
)

// Outcome statuses that mark a span as failed
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

// Config holds tracing configuration
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Enabled        bool
	OTLPEndpoint   string // If set, uses OTLP exporter; otherwise stdout
	SampleRate     float64
	// Backends lists the enabled data services, recorded on the resource.
	Backends []string
}

// DefaultConfig reads tracing settings from the standard OTEL_* variables.
func DefaultConfig() Config {
	return Config{
		ServiceName:    TracerName,
		ServiceVersion: "1.0.0",
		Environment:    getEnvOrDefault("OTEL_ENVIRONMENT", "development"),
		Enabled:        os.Getenv("OTEL_ENABLED") == "true" || os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "",
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SampleRate:     parseSampleRate(os.Getenv("OTEL_TRACES_SAMPLER_ARG")),
	}
}

// Setup initializes OpenTelemetry tracing and returns a shutdown function
func Setup(ctx context.Context, config Config) (func(context.Context) error, error) {
	if !config.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	res, err := newResource(config)
	if err != nil {
		return nil, err
	}

	var exporter sdktrace.SpanExporter
	if config.OTLPEndpoint != "" {
		exporter, err = otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(config.OTLPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	} else {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// newResource describes this server. The service attributes are schemaless
// so the merge takes the SDK default's schema URL whatever semconv version
// the SDK was built against.
func newResource(config Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(config.ServiceName),
		semconv.ServiceVersion(config.ServiceVersion),
		attribute.String("deployment.environment", config.Environment),
	}
	if len(config.Backends) > 0 {
		attrs = append(attrs, AttrServices.StringSlice(config.Backends))
	}
	return resource.Merge(resource.Default(), resource.NewSchemaless(attrs...))
}

func sampler(rate float64) sdktrace.Sampler {
	switch {
	case rate >= 1.0:
		return sdktrace.AlwaysSample()
	case rate <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(rate))
	}
}

// Tracer returns the named tracer for the server
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// StartSpan starts a new span with the given name and returns the context and span
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return Tracer().Start(ctx, name, opts...)
}

// Tool describes the tool a call span belongs to.
type Tool struct {
	Name     string
	Service  string
	Category string
	ReadOnly bool
}

// StartToolSpan opens the server span for one MCP tool call.
func StartToolSpan(ctx context.Context, tool Tool) (context.Context, trace.Span) {
	return StartSpan(ctx, "tool "+tool.Name,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			AttrTool.String(tool.Name),
			AttrService.String(tool.Service),
			AttrCategory.String(tool.Category),
			AttrReadOnly.Bool(tool.ReadOnly),
		))
}

// StartBackendSpan opens the client span for one guarded call to a data
// service. operation may be empty.
func StartBackendSpan(ctx context.Context, service, operation string, timeout time.Duration) (context.Context, trace.Span) {
	name := service
	attrs := []attribute.KeyValue{
		AttrService.String(service),
		AttrTimeout.Int64(timeout.Milliseconds()),
	}
	if operation != "" {
		name += "." + operation
		attrs = append(attrs, AttrOperation.String(operation))
	}
	return StartSpan(ctx, "backend "+name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attrs...))
}

// AddIdentifier records the database identifier a call is about.
func AddIdentifier(span trace.Span, scheme, value string) {
	if value == "" {
		return
	}
	span.SetAttributes(AttrScheme.String(scheme), AttrIdentifier.String(value))
}

// EndOutcome records how a guarded call was classified. Anything but ok
// marks the span as failed; a timeout also adds a "deadline exceeded" event.
func EndOutcome(span trace.Span, status string, elapsed time.Duration, message string) {
	span.SetAttributes(
		AttrOutcome.String(status),
		AttrElapsed.Int64(elapsed.Milliseconds()),
	)
	switch status {
	case OutcomeOK:
		span.SetStatus(codes.Ok, "")
	case OutcomeTimeout:
		span.AddEvent("deadline exceeded")
		span.SetStatus(codes.Error, message)
	default:
		span.SetStatus(codes.Error, message)
	}
}

// RecordError records err on the span and marks it failed. A nil err is a no-op.
func RecordError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// parseSampleRate reads a ratio sampler argument, defaulting to 1.0
func parseSampleRate(raw string) float64 {
	if raw == "" {
		return 1.0
	}
	rate, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 1.0
	}
	return rate
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
