package serve

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// LogSpanExporter implements the OpenTelemetry SpanExporter interface by
// writing completed spans to a structured logger. It gives single-process
// deployments request-level tracing without a collector; hosts with a
// real telemetry pipeline install their own exporter instead.
//
// Export errors never propagate: a broken trace pipeline must not break
// validation requests.
type LogSpanExporter struct {
	logger *slog.Logger
}

// NewLogSpanExporter creates a LogSpanExporter writing to logger, or to
// slog.Default() when logger is nil.
func NewLogSpanExporter(logger *slog.Logger) *LogSpanExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSpanExporter{logger: logger}
}

// ExportSpans logs each completed span with its duration and attributes.
func (e *LogSpanExporter) ExportSpans(_ context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		args := []any{
			"span", span.Name(),
			"trace_id", span.SpanContext().TraceID().String(),
			"duration", span.EndTime().Sub(span.StartTime()),
		}
		for _, attr := range span.Attributes() {
			args = append(args, string(attr.Key), attr.Value.AsInterface())
		}
		e.logger.Info("span completed", args...)
	}
	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (e *LogSpanExporter) Shutdown(_ context.Context) error {
	return nil
}

// NewTracerProvider creates a TracerProvider that exports spans through
// the given exporter with a SimpleSpanProcessor, so spans appear as soon
// as they complete rather than in delayed batches. The caller should
// install it with otel.SetTracerProvider and shut it down on exit.
func NewTracerProvider(exporter sdktrace.SpanExporter, logger *slog.Logger) *sdktrace.TracerProvider {
	if logger == nil {
		logger = slog.Default()
	}
	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String("geozarr"),
		),
	)
	if err != nil {
		logger.Warn("failed to create resource, using default", "error", err)
		res = resource.Default()
	}
	return sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
}
