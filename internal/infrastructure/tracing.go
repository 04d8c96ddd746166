package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"noshowcli/internal/config"
)

const (
	ServiceName = "noshow-cleaner"
	TracerName  = "noshowcli.cleaning"
)

// TracingProvider owns the tracer used by a cleaning run
type TracingProvider struct {
	provider *sdktrace.TracerProvider
	Tracer   trace.Tracer
}

// InitializeTracing sets up OpenTelemetry tracing. Spans are exported to w
// when tracing is enabled; otherwise a noop tracer is returned.
func InitializeTracing(cfg config.TracingConfig, w io.Writer, logger *slog.Logger) (*TracingProvider, error) {
	if logger == nil {
		logger = GetLogger()
	}

	if !cfg.Enabled || cfg.Exporter == "none" {
		return &TracingProvider{Tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.Exporter {
	case "stdout":
		exporter, err = stdouttrace.New(
			stdouttrace.WithWriter(w),
			stdouttrace.WithPrettyPrint(),
		)
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", config.AppVersion),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("Tracing initialized",
		slog.String("exporter", cfg.Exporter),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &TracingProvider{
		provider: tp,
		Tracer:   tp.Tracer(TracerName, trace.WithInstrumentationVersion(config.AppVersion)),
	}, nil
}

// Shutdown flushes pending spans. It is a no-op for the noop tracer.
func (p *TracingProvider) Shutdown(ctx context.Context) error {
	if p == nil || p.provider == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
