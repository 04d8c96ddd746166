package operations

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// OperationTracer provides OpenTelemetry spans for runs and steps
type OperationTracer struct {
	tracer trace.Tracer
}

// NewOperationTracer wraps tracer; a nil tracer records nothing
func NewOperationTracer(tracer trace.Tracer) *OperationTracer {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &OperationTracer{tracer: tracer}
}

// TraceRun creates a span for a whole cleaning run
func (ot *OperationTracer) TraceRun(ctx context.Context, runID, source string) (context.Context, trace.Span) {
	return ot.tracer.Start(ctx, "cleaning.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("run.source", source),
		),
	)
}

// TraceStep creates a span for one step
func (ot *OperationTracer) TraceStep(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	return ot.tracer.Start(ctx, fmt.Sprintf("cleaning.%s", step.ID()),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStepResult annotates a step span with its report
func (ot *OperationTracer) RecordStepResult(span trace.Span, report StepReport) {
	span.SetAttributes(
		attribute.Int("step.rows_before", report.RowsBefore),
		attribute.Int("step.rows_after", report.RowsAfter),
		attribute.Int("step.removed", report.Removed),
	)
	span.SetStatus(codes.Ok, report.Message)
}

// RecordRunResult annotates the run span with the final shape
func (ot *OperationTracer) RecordRunResult(span trace.Span, result *Result) {
	span.SetAttributes(
		attribute.Int("run.rows", result.Final.Rows),
		attribute.Int("run.columns", result.Final.Columns),
		attribute.Int("run.removed", result.RemovedTotal()),
	)
	span.SetStatus(codes.Ok, "")
}

// RecordError marks a span as failed
func (ot *OperationTracer) RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
