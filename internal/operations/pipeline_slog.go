package operations

import (
	"context"
	"log/slog"
	"time"

	"noshowcli/internal/dataprocessing"
)

// logRunStart logs the start of a run
func (p *Pipeline) logRunStart(ctx context.Context, state *OperationState, steps []Step) {
	p.logger.InfoContext(ctx, "run_start",
		slog.String("run_id", state.ID),
		slog.String("source", state.Source),
		slog.Int("step_count", len(steps)),
		slog.String("timestamp_policy", string(p.opts.TimestampPolicy)))
}

// logRunComplete logs the completion of a run
func (p *Pipeline) logRunComplete(ctx context.Context, result *Result) {
	p.logger.InfoContext(ctx, "run_complete",
		slog.String("run_id", result.RunID),
		slog.Int("rows", result.Final.Rows),
		slog.Int("removed", result.RemovedTotal()),
		slog.Duration("duration", result.Duration))
}

// logRunError logs a failed run
func (p *Pipeline) logRunError(ctx context.Context, state *OperationState, err error) {
	p.logger.ErrorContext(ctx, "run_error",
		slog.String("run_id", state.ID),
		slog.String("step", FailedStep(err)),
		slog.String("error", err.Error()))
}

// logStepStart logs the start of a step
func (p *Pipeline) logStepStart(ctx context.Context, state *OperationState, step Step, rows int) {
	p.logger.InfoContext(ctx, "step_start",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()),
		slog.Int("rows", rows))
}

// logStepComplete logs the report of a finished step
func (p *Pipeline) logStepComplete(ctx context.Context, state *OperationState, report StepReport) {
	p.logger.InfoContext(ctx, "step_complete",
		slog.String("run_id", state.ID),
		slog.Any("report", report))
}

// logStepError logs a failed step
func (p *Pipeline) logStepError(ctx context.Context, state *OperationState, step Step, duration time.Duration, err error) {
	p.logger.ErrorContext(ctx, "step_error",
		slog.String("run_id", state.ID),
		slog.String("step", step.ID()),
		slog.Duration("duration", duration),
		slog.String("error", err.Error()))
}

// logInspection logs a dataset snapshot: head rows and per-column info
func (p *Pipeline) logInspection(ctx context.Context, state *OperationState, label string, summary dataprocessing.Summary) {
	p.logger.InfoContext(ctx, label,
		slog.String("run_id", state.ID),
		slog.Any("dataset", summary))
}
