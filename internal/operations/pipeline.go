package operations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"noshowcli/internal/dataprocessing"
	"noshowcli/internal/errors"
	"noshowcli/internal/infrastructure"
	"noshowcli/pkg/contracts/domain"
)

// Options configures a cleaning pipeline
type Options struct {
	TimestampPolicy domain.TimestampPolicy
	HeadRows        int
	Logger          *slog.Logger
	Tracer          trace.Tracer
	Metrics         *infrastructure.PipelineMetrics
}

// DefaultOptions returns the options used when none are given
func DefaultOptions() Options {
	return Options{
		TimestampPolicy: domain.TimestampPolicyFail,
		HeadRows:        dataprocessing.DefaultHeadRows,
	}
}

// Pipeline runs cleaning steps in order over one source file
type Pipeline struct {
	registry *Registry
	opts     Options
	logger   *slog.Logger
	tracer   *OperationTracer
}

// NewPipeline creates the standard cleaning pipeline: load, deduplicate,
// normalize timestamps, rename the outcome column, drop negative ages.
func NewPipeline(opts Options) (*Pipeline, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}

	parser := dataprocessing.NewParser(dataprocessing.AppointmentSchema(), p.logger)
	steps := []Step{
		NewLoadStage(parser),
		NewDeduplicateStage(),
		NewNormalizeTimestampsStage(domain.TimestampColumns, p.opts.TimestampPolicy),
		NewRenameColumnStage(domain.ColumnNoShowSource, domain.ColumnNoShow),
		NewValidateAgeStage(domain.ColumnAge),
	}
	for _, s := range steps {
		if err := p.registry.Register(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// NewCustomPipeline creates a pipeline running the given steps in order.
// The first step must load the dataset.
func NewCustomPipeline(opts Options, steps ...Step) (*Pipeline, error) {
	p, err := newPipeline(opts)
	if err != nil {
		return nil, err
	}
	for _, s := range steps {
		if err := p.registry.Register(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func newPipeline(opts Options) (*Pipeline, error) {
	if opts.TimestampPolicy == "" {
		opts.TimestampPolicy = domain.TimestampPolicyFail
	}
	switch opts.TimestampPolicy {
	case domain.TimestampPolicyFail, domain.TimestampPolicyDrop:
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unknown timestamp policy %q", opts.TimestampPolicy))
	}
	if opts.HeadRows < 0 {
		return nil, errors.NewValidationError("head rows must not be negative")
	}

	logger := opts.Logger
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	return &Pipeline{
		registry: NewRegistry(),
		opts:     opts,
		logger:   infrastructure.WithComponent(logger, "pipeline"),
		tracer:   NewOperationTracer(opts.Tracer),
	}, nil
}

// Steps returns the IDs of the pipeline steps in execution order
func (p *Pipeline) Steps() []string {
	return p.registry.ListIDs()
}

// Run cleans the file at path. It returns either the cleaned dataset with a
// report per step, or an error and no result. A cancelled context stops the
// run before the next step.
func (p *Pipeline) Run(ctx context.Context, path string) (*Result, error) {
	ctx, runID := infrastructure.EnsureRunID(ctx)
	state := NewOperationState(runID, path)

	ctx, span := p.tracer.TraceRun(ctx, state.ID, path)
	defer span.End()

	steps := p.registry.List()
	for _, s := range steps {
		state.SetStage(s.ID(), NewStepState(s.ID(), s.Name()))
	}

	state.Start()
	p.logRunStart(ctx, state, steps)

	var initial dataprocessing.Summary
	inspected := false
	reports := make([]StepReport, 0, len(steps))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, p.abort(ctx, span, state, steps[i:], NewCancellationError(step.ID(), err))
		}

		report, err := p.executeStep(ctx, state, step)
		if err != nil {
			return nil, p.abort(ctx, span, state, steps[i+1:], err)
		}
		reports = append(reports, report)

		if !inspected && state.Dataset() != nil {
			initial = dataprocessing.Summarize(state.Dataset(), p.opts.HeadRows)
			p.logInspection(ctx, state, "initial_inspection", initial)
			inspected = true
		}
	}

	ds := state.Dataset()
	if ds == nil {
		return nil, p.abort(ctx, span, state, nil, NewInvalidStateError("", "no step loaded a dataset"))
	}

	state.Complete()
	result := &Result{
		RunID:    state.ID,
		Source:   path,
		Dataset:  ds,
		Reports:  reports,
		Initial:  initial,
		Final:    dataprocessing.Summarize(ds, p.opts.HeadRows),
		Duration: time.Since(state.StartTime),
	}

	p.logInspection(ctx, state, "final_inspection", result.Final)
	p.logRunComplete(ctx, result)
	p.tracer.RecordRunResult(span, result)
	p.opts.Metrics.ObserveRun(initial.Rows, result.Final.Rows, nil)
	return result, nil
}

// executeStep runs one step and reports its effect on the dataset
func (p *Pipeline) executeStep(ctx context.Context, state *OperationState, step Step) (StepReport, error) {
	stepState := state.GetStage(step.ID())

	ctx, span := p.tracer.TraceStep(ctx, state.ID, step)
	defer span.End()

	before := state.Rows()
	p.logStepStart(ctx, state, step, before)
	stepState.Start()

	start := time.Now()
	err := step.Execute(ctx, state)
	duration := time.Since(start)

	if err != nil {
		stepState.Fail(err)
		p.tracer.RecordError(span, err)
		p.opts.Metrics.ObserveStep(step.ID(), 0, duration, err)
		p.logStepError(ctx, state, step, duration, err)
		if GetErrorType(err) == ErrorTypeInvalidState {
			return StepReport{}, err
		}
		return StepReport{}, NewExecutionError(step.ID(), err)
	}
	stepState.Complete()

	report := StepReport{
		StepID:     step.ID(),
		StepName:   step.Name(),
		RowsBefore: before,
		Duration:   duration,
		Message:    stepState.Message,
	}
	if ds := state.Dataset(); ds != nil {
		summary := dataprocessing.Summarize(ds, 0)
		report.RowsAfter = summary.Rows
		report.Columns = summary.Columns
		report.NullCounts = summary.NullCounts()
	}
	if step.ID() != StepIDLoad && report.RowsBefore > report.RowsAfter {
		report.Removed = report.RowsBefore - report.RowsAfter
	}

	p.tracer.RecordStepResult(span, report)
	p.opts.Metrics.ObserveStep(step.ID(), report.Removed, duration, nil)
	p.logStepComplete(ctx, state, report)
	return report, nil
}

// abort fails the run, skips the steps that did not run and returns err
func (p *Pipeline) abort(ctx context.Context, span trace.Span, state *OperationState, remaining []Step, err error) error {
	for _, s := range remaining {
		if st := state.GetStage(s.ID()); st != nil && st.GetStatus() == StepStatusPending {
			st.Skip("run aborted")
		}
	}

	if GetErrorType(err) == ErrorTypeCancellation {
		state.Cancel(err)
	} else {
		state.Fail(err)
	}
	state.SetDataset(nil)

	p.tracer.RecordError(span, err)
	p.opts.Metrics.ObserveRun(0, 0, err)
	p.logRunError(ctx, state, err)
	return err
}
