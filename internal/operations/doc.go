// Package operations runs the appointment cleaning pipeline.
//
// A Pipeline executes Steps in registration order over a shared
// OperationState. The standard pipeline is:
//
//	load -> deduplicate -> normalize_timestamps -> rename_columns -> validate_age
//
// Every step produces a StepReport (rows before and after, records removed,
// null counts) which is logged, traced and counted in Prometheus metrics.
//
// Example usage:
//
//	p, err := operations.NewPipeline(operations.Options{
//		TimestampPolicy: domain.TimestampPolicyDrop,
//		Logger:          logger,
//	})
//	if err != nil {
//		return err
//	}
//	result, err := p.Run(ctx, "KaggleV2-May-2016.csv")
//
// Run either returns a fully cleaned dataset or an error and no result.
// Step failures are *OperationError values naming the step; they unwrap to
// the *errors.AppError raised by the step.
package operations
