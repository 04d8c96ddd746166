package operations

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of operation error
type ErrorType string

const (
	ErrorTypeExecution    ErrorType = "execution"
	ErrorTypeCancellation ErrorType = "cancellation"
	ErrorTypeInvalidState ErrorType = "invalid_state"
)

// OperationError reports which step of a run failed. It unwraps to the
// step's own error so callers can classify it with the errors package.
type OperationError struct {
	Type    ErrorType `json:"type"`
	Step    string    `json:"step,omitempty"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

// Error implements the error interface
func (e *OperationError) Error() string {
	if e == nil {
		return "unknown operation error"
	}
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Step != "" {
		msg = fmt.Sprintf("[%s] %s: %s", e.Type, e.Step, e.Message)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying error
func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// NewExecutionError creates a new execution error
func NewExecutionError(step string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeExecution,
		Step:    step,
		Message: "step execution failed",
		Cause:   cause,
	}
}

// NewCancellationError creates a new cancellation error
func NewCancellationError(step string, cause error) *OperationError {
	return &OperationError{
		Type:    ErrorTypeCancellation,
		Step:    step,
		Message: "run was cancelled",
		Cause:   cause,
	}
}

// NewInvalidStateError reports a step that ran without what it needs
func NewInvalidStateError(step, message string) *OperationError {
	return &OperationError{
		Type:    ErrorTypeInvalidState,
		Step:    step,
		Message: message,
	}
}

// FailedStep returns the ID of the step that produced err, if any
func FailedStep(err error) string {
	var opErr *OperationError
	if stderrors.As(err, &opErr) {
		return opErr.Step
	}
	return ""
}

// GetErrorType returns the type of the error
func GetErrorType(err error) ErrorType {
	if err == nil {
		return ""
	}
	var opErr *OperationError
	if stderrors.As(err, &opErr) {
		return opErr.Type
	}
	return ErrorTypeExecution
}
