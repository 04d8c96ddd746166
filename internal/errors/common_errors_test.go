package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "parsing error type", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "storage error type", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "validation error type", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "not found error type", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "config error type", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeNotFound,
				Message: "source file not found",
			},
			wantMessage: "[NOT_FOUND] source file not found",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeParsing,
				Message: "failed to read header",
				Cause:   fmt.Errorf("unexpected EOF"),
			},
			wantMessage: "[PARSING] failed to read header: unexpected EOF",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := NewStorageError("write failed", cause)

	assert.Same(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))
	assert.Nil(t, NewValidationError("no cause").Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	t.Run("initializes nil context", func(t *testing.T) {
		appErr := &AppError{Type: ErrTypeParsing, Message: "bad cell"}

		result := appErr.WithContext("row", 12)

		assert.Same(t, appErr, result)
		require.NotNil(t, result.Context)
		assert.Equal(t, 12, result.Context["row"])
	})

	t.Run("keeps existing context", func(t *testing.T) {
		appErr := NewParsingError("bad cell", nil).WithContext("column", "Age")

		appErr.WithContext("value", "abc")

		assert.Equal(t, "Age", appErr.Context["column"])
		assert.Equal(t, "abc", appErr.Context["value"])
	})
}

func TestConstructors(t *testing.T) {
	cause := fmt.Errorf("boom")

	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantMsg  string
	}{
		{name: "parsing", err: NewParsingError("parse failed", cause), wantType: ErrTypeParsing, wantMsg: "parse failed"},
		{name: "storage", err: NewStorageError("write failed", cause), wantType: ErrTypeStorage, wantMsg: "write failed"},
		{name: "validation", err: NewValidationError("invalid"), wantType: ErrTypeValidation, wantMsg: "invalid"},
		{name: "not found", err: NewNotFoundError("data.csv"), wantType: ErrTypeNotFound, wantMsg: "data.csv not found"},
		{name: "config", err: NewConfigError("bad config", cause), wantType: ErrTypeConfig, wantMsg: "bad config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantMsg, tt.err.Message)
			assert.NotNil(t, tt.err.Context)
		})
	}
}

func TestTypeClassification(t *testing.T) {
	notFound := NewNotFoundError("input.csv")
	parsing := NewParsingError("bad row", nil)

	tests := []struct {
		name         string
		err          error
		wantType     ErrorType
		wantNotFound bool
		wantParsing  bool
	}{
		{name: "nil", err: nil, wantType: ""},
		{name: "plain error", err: errors.New("plain"), wantType: ""},
		{name: "not found", err: notFound, wantType: ErrTypeNotFound, wantNotFound: true},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", notFound), wantType: ErrTypeNotFound, wantNotFound: true},
		{name: "parsing", err: parsing, wantType: ErrTypeParsing, wantParsing: true},
		{name: "double wrapped parsing", err: fmt.Errorf("a: %w", fmt.Errorf("b: %w", parsing)), wantType: ErrTypeParsing, wantParsing: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, TypeOf(tt.err))
			assert.Equal(t, tt.wantNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantParsing, IsParsing(tt.err))
		})
	}
}
