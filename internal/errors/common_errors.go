package errors

import (
	"fmt"
)

// ErrorType classifies an AppError; the error handler picks the HTTP status
// and problem type from it.
type ErrorType string

const (
	// ErrTypeStorage: the data file exists but could not be read.
	ErrTypeStorage ErrorType = "STORAGE"
	// ErrTypeValidation: a caller supplied an unusable period or option.
	ErrTypeValidation ErrorType = "VALIDATION"
	// ErrTypeExport: a CSV or XLSX export could not be written.
	ErrTypeExport ErrorType = "EXPORT"
	// ErrTypeConfig: configuration could not be loaded. Never shown to clients.
	ErrTypeConfig ErrorType = "CONFIG"
)

// AppError is a failure inside the dashboard pipeline. Context entries, such
// as the data file path or the export format, become problem extensions.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext records key on e and returns e for chaining.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewStorageError wraps a read or stat failure of the data file.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewAppValidationError rejects caller input that has no field detail.
func NewAppValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewExportError wraps a writer failure while streaming an export.
func NewExportError(message string, cause error) *AppError {
	return NewAppError(ErrTypeExport, message, cause)
}

// NewConfigError wraps a failure from config.Load.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
