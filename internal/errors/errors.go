package errors

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

// Codes carried in the error_code extension of a problem built from an
// APIError.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeMetricsDisabled  = "METRICS_DISABLED"
)

// APIError is a request-level failure with a fixed status and code. Details,
// when set, reaches the client as the details extension.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// Render sets the response status for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// WithDetails returns a copy of e carrying details. e is not modified, so
// the package-level errors stay reusable.
func (e *APIError) WithDetails(details interface{}) *APIError {
	c := *e
	c.Details = details
	return &c
}

// FieldError names one rejected query or path field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

var (
	// ErrInvalidQuery rejects a query that failed validation.
	ErrInvalidQuery = New(http.StatusBadRequest, CodeValidationFailed, "Query validation failed")

	// ErrMetricsDisabled answers /metrics when no Prometheus exporter runs.
	ErrMetricsDisabled = New(http.StatusServiceUnavailable, CodeMetricsDisabled, "Metrics exporter disabled").WithDetails("telemetry.metric_exporter=none")
)

// InvalidParameter reports a query or path parameter that could not be
// converted; the conversion error becomes the details.
func InvalidParameter(name string, err error) *APIError {
	return New(http.StatusBadRequest, CodeInvalidParameter,
		fmt.Sprintf("Invalid value for parameter %q", name)).WithDetails(err.Error())
}

// InvalidFields is ErrInvalidQuery listing every rejected field.
func InvalidFields(fields ...FieldError) *APIError {
	return ErrInvalidQuery.WithDetails(fields)
}
