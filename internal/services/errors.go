package services

import (
	"errors"

	"meddash/internal/exporter"
)

// Dashboard service errors
var (
	// ErrDataUnavailable is returned by operations that refuse to work on the
	// empty fallback, such as exports.
	ErrDataUnavailable = errors.New("document data unavailable")

	ErrPatientNotFound = errors.New("patient not found")
	ErrInvalidPeriod   = errors.New("invalid statistics period")

	// ErrUnsupportedFormat matches exporter.ErrUnsupportedFormat.
	ErrUnsupportedFormat = exporter.ErrUnsupportedFormat
)
