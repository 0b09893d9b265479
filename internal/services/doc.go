// Package services implements the business logic between the HTTP handlers
// and the data pipeline.
//
// DashboardService reads the CSV snapshot on every call, parses it and
// derives the requested view: monthly statistics, filtered document pages,
// doctor and patient tables, the prestaciones breakdown, the activity feed
// and exports. It owns the empty fallback policy: a missing or unreadable
// file yields an empty document list (and placeholder statistics) instead of
// an error, logged at WARN and counted in the load fallback metric.
//
// HealthService reports liveness, readiness and build information.
//
// Services return sentinel errors (ErrPatientNotFound, ErrInvalidPeriod,
// ErrUnsupportedFormat, ErrDataUnavailable) that handlers match with
// errors.Is.
package services
