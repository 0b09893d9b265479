package http

import (
	"context"
	"io"

	"meddash/internal/exporter"
	"meddash/internal/services"
	"meddash/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations used by handlers
type DashboardServiceInterface interface {
	Data(ctx context.Context) (domain.DashboardData, error)
	Stats(ctx context.Context, year, month int) (domain.MonthlyStats, error)
	ListDocuments(ctx context.Context, filter domain.DocumentFilter, page, perPage int) (domain.Page, error)
	Doctors(ctx context.Context) (services.DoctorsReport, error)
	Patients(ctx context.Context) ([]domain.PatientSummary, error)
	Patient(ctx context.Context, rut string) (domain.PatientProfile, error)
	Prestaciones(ctx context.Context) (domain.PrestacionesSummary, error)
	Activities(ctx context.Context, limit int) ([]domain.Activity, error)
	Export(ctx context.Context, w io.Writer, format exporter.Format, filter domain.DocumentFilter) (int, error)
	ExportFilename(format exporter.Format) string
}
