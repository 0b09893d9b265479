package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"meddash/internal/exporter"
	"meddash/internal/services"
	"meddash/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Data(ctx context.Context) (domain.DashboardData, error) {
	args := m.Called()
	data, _ := args.Get(0).(domain.DashboardData)
	return data, args.Error(1)
}

func (m *MockDashboardService) Stats(ctx context.Context, year, month int) (domain.MonthlyStats, error) {
	args := m.Called(year, month)
	stats, _ := args.Get(0).(domain.MonthlyStats)
	return stats, args.Error(1)
}

func (m *MockDashboardService) ListDocuments(ctx context.Context, filter domain.DocumentFilter, page, perPage int) (domain.Page, error) {
	args := m.Called(filter, page, perPage)
	p, _ := args.Get(0).(domain.Page)
	return p, args.Error(1)
}

func (m *MockDashboardService) Doctors(ctx context.Context) (services.DoctorsReport, error) {
	args := m.Called()
	report, _ := args.Get(0).(services.DoctorsReport)
	return report, args.Error(1)
}

func (m *MockDashboardService) Patients(ctx context.Context) ([]domain.PatientSummary, error) {
	args := m.Called()
	patients, _ := args.Get(0).([]domain.PatientSummary)
	return patients, args.Error(1)
}

func (m *MockDashboardService) Patient(ctx context.Context, rut string) (domain.PatientProfile, error) {
	args := m.Called(rut)
	profile, _ := args.Get(0).(domain.PatientProfile)
	return profile, args.Error(1)
}

func (m *MockDashboardService) Prestaciones(ctx context.Context) (domain.PrestacionesSummary, error) {
	args := m.Called()
	summary, _ := args.Get(0).(domain.PrestacionesSummary)
	return summary, args.Error(1)
}

func (m *MockDashboardService) Activities(ctx context.Context, limit int) ([]domain.Activity, error) {
	args := m.Called(limit)
	feed, _ := args.Get(0).([]domain.Activity)
	return feed, args.Error(1)
}

func (m *MockDashboardService) Export(ctx context.Context, w io.Writer, format exporter.Format, filter domain.DocumentFilter) (int, error) {
	args := m.Called(format, filter)
	if body, ok := args.Get(0).(string); ok && body != "" {
		if _, err := io.WriteString(w, body); err != nil {
			return 0, err
		}
	}
	return args.Int(1), args.Error(2)
}

func (m *MockDashboardService) ExportFilename(format exporter.Format) string {
	return exporter.ExportFilename(format, fixedDay)
}
