package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"meddash/internal/dataprocessing"
	apierrors "meddash/internal/errors"
	"meddash/internal/exporter"
	"meddash/internal/files"
	"meddash/internal/infrastructure"
	"meddash/pkg/contracts/domain"
)

// Fallback reasons reported in logs and the load fallback metric.
const (
	FallbackMissing    = "missing"
	FallbackUnreadable = "unreadable"
)

// DefaultActivityLimit is the size of the activity feed when no limit is given.
const DefaultActivityLimit = dataprocessing.DefaultActivityLimit

// DataSource provides the raw CSV snapshot.
type DataSource interface {
	Path() string
	Read(ctx context.Context) ([]byte, error)
	Stat(ctx context.Context) (files.FileInfo, error)
}

// DashboardOptions configures a DashboardService.
type DashboardOptions struct {
	// Year and Month select the period reported by Data.
	Year  int
	Month int
	Stats dataprocessing.StatsOptions
	// Now is used for relative activity times. Defaults to time.Now.
	Now func() time.Time
}

// Snapshot is the result of one load of the data file.
type Snapshot struct {
	Documents []domain.Document
	// Fallback is set when the file could not be read and Documents is the
	// empty fallback.
	Fallback bool
	// Reason is one of the Fallback* constants when Fallback is set.
	Reason string
}

// DoctorsReport is the doctors view: per doctor rows plus a summary.
type DoctorsReport struct {
	Doctors []domain.DoctorStats `json:"doctors"`
	Summary domain.DoctorSummary `json:"summary"`
}

// DashboardService runs the load, parse and aggregate pipeline. Every call
// reads the data file again; nothing is cached between calls.
type DashboardService struct {
	source  DataSource
	opts    DashboardOptions
	metrics *infrastructure.Metrics
	logger  *slog.Logger
}

// NewDashboardService creates a dashboard service over source.
func NewDashboardService(source DataSource, opts DashboardOptions, metrics *infrastructure.Metrics, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if !opts.Stats.DailyCountsMode.Valid() {
		opts.Stats.DailyCountsMode = dataprocessing.DailyCountsAuto
	}
	if metrics == nil {
		metrics = infrastructure.NewNoopMetrics()
	}

	logger = logger.With(slog.String("component", "dashboard_service"))
	logger.Info("DashboardService initialized",
		slog.String("csv_path", source.Path()),
		slog.Int("stats_year", opts.Year),
		slog.Int("stats_month", opts.Month),
		slog.String("daily_counts_mode", string(opts.Stats.DailyCountsMode)))

	return &DashboardService{
		source:  source,
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}
}

// Load reads and parses the data file. A missing or unreadable file is not
// an error: it yields an empty Snapshot with Fallback set. Only context
// errors are returned.
func (s *DashboardService) Load(ctx context.Context) (Snapshot, error) {
	start := time.Now()

	raw, err := s.source.Read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Snapshot{}, ctxErr
		}
		reason := FallbackUnreadable
		if errors.Is(err, files.ErrNotFound) {
			reason = FallbackMissing
		}
		s.logger.WarnContext(ctx, "data file unavailable, serving empty fallback",
			slog.String("path", s.source.Path()),
			slog.String("reason", reason),
			slog.String("error", err.Error()))
		s.metrics.RecordDataLoad(ctx, 0, 0, time.Since(start), reason)
		return Snapshot{Documents: []domain.Document{}, Fallback: true, Reason: reason}, nil
	}

	result := dataprocessing.ParseCSVData(raw)
	snap := Snapshot{Documents: result.Documents}

	s.metrics.RecordDataLoad(ctx, len(result.Documents), result.RowsDropped, time.Since(start), "")
	s.logger.DebugContext(ctx, "data file loaded",
		slog.Int("rows_read", result.RowsRead),
		slog.Int("rows_dropped", result.RowsDropped),
		slog.Int("documents", len(result.Documents)),
		slog.Duration("duration", time.Since(start)))

	return snap, nil
}

// documents returns every parsed document, or an empty list on fallback.
func (s *DashboardService) documents(ctx context.Context) ([]domain.Document, error) {
	snap, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Documents, nil
}

// Data returns all documents with the statistics of the configured period.
func (s *DashboardService) Data(ctx context.Context) (domain.DashboardData, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return domain.DashboardData{}, err
	}
	return domain.DashboardData{
		Documents: docs,
		Stats:     dataprocessing.CalculateMonthlyStats(docs, s.opts.Year, s.opts.Month, s.opts.Stats),
	}, nil
}

// Stats returns the statistics of the given period. Zero values select the
// configured year or month.
func (s *DashboardService) Stats(ctx context.Context, year, month int) (domain.MonthlyStats, error) {
	if year == 0 {
		year = s.opts.Year
	}
	if month == 0 {
		month = s.opts.Month
	}
	if err := ValidatePeriod(year, month); err != nil {
		return domain.MonthlyStats{}, err
	}

	docs, err := s.documents(ctx)
	if err != nil {
		return domain.MonthlyStats{}, err
	}
	return dataprocessing.CalculateMonthlyStats(docs, year, month, s.opts.Stats), nil
}

// ValidatePeriod checks a statistics period.
func ValidatePeriod(year, month int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %d out of range 1-12", ErrInvalidPeriod, month)
	}
	if year < 1900 || year > 9999 {
		return fmt.Errorf("%w: year %d out of range 1900-9999", ErrInvalidPeriod, year)
	}
	return nil
}

// ListDocuments returns one page of the documents matching filter.
func (s *DashboardService) ListDocuments(ctx context.Context, filter domain.DocumentFilter, page, perPage int) (domain.Page, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return domain.Page{}, err
	}
	return dataprocessing.Paginate(dataprocessing.FilterDocuments(docs, filter), page, perPage), nil
}

// Doctors returns per doctor statistics and their summary.
func (s *DashboardService) Doctors(ctx context.Context) (DoctorsReport, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return DoctorsReport{}, err
	}
	doctors := dataprocessing.CalculateDoctorStats(docs)
	return DoctorsReport{Doctors: doctors, Summary: dataprocessing.SummarizeDoctors(doctors)}, nil
}

// Patients lists unique patients.
func (s *DashboardService) Patients(ctx context.Context) ([]domain.PatientSummary, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.ListPatients(docs), nil
}

// Patient returns the profile of one patient.
func (s *DashboardService) Patient(ctx context.Context, rut string) (domain.PatientProfile, error) {
	rut = strings.TrimSpace(rut)
	docs, err := s.documents(ctx)
	if err != nil {
		return domain.PatientProfile{}, err
	}
	profile, ok := dataprocessing.BuildPatientProfile(docs, rut)
	if !ok {
		return domain.PatientProfile{}, fmt.Errorf("%w: %s", ErrPatientNotFound, rut)
	}
	return profile, nil
}

// Prestaciones returns the prestaciones breakdown.
func (s *DashboardService) Prestaciones(ctx context.Context) (domain.PrestacionesSummary, error) {
	docs, err := s.documents(ctx)
	if err != nil {
		return domain.PrestacionesSummary{}, err
	}
	return dataprocessing.SummarizePrestaciones(docs), nil
}

// Activities returns up to limit recent activities. A non-positive limit
// uses DefaultActivityLimit.
func (s *DashboardService) Activities(ctx context.Context, limit int) ([]domain.Activity, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	docs, err := s.documents(ctx)
	if err != nil {
		return nil, err
	}
	return dataprocessing.RecentActivities(docs, s.opts.Now(), limit), nil
}

// Export writes the documents matching filter to w and returns the number
// of exported documents. The empty fallback is never exported.
func (s *DashboardService) Export(ctx context.Context, w io.Writer, format exporter.Format, filter domain.DocumentFilter) (int, error) {
	writer, err := exporter.NewWriter(format, s.logger)
	if err != nil {
		return 0, err
	}

	snap, err := s.Load(ctx)
	if err != nil {
		return 0, err
	}
	if snap.Fallback {
		return 0, fmt.Errorf("%w: %s", ErrDataUnavailable, snap.Reason)
	}

	docs := dataprocessing.FilterDocuments(snap.Documents, filter)
	if err := writer.Write(ctx, w, docs); err != nil {
		return 0, apierrors.NewExportError(fmt.Sprintf("failed to write %s export", format), err).
			WithContext("format", string(format))
	}

	s.metrics.RecordExport(ctx, string(format))
	s.logger.InfoContext(ctx, "documents exported",
		slog.String("format", string(format)),
		slog.Int("documents", len(docs)))

	return len(docs), nil
}

// ExportFilename names an export produced now.
func (s *DashboardService) ExportFilename(format exporter.Format) string {
	return exporter.ExportFilename(format, s.opts.Now())
}
