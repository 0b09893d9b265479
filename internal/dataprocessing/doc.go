// Package dataprocessing turns a medical-document CSV snapshot into the
// figures shown by the dashboard.
//
// # Architecture
//
// The package is a set of pure functions over []domain.Document:
//
// 1. Parser: ParseDocuments converts CSV rows through a per-column conversion
// table and decodes the nested prestaciones cell (ParsePrestaciones)
// 2. Aggregator: CalculateMonthlyStats summarizes one calendar month
// 3. Views: FilterDocuments, Paginate, CalculateDoctorStats, ListPatients,
// BuildPatientProfile, SummarizePrestaciones and RecentActivities
//
// # Usage
//
//	result := dataprocessing.ParseCSVData(raw)
//	stats := dataprocessing.CalculateMonthlyStats(result.Documents, 2024, 11,
//	    dataprocessing.DefaultStatsOptions())
//
// # Data Flow
//
//	CSV bytes → Parser → Documents → Aggregator / Views → JSON
//
// # Error Handling
//
// Parsing never fails. Each line is decoded separately and cell coercion
// never fails: every column has a fallback value and invalid
// prestaciones decode to an empty list. Rows without a document_id are
// dropped and counted in ParseResult.RowsDropped.
//
// # Placeholder Data
//
// When no document falls in the requested month, CalculateMonthlyStats
// reports fixed demo totals and sets MonthlyStats.IsPlaceholder. The daily
// table may be synthesized as well; MonthlyStats.DailyCountsSynthetic tells
// the caller when that happened.
package dataprocessing
