package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meddash/pkg/contracts/domain"
)

func novemberDocs() []domain.Document {
	return []domain.Document{
		{DocumentID: "1", TipoDocumento: "Receta", Clasificacion: "Farmacia", RUTPaciente: "P1", RUTMedico: "M1", DateTime: "2024-11-01 09:00:00", InferenceTime: 20},
		{DocumentID: "2", TipoDocumento: "Receta", Clasificacion: "Farmacia", RUTPaciente: "P2", RUTMedico: "M1", DateTime: "2024-11-01T10:00:00Z", InferenceTime: 30, Error: true},
		{DocumentID: "3", TipoDocumento: "Laboratorio", RUTPaciente: "P1", RUTMedico: "M2", DateTime: "2024-11-17 12:00:00", InferenceTime: 40},
		{DocumentID: "4", TipoDocumento: "Laboratorio", RUTPaciente: "", RUTMedico: "", DateTime: "2024-11-30", InferenceTime: 50},
		{DocumentID: "5", TipoDocumento: "Laboratorio", RUTPaciente: "P9", RUTMedico: "M9", DateTime: "2024-10-31 23:59:59", InferenceTime: 99},
		{DocumentID: "6", TipoDocumento: "Receta", RUTPaciente: "P9", RUTMedico: "M9", DateTime: "not a date", InferenceTime: 99},
	}
}

func TestCalculateMonthlyStats_EmptyUsesPlaceholders(t *testing.T) {
	stats := CalculateMonthlyStats(nil, DefaultStatsYear, DefaultStatsMonth, DefaultStatsOptions())

	assert.True(t, stats.IsPlaceholder)
	assert.Equal(t, 1847, stats.TotalDocuments)
	assert.Equal(t, 1725, stats.SuccessfulDocuments)
	assert.Equal(t, 122, stats.ErrorDocuments)
	assert.Equal(t, stats.TotalDocuments, stats.SuccessfulDocuments+stats.ErrorDocuments)
	assert.InDelta(t, 100, stats.SuccessRate+stats.ErrorRate, 1e-9)
	assert.InDelta(t, 122.0/1847.0*100, stats.ErrorRate, 1e-9)
	assert.Equal(t, 28.0, stats.AvgInferenceTime)
	assert.Equal(t, 1234, stats.TotalPatients)
	assert.Equal(t, 24, stats.TotalDoctors)
	assert.NotNil(t, stats.DocumentsByType)
	assert.NotNil(t, stats.DocumentsByClassification)
	assert.NotNil(t, stats.ErrorsByType)
	assert.Empty(t, stats.DocumentsByType)
	assert.True(t, stats.DailyCountsSynthetic)
}

func TestCalculateMonthlyStats_OtherMonthUsesPlaceholders(t *testing.T) {
	stats := CalculateMonthlyStats(novemberDocs(), 2023, 1, DefaultStatsOptions())
	assert.True(t, stats.IsPlaceholder)
	assert.Equal(t, PlaceholderTotalDocuments, stats.TotalDocuments)
}

func TestCalculateMonthlyStats_RealData(t *testing.T) {
	opts := StatsOptions{DailyCountsMode: DailyCountsAuto, Seed: 7}
	stats := CalculateMonthlyStats(novemberDocs(), 2024, 11, opts)

	assert.False(t, stats.IsPlaceholder)
	assert.False(t, stats.DailyCountsSynthetic)
	assert.Equal(t, 4, stats.TotalDocuments)
	assert.Equal(t, 3, stats.SuccessfulDocuments)
	assert.Equal(t, 1, stats.ErrorDocuments)
	assert.InDelta(t, 25.0, stats.ErrorRate, 1e-9)
	assert.InDelta(t, 75.0, stats.SuccessRate, 1e-9)
	assert.InDelta(t, 35.0, stats.AvgInferenceTime, 1e-9)
	assert.Equal(t, 2, stats.TotalPatients)
	assert.Equal(t, 2, stats.TotalDoctors)
	assert.Equal(t, map[string]int{"Receta": 2, "Laboratorio": 2}, stats.DocumentsByType)
	assert.Equal(t, map[string]int{"Receta": 1}, stats.ErrorsByType)
	assert.Equal(t, map[string]int{"Farmacia": 2}, stats.DocumentsByClassification)

	require.Len(t, stats.DailyCounts, 30)
	assert.Equal(t, domain.DailyCount{Day: 1, Date: "2024-11-01", Count: 2}, stats.DailyCounts[0])
	assert.Equal(t, 1, stats.DailyCounts[16].Count)
	assert.Equal(t, 1, stats.DailyCounts[29].Count)
}

func TestCalculateMonthlyStats_DayOutsideWindow(t *testing.T) {
	docs := []domain.Document{
		{DocumentID: "1", DateTime: "2024-12-30 08:00:00"},
		{DocumentID: "2", DateTime: "2024-12-31 08:00:00"},
	}
	stats := CalculateMonthlyStats(docs, 2024, 12, DefaultStatsOptions())

	assert.Equal(t, 2, stats.TotalDocuments)
	total := 0
	for _, dc := range stats.DailyCounts {
		total += dc.Count
	}
	assert.Equal(t, 1, total)
}

func TestCalculateMonthlyStats_AllErrorsKeepsRealCounts(t *testing.T) {
	docs := []domain.Document{
		{DocumentID: "1", DateTime: "2024-11-03", Error: true, RUTPaciente: "P1", RUTMedico: "M1"},
		{DocumentID: "2", DateTime: "2024-11-04", Error: true, RUTPaciente: "P1", RUTMedico: "M1"},
	}
	stats := CalculateMonthlyStats(docs, 2024, 11, DefaultStatsOptions())

	assert.False(t, stats.IsPlaceholder)
	assert.Equal(t, 2, stats.TotalDocuments)
	assert.Equal(t, 0, stats.SuccessfulDocuments)
	assert.Equal(t, 2, stats.ErrorDocuments)
	assert.InDelta(t, 100.0, stats.ErrorRate, 1e-9)
	assert.InDelta(t, 0.0, stats.SuccessRate, 1e-9)
}

func TestCalculateMonthlyStats_SyntheticDailyCounts(t *testing.T) {
	stats := CalculateMonthlyStats(nil, 2024, 11, StatsOptions{DailyCountsMode: DailyCountsAuto, Seed: 42})

	require.Len(t, stats.DailyCounts, 30)
	for _, dc := range stats.DailyCounts {
		switch {
		case dc.Day == 5:
			assert.Equal(t, 156, dc.Count)
		case dc.Day == 17:
			assert.Equal(t, 167, dc.Count)
		case dc.Day == 23:
			assert.Equal(t, 189, dc.Count)
		case dc.Day >= 28:
			assert.Zero(t, dc.Count, "day %d", dc.Day)
		default:
			assert.GreaterOrEqual(t, dc.Count, 40, "day %d", dc.Day)
			assert.Less(t, dc.Count, 90, "day %d", dc.Day)
		}
	}

	again := CalculateMonthlyStats(nil, 2024, 11, StatsOptions{DailyCountsMode: DailyCountsAuto, Seed: 42})
	assert.Equal(t, stats.DailyCounts, again.DailyCounts)
}

func TestCalculateMonthlyStats_DailyCountsModes(t *testing.T) {
	tests := []struct {
		name          string
		docs          []domain.Document
		mode          DailyCountsMode
		wantSynthetic bool
	}{
		{name: "auto with data", docs: novemberDocs(), mode: DailyCountsAuto, wantSynthetic: false},
		{name: "auto without data", docs: nil, mode: DailyCountsAuto, wantSynthetic: true},
		{name: "always with data", docs: novemberDocs(), mode: DailyCountsAlways, wantSynthetic: true},
		{name: "never without data", docs: nil, mode: DailyCountsNever, wantSynthetic: false},
		{name: "unknown mode behaves as auto", docs: nil, mode: "sometimes", wantSynthetic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateMonthlyStats(tt.docs, 2024, 11, StatsOptions{DailyCountsMode: tt.mode, Seed: 1})
			assert.Equal(t, tt.wantSynthetic, stats.DailyCountsSynthetic)
			assert.Len(t, stats.DailyCounts, 30)
			if !tt.wantSynthetic && tt.docs == nil {
				for _, dc := range stats.DailyCounts {
					assert.Zero(t, dc.Count)
				}
			}
		})
	}
}

func TestCalculateMonthlyStats_ShortMonthDates(t *testing.T) {
	stats := CalculateMonthlyStats(nil, 2023, 2, DefaultStatsOptions())
	require.Len(t, stats.DailyCounts, 30)
	assert.Equal(t, "2023-02-28", stats.DailyCounts[27].Date)
	assert.Empty(t, stats.DailyCounts[28].Date)
	assert.Empty(t, stats.DailyCounts[29].Date)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		value   string
		wantOK  bool
		wantDay int
	}{
		{"2024-11-05T10:00:00Z", true, 5},
		{"2024-11-05T23:30:00-05:00", true, 6},
		{"2024-11-05 10:00:00", true, 5},
		{"2024-11-05T10:00:00", true, 5},
		{"2024-11-05", true, 5},
		{"2024-11-05 10:00:00.123", true, 5},
		{"05/11/2024", false, 0},
		{"", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			ts, ok := ParseTimestamp(tt.value)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.wantDay, ts.Day())
			}
		})
	}
}
