package exporter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"meddash/pkg/contracts/domain"
)

// ErrUnsupportedFormat is returned for export formats other than csv and xlsx.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format identifies an export file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a user supplied format name. An empty value selects CSV.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatCSV:
		return FormatCSV, nil
	case FormatXLSX:
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// ExportFilename returns medical_documents_YYYY-MM-DD with the format extension.
func ExportFilename(f Format, day time.Time) string {
	return fmt.Sprintf("medical_documents_%s.%s", day.Format("2006-01-02"), f)
}

// DocumentHeaders are the column titles of every export.
var DocumentHeaders = []string{
	"ID Documento",
	"Fecha",
	"Tipo",
	"Clasificación",
	"Paciente",
	"RUT Paciente",
	"Médico",
	"RUT Médico",
	"Estado",
	"Tiempo (ms)",
	"Prestaciones",
}

// documentRow flattens a document into export columns.
func documentRow(doc domain.Document) []string {
	return []string{
		doc.DocumentID,
		doc.FechaExamen,
		doc.TipoDocumento,
		doc.Clasificacion,
		doc.NombrePaciente,
		doc.RUTPaciente,
		doc.NombreMedico,
		doc.RUTMedico,
		formatStatus(doc.Error),
		strconv.Itoa(doc.InferenceTime),
		joinPrestaciones(doc.Prestaciones),
	}
}

func formatStatus(failed bool) string {
	if failed {
		return "Error"
	}
	return "OK"
}

func joinPrestaciones(items []domain.Prestacion) string {
	parts := make([]string, 0, len(items))
	for _, p := range items {
		parts = append(parts, p.Descripcion)
	}
	return strings.Join(parts, "; ")
}
