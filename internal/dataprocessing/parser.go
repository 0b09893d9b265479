package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"meddash/pkg/contracts/domain"
)

// utf8BOM is stripped from the first header cell when present.
const utf8BOM = "\ufeff"

// FieldKind is the target semantic type of a CSV column.
type FieldKind int

const (
	KindText FieldKind = iota
	KindBool
	KindInt
	KindOptionalText
	KindPrestaciones
)

// fieldSpec converts one raw, trimmed cell into its Document field. Each
// converter owns its fallback value, so a bad cell never fails the row.
type fieldSpec struct {
	kind FieldKind
	set  func(doc *domain.Document, raw string)
}

// documentFields is the per-column conversion table. Columns not listed here
// are ignored; listed columns missing from the header keep their fallback.
var documentFields = map[string]fieldSpec{
	"document_id":     {KindText, func(d *domain.Document, v string) { d.DocumentID = v }},
	"tipo_documento":  {KindText, func(d *domain.Document, v string) { d.TipoDocumento = v }},
	"clasificacion":   {KindText, func(d *domain.Document, v string) { d.Clasificacion = v }},
	"nombre_paciente": {KindText, func(d *domain.Document, v string) { d.NombrePaciente = v }},
	"RUT_paciente":    {KindText, func(d *domain.Document, v string) { d.RUTPaciente = v }},
	"nombre_medico":   {KindText, func(d *domain.Document, v string) { d.NombreMedico = v }},
	"RUT_medico":      {KindText, func(d *domain.Document, v string) { d.RUTMedico = v }},
	"fecha_examen":    {KindText, func(d *domain.Document, v string) { d.FechaExamen = v }},
	"date_time":       {KindText, func(d *domain.Document, v string) { d.DateTime = v }},
	"error":           {KindBool, func(d *domain.Document, v string) { d.Error = parseBool(v) }},
	"inference_time":  {KindInt, func(d *domain.Document, v string) { d.InferenceTime = parseLeadingInt(v) }},
	"message":         {KindOptionalText, func(d *domain.Document, v string) { d.Message = parseOptionalText(v) }},
	"prestaciones":    {KindPrestaciones, func(d *domain.Document, v string) { d.Prestaciones = ParsePrestaciones(v) }},
}

// KindOf reports the conversion kind registered for a column name.
func KindOf(column string) (FieldKind, bool) {
	spec, ok := documentFields[column]
	return spec.kind, ok
}

// ParseResult is the outcome of parsing one CSV snapshot.
type ParseResult struct {
	Documents   []domain.Document
	RowsRead    int
	RowsDropped int
}

// ParseDocuments reads a CSV snapshot whose header row names Document
// fields. Only a failure of r itself is returned; see ParseCSVData.
func ParseDocuments(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ParseResult{Documents: []domain.Document{}}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return ParseCSVData(data), nil
}

// ParseCSVData parses an in-memory CSV snapshot. The input is split into
// physical lines and every line is decoded on its own, so a malformed row
// never affects its neighbours. Rows are converted with best-effort typing;
// rows without a document_id are dropped. Quoted cells cannot span lines.
func ParseCSVData(data []byte) *ParseResult {
	result := &ParseResult{Documents: []domain.Document{}}

	var columns []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		if len(line) == 0 {
			continue
		}
		record := decodeLine(line)
		if columns == nil {
			columns = normalizeHeader(record)
			continue
		}
		result.RowsRead++

		doc := convertRow(columns, record)
		if doc.DocumentID == "" {
			result.RowsDropped++
			continue
		}
		result.Documents = append(result.Documents, doc)
	}

	return result
}

// decodeLine decodes one physical line. A line the CSV reader rejects is
// split on commas instead.
func decodeLine(line []byte) []string {
	reader := csv.NewReader(bytes.NewReader(line))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	record, err := reader.Read()
	if err != nil {
		return strings.Split(string(line), ",")
	}
	return record
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		columns[i] = strings.TrimSpace(name)
	}
	return columns
}

// convertRow maps a record onto the header: missing trailing cells read as
// empty and extra cells are ignored.
func convertRow(columns, record []string) domain.Document {
	doc := domain.Document{Prestaciones: []domain.Prestacion{}}
	for i, column := range columns {
		spec, ok := documentFields[column]
		if !ok {
			continue
		}
		var raw string
		if i < len(record) {
			raw = strings.TrimSpace(record[i])
		}
		spec.set(&doc, raw)
	}
	return doc
}

func parseBool(v string) bool {
	return strings.EqualFold(v, "true")
}

// parseLeadingInt returns the integer formed by an optional sign and the
// leading run of digits, or 0 when there is none.
func parseLeadingInt(v string) int {
	end := 0
	if end < len(v) && (v[end] == '-' || v[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0
	}
	return n
}

func parseOptionalText(v string) *string {
	if v == "" || v == "null" {
		return nil
	}
	return &v
}
