package exporter

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"meddash/pkg/contracts/domain"
)

// SheetName is the worksheet that holds exported documents.
const SheetName = "Documentos"

// DocumentXLSXWriter exports documents as an Excel workbook.
type DocumentXLSXWriter struct {
	logger *slog.Logger
}

// NewDocumentXLSXWriter creates an XLSX document writer.
func NewDocumentXLSXWriter(logger *slog.Logger) *DocumentXLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentXLSXWriter{logger: logger.With(slog.String("component", "xlsx_exporter"))}
}

// Format implements Writer.
func (x *DocumentXLSXWriter) Format() Format { return FormatXLSX }

// Write implements Writer.
func (x *DocumentXLSXWriter) Write(ctx context.Context, w io.Writer, docs []domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			x.logger.WarnContext(ctx, "failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("failed to open sheet writer: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	header := make([]interface{}, len(DocumentHeaders))
	for i, h := range DocumentHeaders {
		header[i] = excelize.Cell{StyleID: bold, Value: h}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	for i, doc := range docs {
		row := documentRow(doc)
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		// Tiempo (ms) is written as a number.
		values[9] = doc.InferenceTime

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush sheet: %w", err)
	}

	x.logger.DebugContext(ctx, "writing XLSX export", slog.Int("record_count", len(docs)))

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
