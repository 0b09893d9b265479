package exporter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"meddash/pkg/contracts/domain"
)

// Writer renders a document table into an export format.
type Writer interface {
	Format() Format
	Write(ctx context.Context, w io.Writer, docs []domain.Document) error
}

// NewWriter returns the writer for the given format.
func NewWriter(f Format, logger *slog.Logger) (Writer, error) {
	switch f {
	case FormatCSV:
		return NewDocumentCSVWriter(logger), nil
	case FormatXLSX:
		return NewDocumentXLSXWriter(logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // UTF-8 BOM so spreadsheet tools detect the encoding
}

// WriteCSV writes headers and records to w.
func WriteCSV(w io.Writer, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// DocumentCSVWriter exports documents as comma separated values.
type DocumentCSVWriter struct {
	logger *slog.Logger
}

// NewDocumentCSVWriter creates a CSV document writer.
func NewDocumentCSVWriter(logger *slog.Logger) *DocumentCSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentCSVWriter{logger: logger.With(slog.String("component", "csv_exporter"))}
}

// Format implements Writer.
func (c *DocumentCSVWriter) Format() Format { return FormatCSV }

// Write implements Writer.
func (c *DocumentCSVWriter) Write(ctx context.Context, w io.Writer, docs []domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records := make([][]string, 0, len(docs))
	for _, doc := range docs {
		records = append(records, documentRow(doc))
	}

	c.logger.DebugContext(ctx, "writing CSV export", slog.Int("record_count", len(records)))

	return WriteCSV(w, WriteOptions{
		Headers:   DocumentHeaders,
		Records:   records,
		BOMPrefix: true,
	})
}
