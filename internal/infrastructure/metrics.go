package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
)

// Metrics holds the application instruments. Counter names get the _total
// suffix from the Prometheus exporter.
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Data metrics
	DocumentsParsed metric.Int64Counter
	RowsDropped     metric.Int64Counter
	LoadFallbacks   metric.Int64Counter
	LoadDuration    metric.Float64Histogram
	FileChanges     metric.Int64Counter
	Exports         metric.Int64Counter

	WebSocketClients metric.Int64UpDownCounter
}

// CreateMetrics registers every instrument on meter.
func CreateMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	if m.HTTPRequestsTotal, err = meter.Int64Counter("meddash_http_requests",
		metric.WithDescription("Total number of HTTP requests")); err != nil {
		return nil, err
	}
	if m.HTTPRequestDuration, err = meter.Float64Histogram("meddash_http_request_duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.HTTPActiveRequests, err = meter.Int64UpDownCounter("meddash_http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests")); err != nil {
		return nil, err
	}

	if m.DocumentsParsed, err = meter.Int64Counter("meddash_documents_parsed",
		metric.WithDescription("Documents parsed from the CSV snapshot")); err != nil {
		return nil, err
	}
	if m.RowsDropped, err = meter.Int64Counter("meddash_rows_dropped",
		metric.WithDescription("CSV rows dropped for missing or malformed fields")); err != nil {
		return nil, err
	}
	if m.LoadFallbacks, err = meter.Int64Counter("meddash_data_load_fallbacks",
		metric.WithDescription("Loads that fell back to the empty dataset")); err != nil {
		return nil, err
	}
	if m.LoadDuration, err = meter.Float64Histogram("meddash_data_load_duration",
		metric.WithDescription("Time spent reading and parsing the CSV snapshot"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}
	if m.FileChanges, err = meter.Int64Counter("meddash_data_file_changes",
		metric.WithDescription("Debounced change notifications for the CSV snapshot")); err != nil {
		return nil, err
	}
	if m.Exports, err = meter.Int64Counter("meddash_exports",
		metric.WithDescription("Document exports by format")); err != nil {
		return nil, err
	}

	if m.WebSocketClients, err = meter.Int64UpDownCounter("meddash_websocket_clients",
		metric.WithDescription("Connected websocket clients")); err != nil {
		return nil, err
	}

	return &m, nil
}

// NewNoopMetrics returns instruments that record nothing.
func NewNoopMetrics() *Metrics {
	m, err := CreateMetrics(metricnoop.NewMeterProvider().Meter(InstrumentationName))
	if err != nil {
		panic(err)
	}
	return m
}

// RecordDataLoad records the outcome of one load of the CSV snapshot.
func (m *Metrics) RecordDataLoad(ctx context.Context, parsed, dropped int, duration time.Duration, fallbackReason string) {
	if m == nil {
		return
	}
	status := "success"
	if fallbackReason != "" {
		status = "fallback"
		m.LoadFallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", fallbackReason)))
	}
	m.DocumentsParsed.Add(ctx, int64(parsed))
	m.RowsDropped.Add(ctx, int64(dropped))
	m.LoadDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("status", status)))
}

// RecordExport counts one export in the given format.
func (m *Metrics) RecordExport(ctx context.Context, format string) {
	if m == nil {
		return
	}
	m.Exports.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}

// RecordFileChange counts one debounced change of the data file.
func (m *Metrics) RecordFileChange(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.FileChanges.Add(ctx, 1, metric.WithAttributes(attribute.String("change", kind)))
}

// RecordWebSocketClients adjusts the connected websocket client gauge.
func (m *Metrics) RecordWebSocketClients(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.WebSocketClients.Add(ctx, delta)
}
