// Command docstats computes dashboard statistics from a CSV snapshot without
// starting the server, or writes the snapshot as a CSV or XLSX export.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"meddash/internal/config"
	"meddash/internal/dataprocessing"
	apierrors "meddash/internal/errors"
	"meddash/internal/exporter"
	"meddash/internal/files"
	"meddash/internal/infrastructure"
	"meddash/internal/services"
	"meddash/pkg/contracts/domain"
)

var timeNow = time.Now

type options struct {
	file      string
	year      int
	month     int
	dailyMode string
	seed      uint64
	export    string
	out       string
	verbose   bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	defaults := config.Default().Data

	fs := flag.NewFlagSet("docstats", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var opts options
	fs.StringVar(&opts.file, "file", defaults.CSVPath, "CSV snapshot to read")
	fs.IntVar(&opts.year, "year", defaults.StatsYear, "year of the reported period")
	fs.IntVar(&opts.month, "month", defaults.StatsMonth, "month of the reported period (1-12)")
	fs.StringVar(&opts.dailyMode, "daily-mode", defaults.DailyCountsMode, "daily table mode: auto, always or never")
	fs.Uint64Var(&opts.seed, "seed", defaults.Seed, "seed of the synthetic daily table")
	fs.StringVar(&opts.export, "export", "", "write an export instead of stats: csv or xlsx")
	fs.StringVar(&opts.out, "out", "", "export destination (defaults to medical_documents_<date>.<ext>)")
	fs.BoolVar(&opts.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if err := services.ValidatePeriod(opts.year, opts.month); err != nil {
		return options{}, err
	}
	if !dataprocessing.DailyCountsMode(opts.dailyMode).Valid() {
		return options{}, apierrors.NewAppValidationError(fmt.Sprintf("invalid daily mode %q", opts.dailyMode))
	}
	return opts, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "docstats:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	logCfg := config.LoggingConfig{Level: "info", Format: "text", Output: "console"}
	if opts.verbose {
		logCfg.Level = "debug"
	}
	logger := infrastructure.WithComponent(infrastructure.NewLogger(logCfg, stderr), "docstats")

	data, err := files.NewLoader(opts.file, logger).Read(ctx)
	if err != nil {
		return err
	}

	result := dataprocessing.ParseCSVData(data)
	logger.DebugContext(ctx, "snapshot parsed",
		slog.String("file", opts.file),
		slog.Int("documents", len(result.Documents)),
		slog.Int("rows_dropped", result.RowsDropped))

	if opts.export != "" {
		return writeExport(ctx, opts, result.Documents, logger)
	}

	stats := dataprocessing.CalculateMonthlyStats(result.Documents, opts.year, opts.month, dataprocessing.StatsOptions{
		DailyCountsMode: dataprocessing.DailyCountsMode(opts.dailyMode),
		Seed:            opts.seed,
	})

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func writeExport(ctx context.Context, opts options, docs []domain.Document, logger *slog.Logger) error {
	format, err := exporter.ParseFormat(opts.export)
	if err != nil {
		return err
	}
	writer, err := exporter.NewWriter(format, logger)
	if err != nil {
		return err
	}

	path := opts.out
	if path == "" {
		path = exporter.ExportFilename(format, timeNow())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := writer.Write(ctx, f, docs); err != nil {
		f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	logger.InfoContext(ctx, "export written",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("documents", len(docs)))
	return nil
}
