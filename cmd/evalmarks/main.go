package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evalmarks/internal/config"
	apperrors "evalmarks/internal/errors"
	"evalmarks/internal/exporter"
	"evalmarks/internal/files"
	"evalmarks/internal/infrastructure"
	"evalmarks/internal/pipeline"
	"evalmarks/internal/validation"
	"evalmarks/pkg/contracts"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout)
	stop()

	if err != nil {
		slog.Error("evalmarks failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// run cleans one survey export and writes the three reports
func run(ctx context.Context, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(config.AppName, flag.ContinueOnError)
	fs.SetOutput(stdout)
	inPath := fs.String("in", "", "survey workbook, or a directory of exports (defaults to the configured input file)")
	outDir := fs.String("out", "", "output directory for the reports (defaults to the configured output directory)")
	format := fs.String("format", "", "report format: xlsx or csv (defaults to the configured format)")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Fprintln(stdout, contracts.GetFullVersionString())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return apperrors.NewConfigError("failed to load configuration", err)
	}
	if *inPath != "" {
		cfg.Paths.InputFile = *inPath
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}
	if *format != "" {
		cfg.Paths.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.NewConfigError("invalid command line options", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize logger", err)
	}
	defer infrastructure.CloseLogFile()
	logger = infrastructure.WithComponent(logger, "cli")

	ctx = infrastructure.EnsureRunID(ctx)
	started := time.Now()

	providers, err := infrastructure.InitializeOTel(cfg.Telemetry, stdout, logger)
	if err != nil {
		return apperrors.NewConfigError("failed to initialize telemetry", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Telemetry shutdown failed", slog.String("error", err.Error()))
		}
	}()

	logger.InfoContext(ctx, "Starting evalmarks",
		slog.String("version", config.AppVersion),
		slog.String("input", cfg.Paths.InputFile),
		slog.String("output_dir", cfg.Paths.OutputDir),
		slog.String("format", cfg.Paths.Format))

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return apperrors.NewConfigError("failed to resolve paths", err)
	}
	paths.LogPathResolution(logger)

	input, err := files.NewDiscovery(paths.WorkingDir).ResolveInput(paths.InputFile)
	if err != nil {
		return err
	}

	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateExcelFile(input); err != nil {
		return err
	}
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return err
	}

	metrics, err := infrastructure.CreateRunMetrics(providers.Meter())
	if err != nil {
		return fmt.Errorf("failed to create run metrics: %w", err)
	}
	p, err := pipeline.New(pipeline.OptionsFromConfig(cfg), logger, metrics)
	if err != nil {
		return err
	}

	result, err := p.RunFile(ctx, input)
	if err != nil {
		return err
	}

	writer, err := exporter.NewResultWriter(paths, logger)
	if err != nil {
		return err
	}
	written, err := writer.Write(ctx, result)
	if err != nil {
		return err
	}

	logger.InfoContext(ctx, "Run completed",
		slog.String("input", input),
		slog.Any("stats", result.Stats),
		slog.Int("participation_rows", len(result.Participation)),
		slog.Int("presentation_rows", len(result.Presentation)),
		slog.Duration("duration", time.Since(started)))

	for _, path := range written {
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	return nil
}
