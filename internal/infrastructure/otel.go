package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"evalmarks/internal/config"
)

const (
	ServiceName = "evalmarks"
	MeterName   = "evalmarks"
)

// OTelProviders holds the OpenTelemetry providers for one run
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Registry       *promclient.Registry
	MetricsFile    string
	Logger         *slog.Logger
}

// InitializeOTel sets up tracing and metrics according to cfg. Spans are
// written to traceOut; metrics are collected into a private Prometheus
// registry that Shutdown dumps to cfg.MetricsFile.
// With both features off the global no-op providers stay in place.
func InitializeOTel(cfg config.TelemetryConfig, traceOut io.Writer, logger *slog.Logger) (*OTelProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}

	providers := &OTelProviders{
		MetricsFile: cfg.MetricsFile,
		Logger:      logger,
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", ServiceName),
		attribute.String("service.version", config.AppVersion),
	)

	if cfg.Tracing {
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(traceOut),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create trace exporter: %w", err)
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(res),
		)
		providers.TracerProvider = tp
		otel.SetTracerProvider(tp)

		logger.Info("Tracing initialized", slog.String("exporter", "stdout"))
	}

	if cfg.MetricsFile != "" {
		registry := promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
		if err != nil {
			return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
		}

		mp := sdkmetric.NewMeterProvider(
			sdkmetric.WithResource(res),
			sdkmetric.WithReader(exporter),
		)
		providers.MeterProvider = mp
		providers.Registry = registry
		otel.SetMeterProvider(mp)

		logger.Info("Metrics initialized",
			slog.String("exporter", "prometheus"),
			slog.String("metrics_file", cfg.MetricsFile))
	}

	return providers, nil
}

// Meter returns the meter used for run metrics
func (p *OTelProviders) Meter() metric.Meter {
	if p != nil && p.MeterProvider != nil {
		return p.MeterProvider.Meter(MeterName)
	}
	return otel.Meter(MeterName)
}

// Shutdown flushes spans, writes the metrics textfile and releases the providers
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}

	var errs []error

	if p.TracerProvider != nil {
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if p.Registry != nil && p.MetricsFile != "" {
		if err := promclient.WriteToTextfile(p.MetricsFile, p.Registry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write metrics file: %w", err))
		} else {
			p.Logger.Info("Metrics written", slog.String("metrics_file", p.MetricsFile))
		}
	}

	if p.MeterProvider != nil {
		if err := p.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

// RunMetrics holds the counters recorded by a pipeline run
type RunMetrics struct {
	ResponsesRead      metric.Int64Counter
	ExactDuplicates    metric.Int64Counter
	ExcludedResponses  metric.Int64Counter
	CorrectionsApplied metric.Int64Counter
	Disqualified       metric.Int64Counter
	ValidResponses     metric.Int64Counter
	InvalidScores      metric.Int64Counter
	StageDuration      metric.Float64Histogram
}

// CreateRunMetrics creates the pipeline counters on meter
func CreateRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	m := &RunMetrics{}
	var err error

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
	}{
		{&m.ResponsesRead, "evalmarks_responses_read_total", "Survey responses read from the workbook"},
		{&m.ExactDuplicates, "evalmarks_exact_duplicates_total", "Exact duplicate responses removed"},
		{&m.ExcludedResponses, "evalmarks_excluded_responses_total", "Responses dropped by the section/topic exclusion"},
		{&m.CorrectionsApplied, "evalmarks_corrections_applied_total", "Field corrections applied, by rule"},
		{&m.Disqualified, "evalmarks_disqualified_total", "Responses disqualified, by reason"},
		{&m.ValidResponses, "evalmarks_valid_responses_total", "Responses kept for marking"},
		{&m.InvalidScores, "evalmarks_invalid_scores_total", "Evaluation cells that could not be parsed"},
	}

	for _, c := range counters {
		*c.target, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
	}

	m.StageDuration, err = meter.Float64Histogram(
		"evalmarks_stage_duration_seconds",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}
