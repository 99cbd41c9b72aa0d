package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"salescli/internal/config"
)

// InstrumentationName names the tracer and meter used by every component
const InstrumentationName = "salescli"

// Telemetry holds the OpenTelemetry providers of one command run.
//
// Metrics go through the OTel Prometheus exporter into a private registry that
// is written once, in text exposition format, when the run shuts down.
type Telemetry struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	Registry       *prometheus.Registry
	Metrics        *PipelineMetrics

	metricsFile string
	traceOut    io.Closer
	logger      *slog.Logger
	startTime   time.Time
}

// InitializeTelemetry wires tracing and metrics according to cfg. A disabled
// configuration yields no-op providers so callers never need nil checks.
func InitializeTelemetry(ctx context.Context, cfg config.TelemetryConfig, paths *config.Paths, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	t := &Telemetry{
		Tracer:    tracenoop.NewTracerProvider().Tracer(InstrumentationName),
		Meter:     metricnoop.NewMeterProvider().Meter(InstrumentationName),
		logger:    logger,
		startTime: time.Now(),
	}

	if cfg.Enabled {
		res := createResource(cfg)

		if err := t.initializeTracing(cfg, paths, res); err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		if err := t.initializeMetrics(cfg, paths, res); err != nil {
			return nil, fmt.Errorf("failed to initialize metrics: %w", err)
		}
	}

	metrics, err := NewPipelineMetrics(t.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}
	t.Metrics = metrics

	logger.InfoContext(ctx, "Telemetry initialized",
		slog.Bool("enabled", cfg.Enabled),
		slog.String("trace_exporter", cfg.TraceExporter),
		slog.String("metrics_file", t.metricsFile))

	return t, nil
}

// createResource creates the OpenTelemetry resource
func createResource(cfg config.TelemetryConfig) *resource.Resource {
	hostname, _ := os.Hostname()
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
		attribute.String("service.instance.id", fmt.Sprintf("%s-%d", hostname, os.Getpid())),
	)
}

// initializeTracing sets up OpenTelemetry tracing
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, paths *config.Paths, res *resource.Resource) error {
	var out io.Writer

	switch cfg.TraceExporter {
	case "none":
		return nil
	case "stdout":
		// stdout carries the report; spans go next to the console logs
		out = os.Stderr
	case "file":
		path := paths.GetLogPath(cfg.TracesFile)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create trace directory: %w", err)
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create trace file: %w", err)
		}
		t.traceOut = f
		out = f
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(out))
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)

	t.TracerProvider = tp
	t.Tracer = tp.Tracer(InstrumentationName, trace.WithInstrumentationVersion(config.AppVersion))
	otel.SetTracerProvider(tp)

	return nil
}

// initializeMetrics sets up OpenTelemetry metrics backed by a private Prometheus registry
func (t *Telemetry) initializeMetrics(cfg config.TelemetryConfig, paths *config.Paths, res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.Registry = registry
	t.MeterProvider = mp
	t.Meter = mp.Meter(InstrumentationName, metric.WithInstrumentationVersion(config.AppVersion))
	if cfg.MetricsFile != "" {
		t.metricsFile = paths.GetLogPath(cfg.MetricsFile)
	}
	otel.SetMeterProvider(mp)

	return nil
}

// StartStage opens a span for one pipeline stage. The returned function ends
// the span and records the stage duration; pass it the stage's error, if any.
func (t *Telemetry) StartStage(ctx context.Context, stage string) (context.Context, func(error)) {
	ctx, span := t.Tracer.Start(WithStage(ctx, stage), stage)
	started := time.Now()

	return ctx, func(err error) {
		t.Metrics.RecordStage(ctx, stage, time.Since(started), err)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// MetricsFile returns where Shutdown writes the metrics, or "" when it doesn't
func (t *Telemetry) MetricsFile() string {
	return t.metricsFile
}

// Shutdown flushes spans, writes the metrics textfile and releases the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.Metrics != nil {
		t.Metrics.RecordRuntime(ctx, t.startTime)
	}

	if t.Registry != nil && t.metricsFile != "" {
		if err := os.MkdirAll(filepath.Dir(t.metricsFile), 0755); err != nil {
			errs = append(errs, fmt.Errorf("metrics directory: %w", err))
		} else if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			errs = append(errs, fmt.Errorf("metrics textfile: %w", err))
		}
	}

	if t.TracerProvider != nil {
		if err := t.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}

	if t.MeterProvider != nil {
		if err := t.MeterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}

	if t.traceOut != nil {
		if err := t.traceOut.Close(); err != nil {
			errs = append(errs, fmt.Errorf("trace file close: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("telemetry shutdown errors: %w", err)
	}

	t.logger.InfoContext(ctx, "Telemetry shutdown complete",
		slog.Duration("run_duration", time.Since(t.startTime)))
	return nil
}

// TraceIDFromContext extracts the OpenTelemetry trace ID from context
func TraceIDFromContext(ctx context.Context) string {
	spanCtx := trace.SpanContextFromContext(ctx)
	if spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
