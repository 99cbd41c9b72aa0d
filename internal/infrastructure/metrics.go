package infrastructure

import (
	"context"
	"runtime"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "salescli/internal/errors"
)

// PipelineMetrics holds the instruments shared by the generator and analyzer
type PipelineMetrics struct {
	TransactionsGenerated metric.Int64Counter
	RevenueGenerated      metric.Float64Counter
	DailyVolume           metric.Int64Histogram
	ProductsLoaded        metric.Int64Counter
	ChartsRendered        metric.Int64Counter
	StageDuration         metric.Float64Histogram
	Errors                metric.Int64Counter

	// Runtime metrics
	goRoutines      metric.Int64Gauge
	memoryAllocated metric.Int64Gauge
	runDuration     metric.Float64Gauge
}

// NewPipelineMetrics creates the application instruments on meter
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	transactions, err := meter.Int64Counter(
		"sales_transactions_generated",
		metric.WithDescription("Number of synthetic transactions generated"),
	)
	if err != nil {
		return nil, err
	}

	revenue, err := meter.Float64Counter(
		"sales_revenue_generated",
		metric.WithDescription("Sum of total_amount over generated transactions"),
	)
	if err != nil {
		return nil, err
	}

	dailyVolume, err := meter.Int64Histogram(
		"sales_daily_transactions",
		metric.WithDescription("Transactions drawn per calendar day"),
		metric.WithExplicitBucketBoundaries(80, 100, 120, 140, 160, 180, 200, 225, 250),
	)
	if err != nil {
		return nil, err
	}

	products, err := meter.Int64Counter(
		"sales_products_loaded",
		metric.WithDescription("Product rows loaded by the analyzer"),
	)
	if err != nil {
		return nil, err
	}

	charts, err := meter.Int64Counter(
		"sales_charts_rendered",
		metric.WithDescription("Chart images written"),
	)
	if err != nil {
		return nil, err
	}

	stageDuration, err := meter.Float64Histogram(
		"sales_stage_duration",
		metric.WithDescription("Pipeline stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	errorsTotal, err := meter.Int64Counter(
		"sales_errors",
		metric.WithDescription("Pipeline stage failures by error type"),
	)
	if err != nil {
		return nil, err
	}

	goRoutines, err := meter.Int64Gauge(
		"sales_goroutines",
		metric.WithDescription("Number of goroutines at the end of the run"),
	)
	if err != nil {
		return nil, err
	}

	memoryAllocated, err := meter.Int64Gauge(
		"sales_memory_allocated",
		metric.WithDescription("Cumulative bytes allocated by the Go runtime"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	runDuration, err := meter.Float64Gauge(
		"sales_run_duration",
		metric.WithDescription("Wall-clock duration of the command run"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &PipelineMetrics{
		TransactionsGenerated: transactions,
		RevenueGenerated:      revenue,
		DailyVolume:           dailyVolume,
		ProductsLoaded:        products,
		ChartsRendered:        charts,
		StageDuration:         stageDuration,
		Errors:                errorsTotal,
		goRoutines:            goRoutines,
		memoryAllocated:       memoryAllocated,
		runDuration:           runDuration,
	}, nil
}

// RecordStage records a stage duration and, on failure, its error type
func (m *PipelineMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, err error) {
	if m == nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("stage", stage))
	m.StageDuration.Record(ctx, d.Seconds(), attrs)

	if err != nil {
		m.Errors.Add(ctx, 1, metric.WithAttributes(
			attribute.String("stage", stage),
			attribute.String("type", string(apperrors.TypeOf(err))),
		))
	}
}

// RecordDay records one generated day
func (m *PipelineMetrics) RecordDay(ctx context.Context, transactions int, revenue float64) {
	if m == nil {
		return
	}
	m.DailyVolume.Record(ctx, int64(transactions))
	m.TransactionsGenerated.Add(ctx, int64(transactions))
	m.RevenueGenerated.Add(ctx, revenue)
}

// RecordChart records one rendered chart
func (m *PipelineMetrics) RecordChart(ctx context.Context, chart string) {
	if m == nil {
		return
	}
	m.ChartsRendered.Add(ctx, 1, metric.WithAttributes(attribute.String("chart", chart)))
}

// RecordRuntime samples Go runtime statistics
func (m *PipelineMetrics) RecordRuntime(ctx context.Context, startTime time.Time) {
	if m == nil {
		return
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	m.goRoutines.Record(ctx, int64(runtime.NumGoroutine()))
	m.memoryAllocated.Record(ctx, int64(memStats.TotalAlloc))
	m.runDuration.Record(ctx, time.Since(startTime).Seconds())
}
