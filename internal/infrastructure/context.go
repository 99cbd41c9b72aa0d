package infrastructure

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type contextKey string

const (
	// TraceIDContextKey holds the run id every log line of a run carries
	TraceIDContextKey contextKey = "trace_id"
	// StageContextKey holds the name of the pipeline stage being executed
	StageContextKey   contextKey = "stage"
)

// WithTraceID returns ctx carrying traceID
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDContextKey, traceID)
}

// GetTraceID returns the run id in ctx, or ""
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDContextKey).(string)
	return traceID
}

// EnsureTraceID gives ctx a fresh UUID run id unless it already has one
func EnsureTraceID(ctx context.Context) context.Context {
	if GetTraceID(ctx) != "" {
		return ctx
	}
	return WithTraceID(ctx, uuid.NewString())
}

// WithStage returns ctx marked as running the named pipeline stage
func WithStage(ctx context.Context, stage string) context.Context {
	return context.WithValue(ctx, StageContextKey, stage)
}

// GetStage returns the pipeline stage in ctx, or ""
func GetStage(ctx context.Context) string {
	stage, _ := ctx.Value(StageContextKey).(string)
	return stage
}

// WithComponent tags logger with the component it logs for
func WithComponent(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = GetLogger()
	}
	return logger.With(slog.String("component", component))
}
