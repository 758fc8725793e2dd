package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"earnings-analyzer/internal/trace"
)

var (
	globalLogger *slog.Logger
	logLevel     slog.Level
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // DEBUG, INFO, WARN, ERROR
	Format string // json or text
}

// Init initializes the global logger based on environment variables
func Init() error {
	return InitWithConfig(LoadConfigFromEnv())
}

// LoadConfigFromEnv loads logging configuration from environment variables
func LoadConfigFromEnv() LogConfig {
	return LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "INFO"),
		Format: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// InitWithConfig initializes the logger with specific configuration
func InitWithConfig(config LogConfig) error {
	logLevel = parseLogLevel(config.Level)

	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if config.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
	return nil
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Debug logs a debug message
func Debug(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelDebug, msg, args...)
}

// Info logs an info message
func Info(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelInfo, msg, args...)
}

// Warn logs a warning message
func Warn(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelWarn, msg, args...)
}

// Error logs an error message
func Error(ctx context.Context, msg string, args ...any) {
	logWithTrace(ctx, slog.LevelError, msg, args...)
}

// ErrorWithErr logs an error message with an error object
func ErrorWithErr(ctx context.Context, msg string, err error, args ...any) {
	if trace.Enabled() {
		span := oteltrace.SpanFromContext(ctx)
		if span.SpanContext().IsValid() {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	allArgs := append([]any{"error", err}, args...)
	logWithTrace(ctx, slog.LevelError, msg, allArgs...)
}

// logWithTrace logs a message with trace ID and span ID if available
func logWithTrace(ctx context.Context, level slog.Level, msg string, args ...any) {
	if traceID, spanID, ok := trace.GetTraceFields(ctx); ok {
		args = append([]any{"trace_id", traceID, "span_id", spanID}, args...)
	}
	if globalLogger == nil {
		globalLogger = slog.Default()
	}
	globalLogger.Log(ctx, level, msg, args...)
}

// StageTimer measures the duration of one pipeline stage within a span.
type StageTimer struct {
	ctx   context.Context
	span  oteltrace.Span
	stage string
	start time.Time
}

// StartStage starts timing a pipeline stage with an OpenTelemetry span
func StartStage(ctx context.Context, stage string, fields ...any) *StageTimer {
	var span oteltrace.Span
	if trace.Enabled() {
		ctx, span = trace.StartSpan(ctx, stage)
		for i := 0; i+1 < len(fields); i += 2 {
			key, ok := fields[i].(string)
			if !ok {
				continue
			}
			switch v := fields[i+1].(type) {
			case string:
				span.SetAttributes(attribute.String(key, v))
			case int:
				span.SetAttributes(attribute.Int(key, v))
			case float64:
				span.SetAttributes(attribute.Float64(key, v))
			case bool:
				span.SetAttributes(attribute.Bool(key, v))
			}
		}
	}

	Debug(ctx, "Stage started", append([]any{"stage", stage}, fields...)...)

	return &StageTimer{ctx: ctx, span: span, stage: stage, start: time.Now()}
}

// End completes the stage timer
func (st *StageTimer) End() {
	duration := time.Since(st.start)
	if st.span != nil {
		st.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		st.span.SetStatus(codes.Ok, "completed")
		st.span.End()
	}
	Debug(st.ctx, "Stage completed", "stage", st.stage, "duration_ms", duration.Milliseconds())
}

// EndWithError completes the stage timer with an error
func (st *StageTimer) EndWithError(err error) {
	duration := time.Since(st.start)
	if st.span != nil {
		st.span.SetAttributes(attribute.Int64("duration_ms", duration.Milliseconds()))
		st.span.RecordError(err)
		st.span.SetStatus(codes.Error, err.Error())
		st.span.End()
	}
	Error(st.ctx, "Stage failed", "stage", st.stage, "duration_ms", duration.Milliseconds(), "error", err)
}

// Context returns the context carrying the stage span
func (st *StageTimer) Context() context.Context {
	return st.ctx
}
