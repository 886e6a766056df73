// Package telemetry configures optional OpenTelemetry tracing for the
// gateway. It is wired once at process start; when disabled it installs
// nothing and the instrumentation in the rest of the codebase becomes
// no-op spans. Initialization failure is reported to the caller rather
// than swallowed, so the process can log a warning and keep serving.
package telemetry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Config holds tracing settings.
type Config struct {
	// Enabled turns tracing on. When false, Init is a no-op.
	Enabled bool

	// Endpoint is an OTLP/HTTP collector URL (e.g.
	// "http://localhost:6006"). When empty, spans are written to
	// TraceFile instead.
	Endpoint string

	// ServiceName reported in the trace resource. Defaults to "crewgate".
	ServiceName string

	// TraceFile is the rotated local file used when no Endpoint is
	// configured. Defaults to "logs/crewgate_traces.log".
	TraceFile string
}

// ShutdownFunc flushes and releases tracing resources. Safe to call
// even when tracing was disabled.
type ShutdownFunc func(ctx context.Context) error

// Init sets up the global tracer provider according to cfg and returns
// a shutdown function. When cfg.Enabled is false it returns a no-op
// shutdown and installs nothing.
func Init(ctx context.Context, cfg Config) (ShutdownFunc, error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = "crewgate"
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating resource: %w", err)
	}

	exporter, closer, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	shutdown := func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		err := tp.Shutdown(ctx)
		if closer != nil {
			if cerr := closer(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return shutdown, nil
}

// newExporter builds the span exporter: OTLP/HTTP when an endpoint is
// configured, otherwise a rotated local trace file.
func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, func() error, error) {
	if cfg.Endpoint != "" {
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpointURL(cfg.Endpoint),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("telemetry: creating OTLP exporter: %w", err)
		}
		return exporter, nil, nil
	}

	traceFile := cfg.TraceFile
	if traceFile == "" {
		traceFile = "logs/crewgate_traces.log"
	}
	if dir := filepath.Dir(traceFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("telemetry: creating trace directory: %w", err)
		}
	}

	writer := &lumberjack.Logger{
		Filename:   traceFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(writer),
	)
	if err != nil {
		writer.Close()
		return nil, nil, fmt.Errorf("telemetry: creating file exporter: %w", err)
	}
	return exporter, writer.Close, nil
}
