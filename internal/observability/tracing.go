// Package observability wires OpenTelemetry trace export into the
// Genkit TracerProvider, so retrieval and generation flows show up in
// any OTLP-compatible backend (Jaeger, Grafana Tempo, Datadog Agent).
//
// Tracing is opt-in: when no endpoint is configured the app runs
// without an exporter, and an exporter that fails to initialize
// disables tracing instead of failing startup.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/firebase/genkit/go/core/tracing"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config for OTLP trace export.
type Config struct {
	// Endpoint is the OTLP HTTP collector host:port, e.g. "localhost:4318".
	Endpoint string
	// Environment tags spans with deployment.environment.
	Environment string
	// ServiceName is the service name reported to the collector.
	ServiceName string
}

// DefaultServiceName is used when Config.ServiceName is empty.
const DefaultServiceName = "biomentor"

// noopShutdown is returned when tracing is disabled.
func noopShutdown(context.Context) error { return nil }

// Setup registers an OTLP span exporter with Genkit's TracerProvider.
// Returns a shutdown function that flushes pending spans; callers must
// invoke it during graceful shutdown.
func Setup(ctx context.Context, cfg Config, logger *slog.Logger) (shutdown func(context.Context) error, err error) {
	if cfg.Endpoint == "" {
		return noopShutdown, nil
	}

	service := cfg.ServiceName
	if service == "" {
		service = DefaultServiceName
	}

	// Genkit's TracerProvider reads these when building its resource.
	_ = os.Setenv("OTEL_SERVICE_NAME", service)
	if cfg.Environment != "" {
		_ = os.Setenv("OTEL_RESOURCE_ATTRIBUTES", "deployment.environment="+cfg.Environment)
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(cfg.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		logger.Warn("creating OTLP exporter failed, tracing disabled", "error", err)
		return noopShutdown, nil
	}

	processor := sdktrace.NewBatchSpanProcessor(exporter)
	tracing.TracerProvider().RegisterSpanProcessor(processor)

	logger.Debug("trace export enabled",
		"endpoint", cfg.Endpoint,
		"service", service,
		"environment", cfg.Environment,
	)

	return tracing.TracerProvider().Shutdown, nil
}
