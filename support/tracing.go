package support

import (
	"context"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/wee-commands-go/we"
)

// TracerProvider installs a global tracer provider for the configured
// exporter. The returned func flushes and stops it.
func TracerProvider(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	var exporter sdktrace.SpanExporter
	var err error

	switch cfg.TraceExporter {
	case ConsoleTracing:
		exporter, err = we.ConsoleExporter()
	case HoneycombTracing:
		exporter, err = we.HoneycombExporter(ctx, cfg.HoneycombTeam, cfg.HoneycombDataset)
	case JaegerTracing:
		exporter, err = we.JaegerExporter(cfg.JaegerEndpoint)
	default:
		return func(context.Context) error { return nil }, nil
	}

	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
