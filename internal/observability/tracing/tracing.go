// Package tracing wires the OTLP trace exporter when enabled by config.
package tracing

import (
	"context"

	"github.com/amancodes12/pharmaease/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("tracing",
	fx.Invoke(Register),
)

// Register installs the global tracer provider. With OTEL_ENABLED unset the
// default no-op provider stays in place.
func Register(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) {
	if !cfg.OtelEnabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			exporter, err := otlptracegrpc.New(ctx,
				otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
				otlptracegrpc.WithInsecure(),
			)
			if err != nil {
				return err
			}

			res, err := resource.New(ctx,
				resource.WithAttributes(
					semconv.ServiceName(cfg.AppName),
					semconv.ServiceVersion(cfg.AppVersion),
				),
			)
			if err != nil {
				return err
			}

			provider := sdktrace.NewTracerProvider(
				sdktrace.WithBatcher(exporter),
				sdktrace.WithResource(res),
			)
			otel.SetTracerProvider(provider)
			log.Info("tracing enabled", zap.String("endpoint", cfg.OTLPEndpoint))

			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					return provider.Shutdown(ctx)
				},
			})
			return nil
		},
	})
}
