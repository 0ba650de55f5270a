package bootstrap

import (
	"context"
	"log/slog"

	"booking-platform/internal/handler"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/metrics"
	"booking-platform/internal/pkg/telemetry"
	"booking-platform/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var ObservabilityModule = fx.Module("observability",
	fx.Provide(
		NewMetrics,
		func(m *metrics.Metrics) shared.BookingMetrics { return m },
	),
	fx.Invoke(setupTelemetry),
)

// NewMetrics registers the application collectors on a private registry
// together with the Go runtime and process collectors.
func NewMetrics(logger *slog.Logger) (*metrics.Metrics, handler.Observability) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewWithRegistry(reg)
	return m, handler.Observability{Logger: logger, Metrics: m, Gatherer: reg}
}

func setupTelemetry(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) error {
	shutdown, err := telemetry.Setup(context.Background(), cfg.Telemetry)
	if err != nil {
		return err
	}
	if cfg.Telemetry.Enabled {
		logger.Info("tracing enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_ratio", cfg.Telemetry.SampleRatio)
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return shutdown(ctx)
		},
	})
	return nil
}
