package bootstrap

import (
	"context"
	"log/slog"

	"booking-platform/internal/infra/messaging"
	"booking-platform/internal/infra/notify"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/usecase/commands"
	"booking-platform/internal/usecase/shared"
	"booking-platform/internal/worker"

	"go.uber.org/fx"
)

var NotifyModule = fx.Module("notify",
	fx.Provide(
		NewMailer,
		NewEventPublisher,
		notify.NewDispatcher,
		func(d *notify.Dispatcher) shared.NotificationDispatcher { return d },
		worker.NewScheduler,
	),
	fx.Invoke(
		startDispatcher,
		startScheduler,
	),
)

func NewMailer(cfg config.Config, logger *slog.Logger) shared.Mailer {
	if !cfg.SMTP.Enabled {
		logger.Info("smtp disabled, email notifications are skipped")
		return notify.NoopMailer{}
	}
	return notify.NewSMTPMailer(cfg.SMTP)
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if !cfg.Kafka.Enabled {
		logger.Info("kafka disabled, reservation events are not published")
		return messaging.NoopPublisher{}
	}
	publisher := messaging.NewKafkaPublisher(messaging.NewKafkaWriter(cfg.Kafka))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

// startDispatcher closes the loop between the dispatcher and the delivery
// command, which itself depends on the dispatcher for reminders.
func startDispatcher(lc fx.Lifecycle, d *notify.Dispatcher, notifications commands.NotificationCommands) {
	d.SetHandler(notifications)
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
}

func startScheduler(lc fx.Lifecycle, s *worker.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			return s.Start()
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
