package worker

import (
	"context"
	"log/slog"
	"time"

	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/usecase/commands"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the periodic jobs: reminder enqueueing and idempotency key cleanup.
type Scheduler struct {
	cron          *cron.Cron
	logger        *slog.Logger
	notifications commands.NotificationCommands
	maintenance   commands.MaintenanceCommands
	clock         clock.Clock
	cfg           config.ReminderConfig
	jobTimeout    time.Duration
}

func NewScheduler(
	logger *slog.Logger,
	notifications commands.NotificationCommands,
	maintenance commands.MaintenanceCommands,
	clock clock.Clock,
	cfg config.ReminderConfig,
) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:        logger,
		notifications: notifications,
		maintenance:   maintenance,
		clock:         clock,
		cfg:           cfg,
		jobTimeout:    time.Minute,
	}
}

// Start registers the jobs and starts the cron loop. Nothing is scheduled when
// reminders are disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.cfg.Schedule, s.RunReminders); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("@hourly", s.RunCleanup); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", "schedule", s.cfg.Schedule, "lead", s.cfg.Lead.String())
	return nil
}

// Stop waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) RunReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	n, err := s.notifications.EnqueueReminders(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("reminder run failed", "error", err.Error())
		return
	}
	if n > 0 {
		s.logger.Info("reminders enqueued", "count", n)
	}
}

func (s *Scheduler) RunCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	n, err := s.maintenance.PurgeExpiredIdempotencyKeys(ctx)
	if err != nil {
		s.logger.Error("idempotency cleanup failed", "error", err.Error())
		return
	}
	s.logger.Info("expired idempotency keys purged", "count", n)
}
