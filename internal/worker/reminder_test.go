//go:build unit

package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"booking-platform/internal/pkg/clock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/worker"
	commandsmock "booking-platform/tests/mock/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newScheduler(t *testing.T, cfg config.ReminderConfig) (*worker.Scheduler, *commandsmock.MockNotificationCommands, *commandsmock.MockMaintenanceCommands, *clock.MockClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifications := commandsmock.NewMockNotificationCommands(ctrl)
	maintenance := commandsmock.NewMockMaintenanceCommands(ctrl)
	clk := clock.NewMockClock(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return worker.NewScheduler(logger, notifications, maintenance, clk, cfg), notifications, maintenance, clk
}

func TestRunReminders(t *testing.T) {
	s, notifications, _, clk := newScheduler(t, config.ReminderConfig{Enabled: true, Schedule: "@every 1m"})

	notifications.EXPECT().
		EnqueueReminders(gomock.Any(), clk.Now()).
		DoAndReturn(func(ctx context.Context, _ time.Time) (int, error) {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "jobs run with a deadline")
			return 3, nil
		})
	s.RunReminders()

	notifications.EXPECT().EnqueueReminders(gomock.Any(), gomock.Any()).Return(0, errors.New("db down"))
	s.RunReminders()
}

func TestRunCleanup(t *testing.T) {
	s, _, maintenance, _ := newScheduler(t, config.ReminderConfig{Enabled: true, Schedule: "@every 1m"})

	maintenance.EXPECT().PurgeExpiredIdempotencyKeys(gomock.Any()).Return(int64(7), nil)
	s.RunCleanup()
}

func TestSchedulerLifecycle(t *testing.T) {
	t.Run("disabled schedules nothing", func(t *testing.T) {
		s, _, _, _ := newScheduler(t, config.ReminderConfig{Enabled: false, Schedule: "not a spec"})
		require.NoError(t, s.Start())
		require.NoError(t, s.Stop(t.Context()))
	})

	t.Run("bad cron spec", func(t *testing.T) {
		s, _, _, _ := newScheduler(t, config.ReminderConfig{Enabled: true, Schedule: "not a spec"})
		assert.Error(t, s.Start())
	})

	t.Run("start then stop", func(t *testing.T) {
		s, _, _, _ := newScheduler(t, config.ReminderConfig{Enabled: true, Schedule: "@every 1h"})
		require.NoError(t, s.Start())

		ctx, cancel := context.WithTimeout(t.Context(), time.Second)
		defer cancel()
		assert.NoError(t, s.Stop(ctx))
	})
}
