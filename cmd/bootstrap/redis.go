package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"booking-platform/internal/infra/lock"
	"booking-platform/internal/pkg/config"
	"booking-platform/internal/usecase/shared"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var LockModule = fx.Module("lock",
	fx.Provide(
		NewLocker,
	),
)

// NewLocker returns a Redis lock shared across instances, or an in-process
// lock when Redis is disabled (single instance deployments and tests).
func NewLocker(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.Locker, error) {
	if !cfg.Redis.Enabled {
		logger.Warn("redis disabled, booking lock is process local")
		return lock.NewLocalLocker(), nil
	}

	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.Addr},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "redis ping %s", cfg.Redis.Addr)
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	logger.Info("redis connected", "addr", cfg.Redis.Addr)
	return lock.NewRedisLocker(client, cfg.Redis), nil
}
