package bootstrap

import (
	"context"
	"log/slog"

	"booking-platform/internal/infra/db"
	"booking-platform/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(NewDB),
)

// NewDB opens and pings the pool; it is closed on fx shutdown.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, closePool, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("database connected",
		"host", cfg.DB.Host,
		"database", cfg.DB.DBName,
		"max_conns", pool.Config().MaxConns,
	)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			stat := pool.Stat()
			logger.Info("closing database pool", "acquired", stat.AcquiredConns(), "total", stat.TotalConns())
			closePool()
			return nil
		},
	})
	return pool, nil
}
