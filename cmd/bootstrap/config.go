package bootstrap

import (
	"booking-platform/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
	),
	ConfigSections,
)

// ConfigSections exposes the sections constructors take directly. Tests that
// supply their own config.Config include it on its own.
var ConfigSections = fx.Provide(
	func(cfg config.Config) config.BookingConfig { return cfg.Booking },
	func(cfg config.Config) config.ReminderConfig { return cfg.Reminder },
	func(cfg config.Config) config.NotifyConfig { return cfg.Notify },
)
