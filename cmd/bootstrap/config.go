package bootstrap

import (
	"loyalty-ledger/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		func(cfg config.Config) config.LoyaltyConfig { return cfg.Loyalty },
	),
)
