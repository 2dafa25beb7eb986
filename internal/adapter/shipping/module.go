package shipping

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/hypnotizedent/printshop-os-sub005/internal/config"
)

var Module = fx.Module("shipping",
	fx.Provide(
		func(cfg *config.Config, logger *slog.Logger) (*HTTPClient, error) {
			return NewHTTPClient(cfg.EasyPostAddress, cfg.EasyPostAPIKey, logger)
		},
		func(c *HTTPClient) Client { return c },
	),
)
