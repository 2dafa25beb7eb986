package supplier

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/hypnotizedent/printshop-os-sub005/internal/config"
)

var Module = fx.Module("supplier",
	fx.Provide(
		func(cfg *config.Config, logger *slog.Logger) (*HTTPClient, error) {
			return NewHTTPClient(cfg.SupplierAddress, cfg.SupplierAPIKey, logger)
		},
		func(c *HTTPClient) Client { return c },
	),
)
