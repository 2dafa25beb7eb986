package di

import (
	"go.uber.org/fx"

	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/artwork"
	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/shipping"
	"github.com/hypnotizedent/printshop-os-sub005/internal/adapter/supplier"
	"github.com/hypnotizedent/printshop-os-sub005/internal/app"
	"github.com/hypnotizedent/printshop-os-sub005/internal/config"
	"github.com/hypnotizedent/printshop-os-sub005/internal/logger"
	"github.com/hypnotizedent/printshop-os-sub005/internal/pkg/auth"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/handlers"
	"github.com/hypnotizedent/printshop-os-sub005/internal/server/http/router"
	"github.com/hypnotizedent/printshop-os-sub005/internal/storage/postgres"
	"github.com/hypnotizedent/printshop-os-sub005/internal/usecase"
)

// Module assembles the full dependency graph.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		supplier.Module,
		shipping.Module,
		artwork.Module,
		usecase.Module,
		fx.Provide(
			func(client supplier.Client) app.SupplierProvider { return client },
			func(client shipping.Client) app.ShippingProvider { return client },
			func(store artwork.Store) app.DocumentStore { return store },
			func(s *postgres.Storage) app.StorageHealth { return s },
			func(f *app.PrintShopFacade) handlers.PrintShopFacade { return f },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
