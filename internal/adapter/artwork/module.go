package artwork

import (
	"go.uber.org/fx"

	"github.com/hypnotizedent/printshop-os-sub005/internal/config"
)

var Module = fx.Module("artwork",
	fx.Provide(
		func(cfg *config.Config) (*MinioStore, error) {
			return NewMinioStore(Options{
				Endpoint:  cfg.MinioEndpoint,
				AccessKey: cfg.MinioAccessKey,
				SecretKey: cfg.MinioSecretKey,
				Bucket:    cfg.MinioBucket,
				UseSSL:    cfg.MinioUseSSL,
			})
		},
		func(s *MinioStore) Store { return s },
	),
)
