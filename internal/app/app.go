package app

import (
	"fmt"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

// Invoke builds the application graph around conf and runs funcs against it.
func Invoke(conf *config.Config, funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	log.Debugw("config loaded",
		"snapshot_backend", conf.Cart.SnapshotBackend,
		"database_enabled", conf.Database.Enabled,
		"redis_enabled", conf.Redis.Enabled,
		"kafka_enabled", conf.Kafka.Enabled,
		"catalog_file", conf.Catalog.File,
	)

	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{Logger: log.Desugar()}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Supply(conf, conf.Cart, conf.Kafka),
		fx.Provide(
			newCatalog,
			newStorage,
			newPublisher,

			usecase.NewCartUsecase,
			usecase.NewWishlistUsecase,
			usecase.NewProductUsecase,

			server.NewController,
		),
		fx.Invoke(runCartSweeper),
		fx.Invoke(funcs...),
	)
}

// Setup loads configuration from the environment and initialises the
// process logger from it.
func Setup() (*config.Config, error) {
	conf, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(conf.Log.Level, conf.Log.Development); err != nil {
		return nil, err
	}
	return conf, nil
}
