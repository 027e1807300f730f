package app

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/kafka"
	"github.com/nguyentranbao-ct/storefront/internal/repo/mongodb"
	redisrepo "github.com/nguyentranbao-ct/storefront/internal/repo/redis"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
	"github.com/nguyentranbao-ct/storefront/internal/server"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"go.uber.org/fx"
)

const (
	connectTimeout     = 10 * time.Second
	redisReadyAttempts = 5
	redisMaxBackoff    = 2 * time.Second
)

func newCatalog(cfg *config.Config) (catalog.Catalog, error) {
	if cfg.Catalog.File == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return c, nil
}

// storage carries the optional persistence backends. Repositories stay nil
// interfaces when their backend is disabled, which keeps carts and wishlists
// in memory only.
type storage struct {
	fx.Out

	Snapshots repository.CartSnapshotRepository
	Wishlists repository.WishlistRepository
	Checks    []server.HealthCheck `group:"health,flatten"`
}

func newStorage(lc fx.Lifecycle, cfg *config.Config) (storage, error) {
	var out storage

	if cfg.Database.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		db, err := mongodb.NewConnection(ctx, cfg.Database)
		if err != nil {
			return out, err
		}
		lc.Append(fx.Hook{OnStop: db.Close})

		out.Wishlists = mongodb.NewWishlistRepository(db)
		out.Checks = append(out.Checks, server.HealthCheck{Name: "mongodb", Check: db.Ping})
		if cfg.Cart.SnapshotBackend == config.SnapshotMongo {
			repo := mongodb.NewCartSnapshotRepository(db, cfg.Cart)
			lc.Append(fx.Hook{OnStart: repo.EnsureIndexes})
			out.Snapshots = repo
		}
	}

	if cfg.Redis.Enabled {
		client := redisrepo.NewClient(cfg.Redis)
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return client.Close() }})

		repo := redisrepo.NewCartSnapshotRepository(client, cfg.Cart)
		out.Checks = append(out.Checks, server.HealthCheck{Name: "redis", Check: repo.Ping})
		if cfg.Cart.SnapshotBackend == config.SnapshotRedis {
			lc.Append(fx.Hook{OnStart: func(ctx context.Context) error {
				return repo.Initialize(ctx, redisReadyAttempts, redisMaxBackoff)
			}})
			out.Snapshots = repo
		}
	}

	return out, nil
}

func newPublisher(lc fx.Lifecycle, cfg config.KafkaConfig) (kafka.Publisher, error) {
	publisher, err := kafka.NewPublisher(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return publisher.Close() }})
	return publisher, nil
}

// runCartSweeper evicts idle carts every SweepInterval while the app runs.
func runCartSweeper(lc fx.Lifecycle, carts usecase.CartUsecase, cfg config.CartConfig) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(cfg.SweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						carts.EvictIdle(ctx)
					}
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
