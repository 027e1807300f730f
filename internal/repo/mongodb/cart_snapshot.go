package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ repository.CartSnapshotRepository = (*CartSnapshotRepo)(nil)

type CartSnapshotRepo struct {
	baseRepo[models.CartSnapshot]
	db  *DB
	ttl time.Duration
}

func NewCartSnapshotRepository(db *DB, cfg config.CartConfig) *CartSnapshotRepo {
	return &CartSnapshotRepo{
		baseRepo: newBaseRepo[models.CartSnapshot](db.Database),
		db:       db,
		ttl:      cfg.SnapshotTTL,
	}
}

// EnsureIndexes expires snapshots that have not been touched for the configured TTL.
func (r *CartSnapshotRepo) EnsureIndexes(ctx context.Context) error {
	if r.ttl <= 0 {
		return nil
	}
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updated_at", Value: 1}},
		Options: options.Index().
			SetExpireAfterSeconds(int32(r.ttl.Seconds())).
			SetName("updated_at_ttl"),
	})
	if err != nil {
		return fmt.Errorf("create ttl index: %w", err)
	}
	log.Infow(ctx, "cart snapshot ttl index ensured", "ttl", r.ttl.String())
	return nil
}

func (r *CartSnapshotRepo) Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	return r.FindByID(ctx, sessionID)
}

func (r *CartSnapshotRepo) Save(ctx context.Context, snapshot *models.CartSnapshot) error {
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now()
	}
	return r.ReplaceByID(ctx, *snapshot)
}

func (r *CartSnapshotRepo) Delete(ctx context.Context, sessionID string) error {
	err := r.DeleteByID(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return nil
	}
	return err
}

func (r *CartSnapshotRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
