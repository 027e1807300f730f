// Package redis keeps cart snapshots in Redis, one JSON value per session key.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
)

const keyPrefix = "storefront:cart:"

var _ repository.CartSnapshotRepository = (*CartSnapshotRepo)(nil)

type CartSnapshotRepo struct {
	client *redis.Client
	ttl    time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MinIdleConns: 1,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  4 * time.Second,
		IdleTimeout:  3 * time.Minute,
	})
}

func NewCartSnapshotRepository(client *redis.Client, cfg config.CartConfig) *CartSnapshotRepo {
	return &CartSnapshotRepo{client: client, ttl: cfg.SnapshotTTL}
}

// Initialize waits for Redis to answer a PING, backing off exponentially
// between attempts up to maxBackoff.
func (r *CartSnapshotRepo) Initialize(ctx context.Context, attempts int, maxBackoff time.Duration) error {
	for i := range attempts {
		err := r.Ping(ctx)
		if err == nil {
			log.Infow(ctx, "redis cart store ready", "attempt", i+1)
			return nil
		}

		backoff := min(time.Duration(100*(1<<uint(i)))*time.Millisecond, maxBackoff)
		log.Warnw(ctx, "redis ping failed", "attempt", i+1, "backoff", backoff.String(), "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("redis not reachable after %d attempts", attempts)
}

func (r *CartSnapshotRepo) Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	data, err := r.client.Get(ctx, key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var snapshot models.CartSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cart snapshot: %w", err)
	}
	return &snapshot, nil
}

func (r *CartSnapshotRepo) Save(ctx context.Context, snapshot *models.CartSnapshot) error {
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now()
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode cart snapshot: %w", err)
	}
	if err := r.client.Set(ctx, key(snapshot.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *CartSnapshotRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *CartSnapshotRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func key(sessionID string) string {
	return keyPrefix + sessionID
}
