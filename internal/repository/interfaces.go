// Package repository declares the persistence ports of the storefront. Reads of
// a missing document return models.ErrNotFound.
package repository

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type CartSnapshotRepository interface {
	Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error)
	Save(ctx context.Context, snapshot *models.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}

type WishlistRepository interface {
	Get(ctx context.Context, userID string) (*models.Wishlist, error)
	Save(ctx context.Context, wishlist *models.Wishlist) error
}
