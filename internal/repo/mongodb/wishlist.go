package mongodb

import (
	"context"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
)

type wishlistRepo struct {
	baseRepo[models.Wishlist]
}

func NewWishlistRepository(db *DB) repository.WishlistRepository {
	return &wishlistRepo{
		baseRepo: newBaseRepo[models.Wishlist](db.Database),
	}
}

func (r *wishlistRepo) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	return r.FindByID(ctx, userID)
}

func (r *wishlistRepo) Save(ctx context.Context, wishlist *models.Wishlist) error {
	wishlist.UpdatedAt = time.Now()
	return r.ReplaceByID(ctx, *wishlist)
}
