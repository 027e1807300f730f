package usecase

import (
	"context"
	"fmt"

	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

var ErrProductNotFound = fmt.Errorf("product %w", models.ErrNotFound)

type CartUsecase interface {
	Summary(ctx context.Context, sessionID string) (*CartSummary, error)
	AddProduct(ctx context.Context, sessionID, productID string) (*CartResult, error)
	RemoveProduct(ctx context.Context, sessionID, productID string) (*CartResult, error)
	UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartResult, error)
	Clear(ctx context.Context, sessionID string) (*CartResult, error)
	// EvictIdle drops carts idle for longer than CartConfig.IdleTTL and
	// reports how many went.
	EvictIdle(ctx context.Context) int
}

type WishlistUsecase interface {
	List(ctx context.Context, userID string) (*WishlistView, error)
	Add(ctx context.Context, userID, productID string) (*WishlistView, error)
	Remove(ctx context.Context, userID, productID string) (*WishlistView, error)
	Toggle(ctx context.Context, userID, productID string) (*WishlistView, error)
}

type ProductUsecase interface {
	List(ctx context.Context, filter ProductFilter) []models.Product
	Get(ctx context.Context, productID string) (*models.Product, error)
	Categories(ctx context.Context) []catalog.Category
}
