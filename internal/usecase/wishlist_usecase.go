package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
	"github.com/nguyentranbao-ct/storefront/internal/wishlist"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"golang.org/x/sync/singleflight"
)

type WishlistView struct {
	UserID     string           `json:"user_id"`
	ProductIDs []string         `json:"wishlist"`
	Products   []models.Product `json:"products"`
	// InWishlist is set by Toggle and reports where the product ended up.
	InWishlist *bool `json:"in_wishlist,omitempty"`
}

type wishlistUsecase struct {
	catalog catalog.Catalog
	repo    repository.WishlistRepository // nil when wishlists live only in memory
	timeout time.Duration

	mu    sync.RWMutex
	lists map[string]*wishlist.Store
	group singleflight.Group
}

func NewWishlistUsecase(cfg config.CartConfig, c catalog.Catalog, repo repository.WishlistRepository) WishlistUsecase {
	return &wishlistUsecase{
		catalog: c,
		repo:    repo,
		timeout: cfg.OperationTimeout,
		lists:   make(map[string]*wishlist.Store),
	}
}

func (uc *wishlistUsecase) List(ctx context.Context, userID string) (*WishlistView, error) {
	s, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.view(userID, s.Snapshot()), nil
}

func (uc *wishlistUsecase) Add(ctx context.Context, userID, productID string) (*WishlistView, error) {
	if _, ok := uc.catalog.FindByID(productID); !ok {
		return nil, ErrProductNotFound
	}
	s, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.Add(productID)
	return uc.view(userID, s.Snapshot()), nil
}

func (uc *wishlistUsecase) Remove(ctx context.Context, userID, productID string) (*WishlistView, error) {
	s, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.Remove(productID)
	return uc.view(userID, s.Snapshot()), nil
}

// Toggle only consults the catalog when the product would be added, so ids of
// products that left the catalog can still be removed.
func (uc *wishlistUsecase) Toggle(ctx context.Context, userID, productID string) (*WishlistView, error) {
	s, err := uc.store(ctx, userID)
	if err != nil {
		return nil, err
	}
	state, in, ok := s.ToggleIf(productID, func(id string) bool {
		_, found := uc.catalog.FindByID(id)
		return found
	})
	if !ok {
		return nil, ErrProductNotFound
	}
	view := uc.view(userID, state)
	view.InWishlist = &in
	return view, nil
}

func (uc *wishlistUsecase) view(userID string, state *wishlist.State) *WishlistView {
	ids := state.IDs()
	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := uc.catalog.FindByID(id); ok {
			products = append(products, *p)
		}
	}
	return &WishlistView{UserID: userID, ProductIDs: ids, Products: products}
}

func (uc *wishlistUsecase) store(ctx context.Context, userID string) (*wishlist.Store, error) {
	uc.mu.RLock()
	s, ok := uc.lists[userID]
	uc.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, err, _ := uc.group.Do(userID, func() (any, error) {
		uc.mu.RLock()
		s, ok := uc.lists[userID]
		uc.mu.RUnlock()
		if ok {
			return s, nil
		}

		ids, err := uc.load(context.WithoutCancel(ctx), userID)
		if err != nil {
			return nil, err
		}
		s = wishlist.New(wishlist.WithIDs(ids), wishlist.WithObserver(uc.observer(userID)))

		uc.mu.Lock()
		uc.lists[userID] = s
		uc.mu.Unlock()
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*wishlist.Store), nil
}

func (uc *wishlistUsecase) load(ctx context.Context, userID string) ([]string, error) {
	if uc.repo == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	w, err := uc.repo.Get(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load wishlist %s: %w", userID, err)
	}
	return w.ProductIDs, nil
}

func (uc *wishlistUsecase) observer(userID string) wishlist.Observer {
	return func(change wishlist.Change) {
		if uc.repo == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), uc.timeout)
		defer cancel()

		w := &models.Wishlist{UserID: userID, ProductIDs: change.State.IDs()}
		if err := uc.repo.Save(ctx, w); err != nil {
			log.Errorw(ctx, "save wishlist failed", "user_id", userID, "product_id", change.ProductID, "error", err)
		}
	}
}
