package usecase

import (
	"context"
	"sync"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockSnapshotRepo struct {
	mock.Mock
}

func (m *mockSnapshotRepo) Get(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	args := m.Called(ctx, sessionID)
	snap, _ := args.Get(0).(*models.CartSnapshot)
	return snap, args.Error(1)
}

func (m *mockSnapshotRepo) Save(ctx context.Context, snapshot *models.CartSnapshot) error {
	return m.Called(ctx, snapshot).Error(0)
}

func (m *mockSnapshotRepo) Delete(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockSnapshotRepo) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []models.CartEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event *models.CartEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, *event)
	return p.err
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) Events() []models.CartEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.CartEvent(nil), p.events...)
}

type memWishlistRepo struct {
	mu    sync.Mutex
	lists map[string][]string
	saves int
	err   error
}

func newMemWishlistRepo() *memWishlistRepo {
	return &memWishlistRepo{lists: map[string][]string{}}
}

func (r *memWishlistRepo) Get(ctx context.Context, userID string) (*models.Wishlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	ids, ok := r.lists[userID]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &models.Wishlist{UserID: userID, ProductIDs: append([]string(nil), ids...)}, nil
}

func (r *memWishlistRepo) Save(_ context.Context, w *models.Wishlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++
	r.lists[w.UserID] = append([]string(nil), w.ProductIDs...)
	return nil
}
