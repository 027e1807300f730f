package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/nguyentranbao-ct/storefront/internal/kafka"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/repository"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/singleflight"
)

var eventTypes = map[cart.Op]models.CartEventType{
	cart.OpAdd:            models.CartEventItemAdded,
	cart.OpRemove:         models.CartEventItemRemoved,
	cart.OpUpdateQuantity: models.CartEventQuantityUpdated,
	cart.OpClear:          models.CartEventCleared,
}

type cartUsecase struct {
	catalog   catalog.Catalog
	snapshots repository.CartSnapshotRepository // nil when carts live only in memory
	publisher kafka.Publisher
	cfg       config.CartConfig
	ops       *prometheus.CounterVec
	now       func() time.Time

	mu    sync.RWMutex
	carts map[string]*cartEntry
	group singleflight.Group
}

type cartEntry struct {
	store    *cart.Store
	lastUsed atomic.Int64 // unix nanoseconds
}

func NewCartUsecase(
	cfg config.CartConfig,
	c catalog.Catalog,
	snapshots repository.CartSnapshotRepository,
	publisher kafka.Publisher,
) (CartUsecase, error) {
	ops, err := util.GetCounterVec("storefront_cart_operations_total", "Cart mutations by operation and outcome.", "op", "outcome")
	if err != nil {
		return nil, fmt.Errorf("get counter vec: %w", err)
	}
	return &cartUsecase{
		catalog:   c,
		snapshots: snapshots,
		publisher: publisher,
		cfg:       cfg,
		ops:       ops,
		now:       time.Now,
		carts:     make(map[string]*cartEntry),
	}, nil
}

// Summary never registers a cart: a session without a resident cart or a
// snapshot reads as empty.
func (uc *cartUsecase) Summary(ctx context.Context, sessionID string) (*CartSummary, error) {
	store, err := uc.store(ctx, sessionID, false)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return summarize(sessionID, cart.New().Snapshot(), uc.cfg.TaxRate), nil
	}
	return summarize(sessionID, store.Snapshot(), uc.cfg.TaxRate), nil
}

func (uc *cartUsecase) AddProduct(ctx context.Context, sessionID, productID string) (*CartResult, error) {
	product, ok := uc.catalog.FindByID(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	return uc.mutate(ctx, sessionID, cart.Add(*product))
}

func (uc *cartUsecase) RemoveProduct(ctx context.Context, sessionID, productID string) (*CartResult, error) {
	return uc.mutate(ctx, sessionID, cart.Remove(productID))
}

func (uc *cartUsecase) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartResult, error) {
	return uc.mutate(ctx, sessionID, cart.SetQuantity(productID, quantity))
}

func (uc *cartUsecase) Clear(ctx context.Context, sessionID string) (*CartResult, error) {
	return uc.mutate(ctx, sessionID, cart.Clear())
}

func (uc *cartUsecase) mutate(ctx context.Context, sessionID string, m cart.Mutation) (*CartResult, error) {
	store, err := uc.store(ctx, sessionID, true)
	if err != nil {
		return nil, err
	}
	outcome, state := store.Apply(m)
	uc.ops.WithLabelValues(string(m.Op()), outcome.String()).Inc()
	if !outcome.Applied() {
		log.Debugw(ctx, "cart mutation ignored", "op", m.Op(), "outcome", outcome)
	}
	return newResult(sessionID, outcome, state, uc.cfg.TaxRate), nil
}

// EvictIdle drops carts nobody touched for IdleTTL. Carts with a snapshot come
// back from the repository on their next use.
func (uc *cartUsecase) EvictIdle(ctx context.Context) int {
	cutoff := uc.now().Add(-uc.cfg.IdleTTL).UnixNano()

	uc.mu.Lock()
	evicted := 0
	for id, e := range uc.carts {
		if e.lastUsed.Load() < cutoff {
			delete(uc.carts, id)
			evicted++
		}
	}
	resident := len(uc.carts)
	uc.mu.Unlock()

	if evicted > 0 {
		log.Infow(ctx, "idle carts evicted", "evicted", evicted, "resident", resident)
	}
	return evicted
}

// store returns the cart of sessionID, restoring it from the snapshot
// repository on first use. Concurrent first requests share one restore. With
// create unset, a session without a snapshot yields a nil store.
func (uc *cartUsecase) store(ctx context.Context, sessionID string, create bool) (*cart.Store, error) {
	if s := uc.resident(sessionID); s != nil {
		return s, nil
	}

	v, err, _ := uc.group.Do(sessionID, func() (any, error) {
		if s := uc.resident(sessionID); s != nil {
			return s, nil
		}
		// the restore is shared, so one caller going away must not fail the rest
		snapshot, err := uc.restore(context.WithoutCancel(ctx), sessionID)
		if err != nil {
			return nil, err
		}
		if snapshot == nil && !create {
			return (*cart.Store)(nil), nil
		}
		return uc.register(sessionID, snapshot), nil
	})
	if err != nil {
		return nil, err
	}
	s := v.(*cart.Store)
	if s == nil && create {
		s = uc.register(sessionID, nil)
	}
	return s, nil
}

func (uc *cartUsecase) resident(sessionID string) *cart.Store {
	uc.mu.RLock()
	e, ok := uc.carts[sessionID]
	uc.mu.RUnlock()
	if !ok {
		return nil
	}
	e.lastUsed.Store(uc.now().UnixNano())
	return e.store
}

func (uc *cartUsecase) register(sessionID string, snapshot *models.CartSnapshot) *cart.Store {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	e, ok := uc.carts[sessionID]
	if !ok {
		opts := []cart.Option{cart.WithObserver(uc.observer(sessionID))}
		if snapshot != nil {
			opts = append(opts, cart.WithSnapshot(snapshot.Items, snapshot.Version))
		}
		e = &cartEntry{store: cart.New(opts...)}
		uc.carts[sessionID] = e
	}
	e.lastUsed.Store(uc.now().UnixNano())
	return e.store
}

func (uc *cartUsecase) restore(ctx context.Context, sessionID string) (*models.CartSnapshot, error) {
	if uc.snapshots == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(ctx, uc.cfg.OperationTimeout)
	defer cancel()

	snapshot, err := uc.snapshots.Get(ctx, sessionID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("restore cart %s: %w", sessionID, err)
	}
	log.Infow(ctx, "cart restored", "session_id", sessionID, "lines", len(snapshot.Items), "version", snapshot.Version)
	return snapshot, nil
}

// observer persists and publishes every applied change. It runs under the
// cart's write lock, so snapshots and events leave in mutation order.
// Failures are logged and never undo the change.
func (uc *cartUsecase) observer(sessionID string) cart.Observer {
	return func(change cart.Change) {
		ctx, cancel := context.WithTimeout(context.Background(), uc.cfg.OperationTimeout)
		defer cancel()
		ctx = log.WithFields(ctx, "session_id", sessionID, "op", change.Op)

		now := uc.now()
		if uc.snapshots != nil {
			uc.persist(ctx, sessionID, change, now)
		}

		event := &models.CartEvent{
			Type:       eventTypes[change.Op],
			SessionID:  sessionID,
			ProductID:  change.ProductID,
			TotalItems: change.State.TotalItems(),
			TotalPrice: change.State.TotalPrice(),
			Version:    change.State.Version(),
			OccurredAt: now,
		}
		if item, ok := change.State.Get(change.ProductID); ok {
			event.Quantity = item.Quantity
		}
		if err := uc.publisher.Publish(ctx, event); err != nil {
			log.Errorw(ctx, "publish cart event failed", "error", err)
		}
	}
}

// persist writes the new state, or drops the snapshot of a cleared cart.
func (uc *cartUsecase) persist(ctx context.Context, sessionID string, change cart.Change, now time.Time) {
	if change.Op == cart.OpClear {
		if err := uc.snapshots.Delete(ctx, sessionID); err != nil {
			log.Errorw(ctx, "delete cart snapshot failed", "error", err)
		}
		return
	}

	snapshot := &models.CartSnapshot{
		SessionID: sessionID,
		Items:     change.State.Items(),
		Version:   change.State.Version(),
		UpdatedAt: now,
	}
	if err := uc.snapshots.Save(ctx, snapshot); err != nil {
		log.Errorw(ctx, "save cart snapshot failed", "error", err)
	}
}
