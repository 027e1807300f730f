// Package cart holds a shopper's line items and the only operations allowed to
// change them.
//
// A Store publishes an immutable State after every applied mutation. Readers
// load the current State without locking and always see a consistent
// collection; writers are serialised. Invalid requests (unknown product id,
// quantity below one) leave the State untouched and are reported through the
// returned Outcome instead of an error.
package cart

import (
	"sync"
	"sync/atomic"

	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/shopspring/decimal"
)

type Op string

const (
	OpAdd            Op = "add"
	OpRemove         Op = "remove"
	OpUpdateQuantity Op = "update_quantity"
	OpClear          Op = "clear"
)

// Change is delivered to observers after an applied mutation.
type Change struct {
	Op        Op
	ProductID string // empty for OpClear
	State     *State
}

// Observer must not call mutating methods of the Store it observes.
type Observer func(Change)

type subscription struct {
	id uint64
	fn Observer
}

type Store struct {
	mu        sync.Mutex
	state     atomic.Pointer[State]
	observers []subscription
	nextSubID uint64
}

type Option func(*Store)

// WithSnapshot seeds the store with previously persisted items. Lines with a
// quantity below one are dropped and repeated product ids are merged into the
// first occurrence.
func WithSnapshot(items []models.CartLineItem, version uint64) Option {
	return func(s *Store) {
		merged := make([]models.CartLineItem, 0, len(items))
		pos := make(map[string]int, len(items))
		for _, item := range items {
			if item.Quantity < 1 || item.ID == "" {
				continue
			}
			if i, ok := pos[item.ID]; ok {
				merged[i].Quantity += item.Quantity
				continue
			}
			pos[item.ID] = len(merged)
			merged = append(merged, item)
		}
		s.state.Store(newState(merged, version))
	}
}

func WithObserver(fn Observer) Option {
	return func(s *Store) {
		s.subscribe(fn)
	}
}

func New(opts ...Option) *Store {
	s := &Store{}
	s.state.Store(emptyState)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current State.
func (s *Store) Snapshot() *State {
	return s.state.Load()
}

func (s *Store) Items() []models.CartLineItem {
	return s.Snapshot().Items()
}

func (s *Store) TotalItems() int {
	return s.Snapshot().TotalItems()
}

func (s *Store) TotalPrice() decimal.Decimal {
	return s.Snapshot().TotalPrice()
}

// Mutation is one cart operation, computed against the current State while
// the store's write lock is held.
type Mutation struct {
	op        Op
	productID string
	apply     func(cur *State) (*State, Outcome)
}

func (m Mutation) Op() Op {
	return m.op
}

// Add increments the quantity of an existing line by one, or appends a new line
// with quantity one. The stored product fields of an existing line are kept as
// they were when it was first added.
func Add(product models.Product) Mutation {
	return Mutation{op: OpAdd, productID: product.ID, apply: func(cur *State) (*State, Outcome) {
		if line, ok := cur.Get(product.ID); ok {
			return cur.withQuantity(product.ID, line.Quantity+1), Applied
		}
		return cur.withAppended(models.CartLineItem{Product: product, Quantity: 1}), Applied
	}}
}

func Remove(productID string) Mutation {
	return Mutation{op: OpRemove, productID: productID, apply: func(cur *State) (*State, Outcome) {
		if !cur.Contains(productID) {
			return cur, NotInCart
		}
		return cur.without(productID), Applied
	}}
}

// SetQuantity replaces the quantity of an existing line. A quantity below one
// is rejected; callers that want removal must use Remove.
func SetQuantity(productID string, quantity int) Mutation {
	return Mutation{op: OpUpdateQuantity, productID: productID, apply: func(cur *State) (*State, Outcome) {
		if !cur.Contains(productID) {
			return cur, NotInCart
		}
		if quantity < 1 {
			return cur, InvalidQuantity
		}
		return cur.withQuantity(productID, quantity), Applied
	}}
}

func Clear() Mutation {
	return Mutation{op: OpClear, apply: func(cur *State) (*State, Outcome) {
		return newState(nil, cur.version+1), Applied
	}}
}

// Apply runs m and returns its outcome with the State it left behind. Rejected
// mutations return the unchanged State and notify nobody.
func (s *Store) Apply(m Mutation) (Outcome, *State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state.Load()
	next, outcome := m.apply(cur)
	if !outcome.Applied() {
		return outcome, cur
	}
	s.commit(m.op, m.productID, next)
	return outcome, next
}

func (s *Store) AddToCart(product models.Product) Outcome {
	outcome, _ := s.Apply(Add(product))
	return outcome
}

func (s *Store) RemoveFromCart(productID string) Outcome {
	outcome, _ := s.Apply(Remove(productID))
	return outcome
}

func (s *Store) UpdateQuantity(productID string, quantity int) Outcome {
	outcome, _ := s.Apply(SetQuantity(productID, quantity))
	return outcome
}

func (s *Store) ClearCart() Outcome {
	outcome, _ := s.Apply(Clear())
	return outcome
}

// Subscribe registers fn for every applied mutation and returns a function
// that removes it again.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.subscribe(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.observers {
				if sub.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) subscribe(fn Observer) uint64 {
	s.nextSubID++
	s.observers = append(s.observers, subscription{id: s.nextSubID, fn: fn})
	return s.nextSubID
}

// commit must be called with mu held.
func (s *Store) commit(op Op, productID string, next *State) {
	s.state.Store(next)
	change := Change{Op: op, ProductID: productID, State: next}
	for _, sub := range s.observers {
		sub.fn(change)
	}
}
