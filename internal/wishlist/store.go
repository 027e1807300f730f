// Package wishlist tracks which products a shopper has saved for later. It is
// the membership-only sibling of package cart: no quantities, no prices, just
// an insertion-ordered set of product ids.
package wishlist

import (
	"slices"
	"sync"
	"sync/atomic"
)

// State is an immutable set of product ids in insertion order.
type State struct {
	ids     []string
	members map[string]struct{}
	version uint64
}

var emptyState = &State{members: map[string]struct{}{}}

func newState(ids []string, version uint64) *State {
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		members[id] = struct{}{}
	}
	return &State{ids: ids, members: members, version: version}
}

func (s *State) IDs() []string {
	return slices.Clone(s.ids)
}

func (s *State) Len() int {
	return len(s.ids)
}

func (s *State) Contains(productID string) bool {
	_, ok := s.members[productID]
	return ok
}

func (s *State) Version() uint64 {
	return s.version
}

// Change is delivered to observers after the set changed.
type Change struct {
	ProductID string // empty when the whole list was cleared
	Added     bool
	State     *State
}

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

// WithIDs seeds the store. Empty and repeated ids are skipped.
func WithIDs(ids []string) Option {
	return func(s *Store) {
		seen := make(map[string]struct{}, len(ids))
		kept := make([]string, 0, len(ids))
		for _, id := range ids {
			if _, dup := seen[id]; dup || id == "" {
				continue
			}
			seen[id] = struct{}{}
			kept = append(kept, id)
		}
		s.state.Store(newState(kept, 0))
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

func (s *Store) Snapshot() *State {
	return s.state.Load()
}

func (s *Store) IDs() []string {
	return s.Snapshot().IDs()
}

func (s *Store) Len() int {
	return s.Snapshot().Len()
}

func (s *Store) Contains(productID string) bool {
	return s.Snapshot().Contains(productID)
}

// Add reports whether productID was newly added.
func (s *Store) Add(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(productID)
}

// Remove reports whether productID was present.
func (s *Store) Remove(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(productID)
}

// Toggle adds productID when absent and removes it otherwise. It returns true
// when the product is on the list afterwards.
func (s *Store) Toggle(productID string) bool {
	_, in, _ := s.ToggleIf(productID, func(string) bool { return true })
	return in
}

// ToggleIf is Toggle with a guard on the add path. canAdd runs under the write
// lock; when it refuses, the list is left as it is and ok is false.
func (s *Store) ToggleIf(productID string, canAdd func(productID string) bool) (state *State, in, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.state.Load()
	if cur.Contains(productID) {
		s.remove(productID)
		return s.state.Load(), false, true
	}
	if !canAdd(productID) {
		return cur, false, false
	}
	in = s.add(productID)
	return s.state.Load(), in, true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.state.Load()
	if cur.Len() == 0 {
		return
	}
	s.commit(Change{State: newState(nil, cur.version+1)})
}

func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	id := s.subscribe(fn)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.observers = slices.DeleteFunc(slices.Clone(s.observers), func(sub subscription) bool {
				return sub.id == id
			})
		})
	}
}

func (s *Store) subscribe(fn Observer) uint64 {
	s.nextSubID++
	s.observers = append(s.observers, subscription{id: s.nextSubID, fn: fn})
	return s.nextSubID
}

func (s *Store) add(productID string) bool {
	cur := s.state.Load()
	if productID == "" || cur.Contains(productID) {
		return false
	}
	ids := append(cur.IDs(), productID)
	s.commit(Change{ProductID: productID, Added: true, State: newState(ids, cur.version+1)})
	return true
}

func (s *Store) remove(productID string) bool {
	cur := s.state.Load()
	if !cur.Contains(productID) {
		return false
	}
	ids := slices.DeleteFunc(cur.IDs(), func(id string) bool { return id == productID })
	s.commit(Change{ProductID: productID, State: newState(ids, cur.version+1)})
	return true
}

func (s *Store) commit(change Change) {
	s.state.Store(change.State)
	for _, sub := range s.observers {
		sub.fn(change)
	}
}
