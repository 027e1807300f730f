package cart

import (
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/shopspring/decimal"
)

// State is an immutable view of a cart. Every applied mutation produces a new
// State; holders of an older State keep seeing the items as they were.
type State struct {
	items   []models.CartLineItem
	index   map[string]int // productID -> position in items
	version uint64
}

var emptyState = &State{index: map[string]int{}}

func newState(items []models.CartLineItem, version uint64) *State {
	index := make(map[string]int, len(items))
	for i, item := range items {
		index[item.ID] = i
	}
	return &State{items: items, index: index, version: version}
}

// Items returns a copy of the line items in insertion order.
func (s *State) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *State) Len() int {
	return len(s.items)
}

// Get returns the line item for productID.
func (s *State) Get(productID string) (models.CartLineItem, bool) {
	i, ok := s.index[productID]
	if !ok {
		return models.CartLineItem{}, false
	}
	return s.items[i], true
}

func (s *State) Contains(productID string) bool {
	_, ok := s.index[productID]
	return ok
}

// Version increases by one with every applied mutation and never changes on a no-op.
func (s *State) Version() uint64 {
	return s.version
}

// TotalItems is the sum of all quantities.
func (s *State) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice is the sum of price × quantity over all line items.
func (s *State) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (s *State) withAppended(item models.CartLineItem) *State {
	items := make([]models.CartLineItem, len(s.items), len(s.items)+1)
	copy(items, s.items)
	items = append(items, item)
	return newState(items, s.version+1)
}

func (s *State) withQuantity(productID string, quantity int) *State {
	items := s.Items()
	items[s.index[productID]].Quantity = quantity
	return &State{items: items, index: s.index, version: s.version + 1}
}

func (s *State) without(productID string) *State {
	pos := s.index[productID]
	items := make([]models.CartLineItem, 0, len(s.items)-1)
	items = append(items, s.items[:pos]...)
	items = append(items, s.items[pos+1:]...)
	return newState(items, s.version+1)
}
