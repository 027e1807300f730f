package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartEventType string

const (
	CartEventItemAdded       CartEventType = "cart.item_added"
	CartEventItemRemoved     CartEventType = "cart.item_removed"
	CartEventQuantityUpdated CartEventType = "cart.quantity_updated"
	CartEventCleared         CartEventType = "cart.cleared"
)

// CartEvent is published after every applied cart mutation.
type CartEvent struct {
	Type       CartEventType   `json:"type"`
	SessionID  string          `json:"session_id"`
	ProductID  string          `json:"product_id,omitempty"`
	Quantity   int             `json:"quantity,omitempty"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Version    uint64          `json:"version"`
	OccurredAt time.Time       `json:"occurred_at"`
}
