package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLineItem is a product snapshot taken when it was first added, plus a quantity.
type CartLineItem struct {
	Product  `bson:",inline" yaml:",inline"`
	Quantity int `bson:"quantity" json:"quantity" yaml:"quantity"`
}

// Subtotal is price × quantity for this line.
func (i CartLineItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CartSnapshot is the persisted form of a shopper's cart.
type CartSnapshot struct {
	SessionID string         `bson:"_id" json:"session_id"`
	Items     []CartLineItem `bson:"items" json:"items"`
	Version   uint64         `bson:"version" json:"version"`
	UpdatedAt time.Time      `bson:"updated_at" json:"updated_at"`
}

func (CartSnapshot) CollectionName() string {
	return "cart_snapshots"
}

func (s CartSnapshot) GetID() string {
	return s.SessionID
}
