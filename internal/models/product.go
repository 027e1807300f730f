package models

import (
	"github.com/shopspring/decimal"
)

// Product is a read-only catalog record.
type Product struct {
	ID            string           `bson:"id" json:"id" yaml:"id" validate:"required"`
	Name          string           `bson:"name" json:"name" yaml:"name" validate:"required"`
	Description   string           `bson:"description" json:"description" yaml:"description"`
	Price         decimal.Decimal  `bson:"price" json:"price" yaml:"price"`
	Image         string           `bson:"image" json:"image" yaml:"image"`
	Category      string           `bson:"category" json:"category" yaml:"category"`
	OnSale        bool             `bson:"on_sale" json:"on_sale" yaml:"on_sale"`
	OriginalPrice *decimal.Decimal `bson:"original_price,omitempty" json:"original_price,omitempty" yaml:"original_price,omitempty"`
}

// Discount returns how much cheaper the product is than its original price,
// or zero when it is not on sale.
func (p Product) Discount() decimal.Decimal {
	if !p.OnSale || p.OriginalPrice == nil || p.OriginalPrice.LessThanOrEqual(p.Price) {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}
