package usecase

import (
	"github.com/nguyentranbao-ct/storefront/internal/cart"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/shopspring/decimal"
)

type CartLine struct {
	models.CartLineItem
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CartSummary is the checkout view of a cart. Tax and total are estimates
// derived from the cart totals; the store itself only knows items and prices.
type CartSummary struct {
	SessionID    string          `json:"session_id"`
	Items        []CartLine      `json:"items"`
	TotalItems   int             `json:"total_items"`
	ItemLabel    string          `json:"item_label"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"shipping"`
	EstimatedTax decimal.Decimal `json:"estimated_tax"`
	Total        decimal.Decimal `json:"total"`
	Version      uint64          `json:"version"`
}

type CartResult struct {
	Outcome string       `json:"outcome"`
	Applied bool         `json:"applied"`
	Cart    *CartSummary `json:"cart"`
}

func summarize(sessionID string, state *cart.State, taxRate decimal.Decimal) *CartSummary {
	subtotal := state.TotalPrice()
	tax := subtotal.Mul(taxRate).Round(2)
	totalItems := state.TotalItems()

	return &CartSummary{
		SessionID: sessionID,
		Items: util.ConvertList(state.Items(), func(item models.CartLineItem) CartLine {
			return CartLine{CartLineItem: item, Subtotal: item.Subtotal()}
		}),
		TotalItems:   totalItems,
		ItemLabel:    itemLabel(totalItems),
		Subtotal:     subtotal,
		Shipping:     decimal.Zero,
		EstimatedTax: tax,
		Total:        subtotal.Add(tax),
		Version:      state.Version(),
	}
}

func itemLabel(n int) string {
	if n == 1 {
		return "item"
	}
	return "items"
}

func newResult(sessionID string, outcome cart.Outcome, state *cart.State, taxRate decimal.Decimal) *CartResult {
	return &CartResult{
		Outcome: outcome.String(),
		Applied: outcome.Applied(),
		Cart:    summarize(sessionID, state, taxRate),
	}
}
