package catalog

import (
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/pkg/util"
	"github.com/shopspring/decimal"
)

// Default is the built-in storefront catalog used when no seed file is configured.
func Default() Catalog {
	return NewStatic([]models.Product{
		{
			ID:            "1",
			Name:          "Smart TV",
			Description:   "A high-definition smart television with vibrant colors.",
			Price:         decimal.NewFromInt(499),
			Image:         "/tv1.jpg",
			Category:      "televisions",
			OnSale:        true,
			OriginalPrice: util.Ptr(decimal.NewFromInt(599)),
		},
		{
			ID:          "2",
			Name:        "Laptop",
			Description: "A powerful laptop for work and play.",
			Price:       decimal.NewFromInt(899),
			Image:       "/laptop1.jpg",
			Category:    "laptops",
		},
		{
			ID:            "3",
			Name:          "Wireless Headphones",
			Description:   "Noise-cancelling headphones with superior sound quality.",
			Price:         decimal.NewFromInt(299),
			Image:         "/headphones1.jpg",
			Category:      "audio",
			OnSale:        true,
			OriginalPrice: util.Ptr(decimal.NewFromInt(349)),
		},
	})
}
