package catalog

import (
	"strings"

	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type Predicate func(models.Product) bool

// InCategory matches the category slug case-insensitively.
func InCategory(slug string) Predicate {
	return func(p models.Product) bool {
		return strings.EqualFold(p.Category, slug)
	}
}

// NameContains matches a case-insensitive substring of the product name. An
// empty query matches everything.
func NameContains(query string) Predicate {
	q := strings.ToLower(strings.TrimSpace(query))
	return func(p models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	}
}

func OnSale() Predicate {
	return func(p models.Product) bool {
		return p.OnSale
	}
}

// And matches when every non-nil predicate matches.
func And(preds ...Predicate) Predicate {
	return func(p models.Product) bool {
		for _, pred := range preds {
			if pred != nil && !pred(p) {
				return false
			}
		}
		return true
	}
}
