// Package catalog is the read-only product source the cart and wishlist look
// products up in.
package catalog

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"gopkg.in/yaml.v3"
)

type Catalog interface {
	FindByID(id string) (*models.Product, bool)
	Filter(pred Predicate) []models.Product
	All() []models.Product
}

type static struct {
	products []models.Product
	byID     map[string]int
}

// NewStatic returns a Catalog over products in the given order. A later product
// with an id already seen replaces the earlier one in place.
func NewStatic(products []models.Product) Catalog {
	c := &static{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if i, ok := c.byID[p.ID]; ok {
			c.products[i] = p
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

func (c *static) FindByID(id string) (*models.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	p := c.products[i]
	return &p, true
}

func (c *static) Filter(pred Predicate) []models.Product {
	if pred == nil {
		return c.All()
	}
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func (c *static) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

type seedFile struct {
	Products []models.Product `yaml:"products" validate:"dive"`
}

// Load reads a YAML seed file of the form
//
//	products:
//	  - id: "1"
//	    name: Smart TV
//	    price: 499
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (Catalog, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := validator.New().Struct(seed); err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	for _, p := range seed.Products {
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("validate catalog: product %q has negative price", p.ID)
		}
	}
	return NewStatic(seed.Products), nil
}

// Marshal renders the catalog in the format Load reads.
func Marshal(c Catalog) ([]byte, error) {
	return yaml.Marshal(seedFile{Products: c.All()})
}
