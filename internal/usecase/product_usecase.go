package usecase

import (
	"context"

	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/models"
)

type ProductFilter struct {
	Category string `query:"category"`
	Query    string `query:"q"`
	OnSale   bool   `query:"on_sale"`
}

func (f ProductFilter) predicate() catalog.Predicate {
	var preds []catalog.Predicate
	if f.Category != "" {
		preds = append(preds, catalog.InCategory(f.Category))
	}
	if f.Query != "" {
		preds = append(preds, catalog.NameContains(f.Query))
	}
	if f.OnSale {
		preds = append(preds, catalog.OnSale())
	}
	return catalog.And(preds...)
}

type productUsecase struct {
	catalog catalog.Catalog
}

func NewProductUsecase(c catalog.Catalog) ProductUsecase {
	return &productUsecase{catalog: c}
}

func (uc *productUsecase) List(_ context.Context, filter ProductFilter) []models.Product {
	return uc.catalog.Filter(filter.predicate())
}

func (uc *productUsecase) Get(_ context.Context, productID string) (*models.Product, error) {
	p, ok := uc.catalog.FindByID(productID)
	if !ok {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (uc *productUsecase) Categories(context.Context) []catalog.Category {
	return catalog.Categories(uc.catalog, catalog.DefaultCategories)
}
