package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type productRequest struct {
	ID string `param:"id" validate:"required"`
}

func (h *controller) ListProducts(c echo.Context, req usecase.ProductFilter) ([]models.Product, error) {
	return h.products.List(c.Request().Context(), req), nil
}

func (h *controller) ListCategories(c echo.Context, _ struct{}) ([]catalog.Category, error) {
	return h.products.Categories(c.Request().Context()), nil
}

func (h *controller) GetProduct(c echo.Context, req productRequest) (*models.Product, error) {
	return h.products.Get(c.Request().Context(), req.ID)
}
