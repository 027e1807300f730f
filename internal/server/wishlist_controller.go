package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

type wishlistRequest struct {
	UserID string `jwt:"sub" validate:"required"`
}

type wishlistItemRequest struct {
	UserID    string `jwt:"sub" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

func (h *controller) GetWishlist(c echo.Context, req wishlistRequest) (*usecase.WishlistView, error) {
	return h.wishlist.List(c.Request().Context(), req.UserID)
}

func (h *controller) AddWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error) {
	return h.wishlist.Add(c.Request().Context(), req.UserID, req.ProductID)
}

func (h *controller) RemoveWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error) {
	return h.wishlist.Remove(c.Request().Context(), req.UserID, req.ProductID)
}

func (h *controller) ToggleWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error) {
	return h.wishlist.Toggle(c.Request().Context(), req.UserID, req.ProductID)
}
