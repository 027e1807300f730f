package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
)

// The session id header is always set by the Session middleware.
type cartRequest struct {
	SessionID string `header:"X-Session-ID" validate:"required"`
}

type addCartItemRequest struct {
	SessionID string `header:"X-Session-ID" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
}

type cartItemRequest struct {
	SessionID string `header:"X-Session-ID" validate:"required"`
	ProductID string `param:"product_id" validate:"required"`
}

// Quantity is a pointer so an explicit 0 reaches the cart and is reported as
// invalid_quantity rather than rejected as missing.
type updateCartItemRequest struct {
	SessionID string `header:"X-Session-ID" validate:"required"`
	ProductID string `param:"product_id" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

func (h *controller) GetCart(c echo.Context, req cartRequest) (*usecase.CartSummary, error) {
	return h.cart.Summary(c.Request().Context(), req.SessionID)
}

func (h *controller) ClearCart(c echo.Context, req cartRequest) (*usecase.CartResult, error) {
	return h.cart.Clear(c.Request().Context(), req.SessionID)
}

func (h *controller) AddCartItem(c echo.Context, req addCartItemRequest) (*usecase.CartResult, error) {
	return h.cart.AddProduct(c.Request().Context(), req.SessionID, req.ProductID)
}

func (h *controller) UpdateCartItem(c echo.Context, req updateCartItemRequest) (*usecase.CartResult, error) {
	return h.cart.UpdateQuantity(c.Request().Context(), req.SessionID, req.ProductID, *req.Quantity)
}

func (h *controller) RemoveCartItem(c echo.Context, req cartItemRequest) (*usecase.CartResult, error) {
	return h.cart.RemoveProduct(c.Request().Context(), req.SessionID, req.ProductID)
}
