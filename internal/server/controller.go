package server

import (
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/catalog"
	"github.com/nguyentranbao-ct/storefront/internal/models"
	"github.com/nguyentranbao-ct/storefront/internal/usecase"
	"go.uber.org/fx"
)

type Controller interface {
	Health(c echo.Context) error

	ListProducts(c echo.Context, req usecase.ProductFilter) ([]models.Product, error)
	GetProduct(c echo.Context, req productRequest) (*models.Product, error)
	ListCategories(c echo.Context, req struct{}) ([]catalog.Category, error)

	GetCart(c echo.Context, req cartRequest) (*usecase.CartSummary, error)
	ClearCart(c echo.Context, req cartRequest) (*usecase.CartResult, error)
	AddCartItem(c echo.Context, req addCartItemRequest) (*usecase.CartResult, error)
	UpdateCartItem(c echo.Context, req updateCartItemRequest) (*usecase.CartResult, error)
	RemoveCartItem(c echo.Context, req cartItemRequest) (*usecase.CartResult, error)

	GetWishlist(c echo.Context, req wishlistRequest) (*usecase.WishlistView, error)
	AddWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error)
	RemoveWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error)
	ToggleWishlistItem(c echo.Context, req wishlistItemRequest) (*usecase.WishlistView, error)
}

type ControllerParams struct {
	fx.In

	Cart     usecase.CartUsecase
	Wishlist usecase.WishlistUsecase
	Products usecase.ProductUsecase
	Checks   []HealthCheck `group:"health"`
}

type controller struct {
	cart     usecase.CartUsecase
	wishlist usecase.WishlistUsecase
	products usecase.ProductUsecase
	checks   []HealthCheck
}

func NewController(p ControllerParams) Controller {
	return &controller{
		cart:     p.Cart,
		wishlist: p.Wishlist,
		products: p.Products,
		checks:   p.Checks,
	}
}
