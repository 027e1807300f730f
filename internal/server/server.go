package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	pkgmdw "github.com/nguyentranbao-ct/storefront/internal/server/middleware"
	"github.com/nguyentranbao-ct/storefront/pkg/logger"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"go.uber.org/fx"
)

func StartServer(
	lc fx.Lifecycle,
	sd fx.Shutdowner,
	conf *config.Config,
	ctrl Controller,
) error {
	e, err := NewEcho(conf, ctrl)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				addr := conf.Server.Addr()
				log.Infow(ctx, "starting HTTP server", "addr", addr)
				if err := e.Start(addr); !errors.Is(err, http.ErrServerClosed) {
					log.Errorw(ctx, "HTTP server stopped", "error", err)
					_ = sd.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return e.Shutdown(ctx)
		},
	})
	return nil
}

// NewEcho builds the router with every middleware and route of the service.
func NewEcho(conf *config.Config, ctrl Controller) (*echo.Echo, error) {
	corsPattern, err := regexp.Compile(conf.Server.CORSPattern)
	if err != nil {
		return nil, err
	}

	httpLog := logger.MustNamed("http")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = pkgmdw.NewValidator()
	e.HTTPErrorHandler = pkgmdw.ErrorHandler(httpLog)

	e.Use(pkgmdw.Metrics())
	e.Use(pkgmdw.RequestID())
	e.Use(pkgmdw.CORS(corsPattern))
	e.Use(pkgmdw.LogRequest(pkgmdw.LogRequestConfig{
		Logger:      httpLog,
		SkipPaths:   conf.Server.SkipLogPaths,
		QueryParams: func(echo.Context) bool { return true },
	}))
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Errorw(c.Request().Context(), "PANIC RECOVER", "error", err, "stack", string(stack))
			return err
		},
	}))

	if conf.Server.PprofEnabled {
		pkgmdw.PprofWrap(e)
	}

	e.GET("/health", ctrl.Health)

	api := e.Group("/api/v1")
	api.GET("/products", pkgmdw.WrapHandler(ctrl.ListProducts))
	api.GET("/products/:id", pkgmdw.WrapHandler(ctrl.GetProduct))
	api.GET("/categories", pkgmdw.WrapHandler(ctrl.ListCategories))

	cart := api.Group("/cart", pkgmdw.Session())
	cart.GET("", pkgmdw.WrapHandler(ctrl.GetCart))
	cart.DELETE("", pkgmdw.WrapHandler(ctrl.ClearCart))
	cart.POST("/items", pkgmdw.WrapHandler(ctrl.AddCartItem))
	cart.PATCH("/items/:product_id", pkgmdw.WrapHandler(ctrl.UpdateCartItem))
	cart.DELETE("/items/:product_id", pkgmdw.WrapHandler(ctrl.RemoveCartItem))

	wishlist := api.Group("/wishlist", pkgmdw.JWTAuth(conf.Auth))
	wishlist.GET("", pkgmdw.WrapHandler(ctrl.GetWishlist))
	wishlist.POST("", pkgmdw.WrapHandler(ctrl.AddWishlistItem))
	wishlist.DELETE("", pkgmdw.WrapHandler(ctrl.RemoveWishlistItem))
	wishlist.POST("/toggle", pkgmdw.WrapHandler(ctrl.ToggleWishlistItem))

	return e, nil
}
