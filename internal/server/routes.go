package server

import (
	"net/http"

	"storefront/internal/handler"
	"storefront/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

type Handlers struct {
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
}

// チェックアウトは注文APIを叩くので、IPごとに絞る
const checkoutRatePerSecond = 2

func RegisterRoutes(e *echo.Echo, h Handlers, session middleware.SessionOptions) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	g := e.Group("")
	g.Use(middleware.CartSession(session))

	h.Cart.RegisterRoutes(g)
	h.Checkout.RegisterRoutes(g, echomw.RateLimiter(
		echomw.NewRateLimiterMemoryStore(rate.Limit(checkoutRatePerSecond)),
	))
}
