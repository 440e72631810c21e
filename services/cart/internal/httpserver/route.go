package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	middleware "github.com/Skotchmaster/trustbasket/pkg/middleware/auth"
	"github.com/Skotchmaster/trustbasket/pkg/tokens"
)

type Deps struct {
	CartHandler    *CartHTTP
	CatalogHandler *CatalogHTTP
	OrderHandler   *OrderHTTP
	JWTSecret      []byte
	// Ready reports whether the backing stores answer. Nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				logging.FromContext(c.Request().Context()).Warn("not_ready", "error", err)
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	auth := middleware.NewAuth(d.JWTSecret)
	vendorOnly := auth.RequireRole(tokens.RoleVendor)
	supplierOnly := auth.RequireRole(tokens.RoleSupplier)

	catalog := e.Group("/catalog")
	catalog.GET("/items", d.CatalogHandler.ListItems)
	catalog.GET("/items/:id", d.CatalogHandler.GetItem)
	catalog.POST("/items", d.CatalogHandler.CreateItem, supplierOnly)

	e.POST("/suppliers", d.CatalogHandler.CreateSupplier, auth.RequireRole(tokens.RoleAdmin))

	cart := e.Group("/cart", vendorOnly)
	cart.GET("", d.CartHandler.GetCart)
	cart.DELETE("", d.CartHandler.ClearCart)
	cart.POST("/items", d.CartHandler.AddItem)
	cart.PATCH("/items/:id", d.CartHandler.UpdateQuantity)
	cart.DELETE("/items/:id", d.CartHandler.RemoveItem)
	cart.GET("/checkout", d.CartHandler.Checkout)
	cart.POST("/orders", d.CartHandler.PlaceOrder)

	e.GET("/orders", d.OrderHandler.VendorOrders, vendorOnly)
	e.GET("/suppliers/:id/orders", d.OrderHandler.SupplierOrders, supplierOnly)
	e.POST("/orders/:id/accept", d.OrderHandler.AcceptOrder, supplierOnly)
	e.POST("/orders/:id/reject", d.OrderHandler.RejectOrder, supplierOnly)
}
