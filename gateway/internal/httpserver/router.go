package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	middleware "github.com/Skotchmaster/trustbasket/pkg/middleware/auth"
)

const apiPrefix = "/api/v1"

type Deps struct {
	CartURL         string
	RegistrationURL string
	DialTimeout     time.Duration
	JWTSecret       []byte
}

// Register mounts both services under /api/v1. Catalog reads and the
// registration wizard are public; cart, order and supplier calls need a token.
func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	cart, err := newProxy("cart", d.CartURL, apiPrefix, d.DialTimeout)
	if err != nil {
		return err
	}
	registration, err := newProxy("registration", d.RegistrationURL, apiPrefix, d.DialTimeout)
	if err != nil {
		return err
	}

	e.Any(apiPrefix+"/register/*", registration)
	e.POST(apiPrefix+"/auth/login", registration)
	e.Match([]string{http.MethodGet}, apiPrefix+"/catalog/*", cart)

	auth := middleware.NewAuth(d.JWTSecret).RequireAuth
	writes := []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete}
	e.Match(writes, apiPrefix+"/catalog/*", cart, auth)
	for _, p := range []string{"/cart", "/cart/*", "/orders", "/orders/*", "/suppliers", "/suppliers/*"} {
		e.Any(apiPrefix+p, cart, auth)
	}
	return nil
}
