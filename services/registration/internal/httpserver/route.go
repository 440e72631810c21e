package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/pkg/middleware/csrf"
)

type Deps struct {
	WizardHandler *WizardHTTP
	// LoginHandler is nil when accounts live in a remote backend.
	LoginHandler *LoginHTTP
	// CSRF enables double-submit protection on the wizard routes.
	CSRF       bool
	CSRFConfig csrf.Config
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

	var mw []echo.MiddlewareFunc
	if d.CSRF {
		mw = append(mw, csrf.Middleware(d.CSRFConfig))
	}

	g := e.Group("/register/sessions", mw...)
	g.POST("", d.WizardHandler.Start)
	g.GET("/:id", d.WizardHandler.Get)
	g.PATCH("/:id", d.WizardHandler.UpdateFields)
	g.PUT("/:id/role", d.WizardHandler.SetRole)
	g.POST("/:id/attachments/:field", d.WizardHandler.Attach)
	g.POST("/:id/next", d.WizardHandler.Next)
	g.POST("/:id/prev", d.WizardHandler.Prev)
	g.POST("/:id/submit", d.WizardHandler.Submit)

	if d.LoginHandler != nil {
		e.POST("/auth/login", d.LoginHandler.Login, mw...)
	}
}
