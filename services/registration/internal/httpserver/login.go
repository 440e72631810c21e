package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	middleware "github.com/Skotchmaster/trustbasket/pkg/middleware/auth"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/transport"
)

type LoginHTTP struct {
	Svc          *service.LoginService
	CookieSecure bool
}

func (h *LoginHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "login_error", "invalid body", err)
	}
	if req.Phone == "" || req.Password == "" {
		return badRequest(l, "login_error", "phone and password required", nil)
	}

	res, err := h.Svc.Login(ctx, req.Phone, req.Password)
	if err != nil {
		return fail(c, l, "login_error", err)
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.AccessCookie,
		Value:    res.AccessToken,
		Path:     "/",
		Expires:  res.ExpiresAt,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	l.Info("login_success", "account_id", res.Account.ID, "role", res.Account.Role)
	return c.JSON(http.StatusOK, transport.LoginResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		AccountID:   res.Account.ID.String(),
		Role:        res.Account.Role,
	})
}
