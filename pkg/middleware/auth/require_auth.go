package middleware

import (
	"net/http"
	"strings"

	"github.com/Skotchmaster/trustbasket/pkg/tokens"
	"github.com/labstack/echo/v4"
)

const (
	AccessCookie = "accessToken"

	ContextUserID = "user_id"
	ContextRole   = "role"
)

type Auth struct {
	JWTSecret []byte
}

func NewAuth(secret []byte) *Auth {
	return &Auth{JWTSecret: secret}
}

func (m *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.require(next, nil)
}

// RequireRole lets through only callers whose token carries one of roles.
func (m *Auth) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return m.require(next, roles)
	}
}

func (m *Auth) require(next echo.HandlerFunc, roles []string) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw := accessToken(c)
		if raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		claims, err := tokens.AccessClaimsFromToken(raw, m.JWTSecret)
		if err != nil || claims == nil || claims.Subject == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		if len(roles) > 0 && !hasRole(claims.Role, roles) {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextRole, claims.Role)
		return next(c)
	}
}

func accessToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if ck, err := c.Cookie(AccessCookie); err == nil {
		return ck.Value
	}
	return ""
}

func hasRole(role string, allowed []string) bool {
	if role == tokens.RoleAdmin {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func UserID(c echo.Context) (string, bool) {
	s, ok := c.Get(ContextUserID).(string)
	return s, ok && s != ""
}
