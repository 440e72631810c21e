package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Skotchmaster/trustbasket/pkg/tokens"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-jwt-secret")

func okHandler(c echo.Context) error {
	id, _ := UserID(c)
	return c.String(http.StatusOK, id)
}

func token(t *testing.T, sub, role string) string {
	t.Helper()
	tok, err := tokens.NewAccessToken(secret, sub, role, time.Now().Add(time.Minute))
	require.NoError(t, err)
	return tok
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()
	m := NewAuth(secret)

	tests := []struct {
		name    string
		prepare func(r *http.Request)
		code    int
	}{
		{name: "missing", prepare: func(r *http.Request) {}, code: http.StatusUnauthorized},
		{name: "garbage", prepare: func(r *http.Request) { r.Header.Set(echo.HeaderAuthorization, "Bearer nope") }, code: http.StatusUnauthorized},
		{name: "bearer", prepare: func(r *http.Request) {
			r.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "u-1", tokens.RoleVendor))
		}, code: http.StatusOK},
		{name: "cookie", prepare: func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: AccessCookie, Value: token(t, "u-1", tokens.RoleVendor)})
		}, code: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			err := m.RequireAuth(okHandler)(c)
			if tt.code == http.StatusOK {
				require.NoError(t, err)
				assert.Equal(t, "u-1", rec.Body.String())
				return
			}
			he, ok := err.(*echo.HTTPError)
			require.True(t, ok)
			assert.Equal(t, tt.code, he.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	m := NewAuth(secret)
	h := m.RequireRole(tokens.RoleSupplier)(okHandler)

	for role, code := range map[string]int{
		tokens.RoleSupplier: http.StatusOK,
		tokens.RoleAdmin:    http.StatusOK,
		tokens.RoleVendor:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, "u-2", role))
		rec := httptest.NewRecorder()

		err := h(e.NewContext(req, rec))
		if code == http.StatusOK {
			require.NoError(t, err, role)
			continue
		}
		he, ok := err.(*echo.HTTPError)
		require.True(t, ok, role)
		assert.Equal(t, code, he.Code, role)
	}
}
