package httpserver

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/pkg/tokens"
)

var testSecret = []byte("gateway-secret")

type upstream struct {
	srv *httptest.Server

	mu    sync.Mutex
	paths []string
	hosts []string
}

func (u *upstream) seen() ([]string, []string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.paths...), append([]string(nil), u.hosts...)
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.paths = append(u.paths, r.URL.Path)
		u.hosts = append(u.hosts, r.Header.Get("X-Forwarded-Host"))
		u.mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newGateway(t *testing.T) (*echo.Echo, *upstream, *upstream) {
	t.Helper()
	cart, reg := newUpstream(t), newUpstream(t)

	e := echo.New()
	require.NoError(t, Register(e, &Deps{
		CartURL:         cart.srv.URL,
		RegistrationURL: reg.srv.URL,
		JWTSecret:       testSecret,
	}))
	return e, cart, reg
}

func serve(e *echo.Echo, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Host = "shop.example"
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGateway_Routing(t *testing.T) {
	e, cart, reg := newGateway(t)

	tok, err := tokens.NewAccessToken(testSecret, "vendor-1", tokens.RoleVendor, time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/v1/catalog/items", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/v1/register/sessions", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/v1/auth/login", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/v1/cart", tok).Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/v1/orders/7/accept", tok).Code)

	cartPaths, cartHosts := cart.seen()
	regPaths, _ := reg.seen()
	assert.Equal(t, []string{"/catalog/items", "/cart", "/orders/7/accept"}, cartPaths)
	assert.Equal(t, []string{"/register/sessions", "/auth/login"}, regPaths)
	assert.Equal(t, "shop.example", cartHosts[0])
}

func TestGateway_RequiresToken(t *testing.T) {
	e, cart, _ := newGateway(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/cart"},
		{http.MethodPost, "/api/v1/cart/orders"},
		{http.MethodPost, "/api/v1/catalog/items"},
		{http.MethodGet, "/api/v1/suppliers/abc/orders"},
	} {
		rec := serve(e, tc.method, tc.path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.path)
	}
	paths, _ := cart.seen()
	assert.Empty(t, paths)
}

func TestGateway_UpstreamDown(t *testing.T) {
	cart := newUpstream(t)
	cart.srv.Close()

	e := echo.New()
	require.NoError(t, Register(e, &Deps{CartURL: cart.srv.URL, RegistrationURL: cart.srv.URL, JWTSecret: testSecret}))

	assert.Equal(t, http.StatusBadGateway, serve(e, http.MethodGet, "/api/v1/catalog/items", "").Code)
}
