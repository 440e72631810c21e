package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/pkg/tokens"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/testenv"
)

var testSecret = []byte("test-secret")

type testEnv struct {
	t      *testing.T
	e      *echo.Echo
	items   []models.CatalogItem
	events  *events.Recorder
	catalog *service.CatalogService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testenv.NewDB(t)
	items := testenv.Seed(t, db)
	r := &repo.GormRepo{DB: db}
	rec := &events.Recorder{}
	catalog := &service.CatalogService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		CartHandler: &CartHTTP{Svc: &service.CartService{
			Carts:    session.NewStore[domain.Cart](testenv.NewRedis(t), "cart", time.Hour),
			Items:    r,
			Orders:   r,
			Producer: rec,
			Policy:   service.ClearBeforeAck,
		}},
		CatalogHandler: &CatalogHTTP{Svc: catalog},
		OrderHandler:   &OrderHTTP{Svc: &service.OrderService{Repo: r, Producer: rec}},
		JWTSecret:      testSecret,
	})

	return &testEnv{t: t, e: e, items: items, events: rec, catalog: catalog}
}

func (env *testEnv) token(subject, role string) string {
	env.t.Helper()
	tok, err := tokens.NewAccessToken(testSecret, subject, role, time.Now().Add(time.Hour))
	require.NoError(env.t, err)
	return tok
}

func (env *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func itemPath(prefix string, id uint) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
