package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/service"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/submit"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/testenv"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/transport"
)

var testSecret = []byte("registration-secret")

type testEnv struct {
	t        *testing.T
	e        *echo.Echo
	accounts *repo.GormRepo
	events   *events.Recorder
}

func newTestEnv(t *testing.T, mutate ...func(*Deps)) *testEnv {
	t.Helper()

	store, _ := testenv.NewWizardStore(t)
	accounts := &repo.GormRepo{DB: testenv.NewDB(t)}
	rec := &events.Recorder{}

	d := &Deps{
		WizardHandler: &WizardHTTP{Svc: &service.RegistrationService{
			Sessions:  store,
			Submitter: &submit.DirectorySubmitter{Repo: accounts},
			Producer:  rec,
		}},
		LoginHandler: &LoginHTTP{Svc: &service.LoginService{Accounts: accounts, JWTSecret: testSecret}},
	}
	for _, m := range mutate {
		m(d)
	}

	e := echo.New()
	Register(e, d)
	return &testEnv{t: t, e: e, accounts: accounts, events: rec}
}

func (env *testEnv) do(method, path string, body any) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) upload(path, filename, contentType string, data []byte) *httptest.ResponseRecorder {
	env.t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(env.t, err)
	_, err = io.Copy(part, bytes.NewReader(data))
	require.NoError(env.t, err)
	require.NoError(env.t, w.Close())

	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) start(role string) transport.WizardResponse {
	env.t.Helper()
	rec := env.do("POST", "/register/sessions", transport.StartRequest{Role: role})
	require.Equal(env.t, 201, rec.Code, rec.Body.String())
	return decode[transport.WizardResponse](env.t, rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
