package submit

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/pkg/hash"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/testenv"
)

func samplePayload() domain.Payload {
	return domain.Payload{
		Fields: map[string]string{
			domain.KeyName:         "Ravi",
			domain.KeyPhone:        "9876543210",
			domain.KeyPassword:     "secret12",
			domain.KeyRole:         "supplier",
			domain.KeyAddress:      "APMC Yard",
			domain.KeySupplierType: "farmer",
		},
		Files: map[string]domain.Attachment{
			domain.KeyIDProof: {Filename: "id.pdf", ContentType: "application/pdf", Size: 4, Data: []byte("%PDF")},
		},
	}
}

func TestHTTPSubmitter_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "APMC Yard", r.FormValue("location.address"))
		assert.Equal(t, "farmer", r.FormValue("supplier.type"))

		f, fh, err := r.FormFile("supplier.id_proof")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "id.pdf", fh.Filename)
		assert.Equal(t, "application/pdf", fh.Header.Get("Content-Type"))
		assert.Equal(t, []byte("%PDF"), data)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"remote-42"}`)
	}))
	defer srv.Close()

	receipt, err := NewHTTPSubmitter(srv.URL, 0).Submit(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "remote-42", receipt.ID)
}

func TestHTTPSubmitter_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"message":"phone already registered"}`)
	}))
	defer srv.Close()

	_, err := NewHTTPSubmitter(srv.URL, 0).Submit(context.Background(), samplePayload())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "phone already registered")
}

func TestHTTPSubmitter_AcceptedWithoutID(t *testing.T) {
	cases := map[string]string{
		"empty body": "",
		"not json":   "<html>ok</html>",
		"no id":      `{"message":"queued"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = io.WriteString(w, body)
			}))
			defer srv.Close()

			receipt, err := NewHTTPSubmitter(srv.URL, 0).Submit(context.Background(), samplePayload())
			require.Error(t, err)
			assert.Empty(t, receipt.ID)
		})
	}
}

func TestHTTPSubmitter_QuotedFilename(t *testing.T) {
	const name = `ravi "farm" id.pdf`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, fh, err := r.FormFile("supplier.id_proof")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, name, fh.Filename)
		_, _ = io.WriteString(w, `{"id":"remote-7"}`)
	}))
	defer srv.Close()

	p := samplePayload()
	att := p.Files[domain.KeyIDProof]
	att.Filename = name
	p.Files[domain.KeyIDProof] = att

	receipt, err := NewHTTPSubmitter(srv.URL, 0).Submit(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "remote-7", receipt.ID)
}

func TestEscapeQuotes(t *testing.T) {
	assert.Equal(t, `a\\b\"c\"`, escapeQuotes(`a\b"c"`))
}

func TestHTTPSubmitter_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTPSubmitter(url, 0).Submit(context.Background(), samplePayload())
	assert.Error(t, err)
}

type memAccounts struct {
	created []*models.Account
	err     error
}

func (m *memAccounts) CreateAccount(_ context.Context, a *models.Account) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, a)
	return nil
}

func TestDirectorySubmitter(t *testing.T) {
	accounts := &memAccounts{}
	s := &DirectorySubmitter{Repo: accounts}

	_, err := s.Submit(context.Background(), samplePayload())
	require.NoError(t, err)

	require.Len(t, accounts.created, 1)
	a := accounts.created[0]
	assert.Equal(t, "supplier", a.Role)
	assert.Nil(t, a.Email)
	assert.True(t, hash.CheckPassword(a.PasswordHash, "secret12"))
	require.Len(t, a.Documents, 1)
	assert.Equal(t, domain.KeyIDProof, a.Documents[0].Field)
}

func TestDirectorySubmitter_Duplicate(t *testing.T) {
	s := &DirectorySubmitter{Repo: &memAccounts{err: repo.ErrAccountExists}}

	_, err := s.Submit(context.Background(), samplePayload())
	assert.True(t, errors.Is(err, repo.ErrAccountExists))
}

func TestDirectorySubmitter_StoresAccount(t *testing.T) {
	accounts := &repo.GormRepo{DB: testenv.NewDB(t)}
	s := &DirectorySubmitter{Repo: accounts}
	ctx := context.Background()

	receipt, err := s.Submit(ctx, samplePayload())
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.ID)

	got, err := accounts.GetAccountByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.Equal(t, receipt.ID, got.ID.String())
	assert.Equal(t, "farmer", got.SupplierType)
	require.Len(t, got.Documents, 1)
	assert.Equal(t, []byte("%PDF"), got.Documents[0].Data)

	_, err = s.Submit(ctx, samplePayload())
	assert.ErrorIs(t, err, repo.ErrAccountExists)
}
