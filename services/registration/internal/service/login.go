package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/trustbasket/pkg/hash"
	"github.com/Skotchmaster/trustbasket/pkg/tokens"
	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
)

var ErrInvalidCredentials = errors.New("invalid phone or password") // 401

type AccountFinder interface {
	GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error)
}

// LoginService issues access tokens for accounts stored by the directory submitter.
type LoginService struct {
	Accounts  AccountFinder
	JWTSecret []byte
	AccessTTL time.Duration
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Account     *models.Account
}

func (s *LoginService) Login(ctx context.Context, phone, password string) (*LoginResult, error) {
	a, err := s.Accounts.GetAccountByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !hash.CheckPassword(a.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	exp := time.Now().Add(ttl)
	tok, err := tokens.NewAccessToken(s.JWTSecret, a.ID.String(), a.Role, exp)
	if err != nil {
		return nil, err
	}
	return &LoginResult{AccessToken: tok, ExpiresAt: exp, Account: a}, nil
}
