package service

import (
	"errors"

	"github.com/Skotchmaster/trustbasket/pkg/tokens"
)

var (
	ErrValidation = errors.New("validation") // 400
	ErrNotFound   = errors.New("not found")  // 404
	ErrEmptyCart  = errors.New("cart is empty")
	ErrForbidden  = errors.New("forbidden") // 403
	ErrConflict   = errors.New("conflict")  // 409
)

// Actor is the authenticated caller as read from the access token.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == tokens.RoleAdmin
}
