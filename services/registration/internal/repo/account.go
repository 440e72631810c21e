package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Skotchmaster/trustbasket/services/registration/internal/models"
)

var ErrAccountExists = errors.New("account with this phone or email already exists")

type GormRepo struct {
	DB *gorm.DB
}

// CreateAccount stores the account with its documents unless the phone or a
// non-empty email is already taken.
func (r *GormRepo) CreateAccount(ctx context.Context, a *models.Account) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Account{}).Where("phone = ?", a.Phone)
		if a.Email != nil {
			q = q.Or("email = ?", *a.Email)
		}

		var n int64
		if err := q.Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrAccountExists
		}
		return tx.Create(a).Error
	})
}

func (r *GormRepo) GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error) {
	var a models.Account
	if err := r.DB.WithContext(ctx).Preload("Documents").Where("phone = ?", phone).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}
