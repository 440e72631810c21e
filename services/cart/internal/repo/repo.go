package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotPending = errors.New("order is not pending")

type GormRepo struct {
	DB *gorm.DB
}
