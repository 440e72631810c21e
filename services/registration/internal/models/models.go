package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID           uuid.UUID         `gorm:"primaryKey"              json:"id"`
	Role         string            `gorm:"not null;index"          json:"role"`
	Name         string            `gorm:"not null"                json:"name"`
	Phone        string            `gorm:"uniqueIndex;not null"    json:"phone"`
	Email        *string           `gorm:"uniqueIndex"             json:"email,omitempty"`
	PasswordHash string            `gorm:"not null"                json:"-"`
	Address      string            `gorm:"not null"                json:"address"`
	City         string            `                               json:"city"`
	Pincode      string            `                               json:"pincode"`
	StallName    string            `                               json:"stall_name,omitempty"`
	FoodType     string            `                               json:"food_type,omitempty"`
	SupplierType string            `                               json:"supplier_type,omitempty"`
	BusinessName string            `                               json:"business_name,omitempty"`
	TaxID        string            `                               json:"tax_id,omitempty"`
	Documents    []AccountDocument `gorm:"foreignKey:AccountID"    json:"documents,omitempty"`
	CreatedAt    time.Time         `                               json:"created_at"`
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

type AccountDocument struct {
	ID          uint      `gorm:"primaryKey"              json:"id"`
	AccountID   uuid.UUID `gorm:"index;not null"          json:"account_id"`
	Field       string    `gorm:"not null"                json:"field"`
	Filename    string    `gorm:"not null"                json:"filename"`
	ContentType string    `gorm:"not null"                json:"content_type"`
	Size        int64     `gorm:"not null"                json:"size"`
	Data        []byte    `gorm:"not null"                json:"-"`
}

func All() []any {
	return []any{&Account{}, &AccountDocument{}}
}
