package models

import (
	"database/sql/driver"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusRejected = "rejected"
)

type Supplier struct {
	ID        uuid.UUID `gorm:"primaryKey"        json:"id"`
	Name      string    `gorm:"not null;index"    json:"name"`
	Phone     string    `                         json:"phone"`
	Location  string    `                         json:"location"`
	Rating    float64   `gorm:"default:0"         json:"rating"`
	CreatedAt time.Time `                         json:"created_at"`
}

func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type CatalogItem struct {
	ID                uint      `gorm:"primaryKey"                    json:"id"`
	Name              string    `gorm:"not null;index"                json:"name"`
	Price             float64   `gorm:"not null;check:price>0"        json:"price"`
	Unit              string    `gorm:"not null"                      json:"unit"`
	AvailableQuantity int       `gorm:"not null;default:0"            json:"available_quantity"`
	Category          string    `gorm:"index"                         json:"category"`
	Tags              Tags      `                                     json:"tags"`
	SupplierID        uuid.UUID `gorm:"index;not null"                json:"supplier_id"`
	Supplier          Supplier  `gorm:"foreignKey:SupplierID"         json:"supplier"`
	CreatedAt         time.Time `                                     json:"created_at"`
}

// Tags is a postgres text[] column. Other dialects get the array literal in a text column.
type Tags pq.StringArray

func (t Tags) Value() (driver.Value, error) {
	return pq.StringArray(t).Value()
}

func (t *Tags) Scan(src any) error {
	return (*pq.StringArray)(t).Scan(src)
}

func (Tags) GormDataType() string {
	return "text"
}

func (Tags) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

type SupplierOrder struct {
	ID           uuid.UUID           `gorm:"primaryKey"                          json:"id"`
	CheckoutID   uuid.UUID           `gorm:"index;not null"                      json:"checkout_id"`
	VendorID     string              `gorm:"index;not null"                      json:"vendor_id"`
	SupplierID   uuid.UUID           `gorm:"index;not null"                      json:"supplier_id"`
	SupplierName string              `gorm:"not null"                            json:"supplier_name"`
	Notes        string              `                                           json:"notes"`
	Total        float64             `gorm:"not null"                            json:"total"`
	Status       string              `gorm:"index;not null;default:pending"      json:"status"`
	RejectReason string              `                                           json:"reject_reason,omitempty"`
	Items        []SupplierOrderItem `gorm:"foreignKey:OrderID"                  json:"items"`
	CreatedAt    time.Time           `                                           json:"created_at"`
	UpdatedAt    time.Time           `                                           json:"updated_at"`
}

func (o *SupplierOrder) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}

type SupplierOrderItem struct {
	ID        uint      `gorm:"primaryKey"                  json:"id"`
	OrderID   uuid.UUID `gorm:"index;not null"              json:"order_id"`
	ItemID    uint      `gorm:"not null"                    json:"item_id"`
	Name      string    `gorm:"not null"                    json:"name"`
	Quantity  int       `gorm:"not null;check:quantity>0"   json:"quantity"`
	Unit      string    `                                   json:"unit"`
	Price     float64   `gorm:"not null"                    json:"price"`
	LineTotal float64   `gorm:"not null"                    json:"line_total"`
}

func (SupplierOrder) TableName() string {
	return "supplier_orders"
}

func (SupplierOrderItem) TableName() string {
	return "supplier_order_items"
}

func All() []any {
	return []any{&Supplier{}, &CatalogItem{}, &SupplierOrder{}, &SupplierOrderItem{}}
}
