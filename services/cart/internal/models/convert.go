package models

import (
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/google/uuid"
)

func (s Supplier) ToDomain() domain.Supplier {
	return domain.Supplier{
		ID:       s.ID,
		Name:     s.Name,
		Phone:    s.Phone,
		Location: s.Location,
		Rating:   s.Rating,
	}
}

func (i CatalogItem) ToDomain() domain.CatalogItem {
	return domain.CatalogItem{
		ID:                i.ID,
		Name:              i.Name,
		Price:             i.Price,
		Unit:              i.Unit,
		AvailableQuantity: i.AvailableQuantity,
		Category:          i.Category,
		Supplier:          i.Supplier.ToDomain(),
	}
}

// NewSupplierOrder turns a placed order group into a pending row.
func NewSupplierOrder(checkoutID uuid.UUID, vendorID string, o domain.SupplierOrder) SupplierOrder {
	items := make([]SupplierOrderItem, 0, len(o.Items))
	for _, l := range o.Items {
		items = append(items, SupplierOrderItem{
			ItemID:    l.ItemID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			Unit:      l.Unit,
			Price:     l.Price,
			LineTotal: l.LineTotal,
		})
	}
	return SupplierOrder{
		CheckoutID:   checkoutID,
		VendorID:     vendorID,
		SupplierID:   o.Supplier.ID,
		SupplierName: o.Supplier.Name,
		Notes:        o.Notes,
		Total:        o.Total,
		Status:       OrderStatusPending,
		Items:        items,
	}
}
