package transport

import (
	"github.com/google/uuid"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/util"
)

type AddItemRequest struct {
	ItemID   uint `json:"item_id"`
	Quantity *int `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type PlaceOrderRequest struct {
	Notes string `json:"notes"`
}

type RejectOrderRequest struct {
	Reason string `json:"reason"`
}

type CreateSupplierRequest struct {
	// AccountID links the supplier to a registered account. Zero means a new id.
	AccountID uuid.UUID `json:"account_id"`
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Location string  `json:"location"`
	Rating   float64 `json:"rating"`
}

type CreateItemRequest struct {
	Name              string    `json:"name"`
	Price             float64   `json:"price"`
	Unit              string    `json:"unit"`
	AvailableQuantity int       `json:"available_quantity"`
	Category          string    `json:"category"`
	Tags              []string  `json:"tags"`
	SupplierID        uuid.UUID `json:"supplier_id"`
}

func (r CreateItemRequest) Model() models.CatalogItem {
	return models.CatalogItem{
		Name:              r.Name,
		Price:             r.Price,
		Unit:              r.Unit,
		AvailableQuantity: r.AvailableQuantity,
		Category:          r.Category,
		Tags:              models.Tags(r.Tags),
		SupplierID:        r.SupplierID,
	}
}

type CartLineResponse struct {
	ItemID    uint            `json:"item_id"`
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Price     float64         `json:"price"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
	Supplier  domain.Supplier `json:"supplier"`
}

type CartResponse struct {
	Lines      []CartLineResponse `json:"lines"`
	TotalItems int                `json:"total_items"`
	TotalValue float64            `json:"total_value"`
}

func NewCartResponse(c *domain.Cart) CartResponse {
	resp := CartResponse{
		Lines:      make([]CartLineResponse, 0, len(c.Lines)),
		TotalItems: c.TotalItemCount(),
		TotalValue: c.TotalValue(),
	}
	for _, l := range c.Lines {
		resp.Lines = append(resp.Lines, CartLineResponse{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Unit:      l.Item.Unit,
			Price:     l.Item.Price,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
			Supplier:  l.Item.Supplier,
		})
	}
	return resp
}

type CheckoutPreviewResponse struct {
	Groups []domain.SupplierOrderGroup `json:"groups"`
	Total  float64                     `json:"total"`
}

type ItemsPage struct {
	Data []domain.CatalogItem `json:"data"`
	Meta util.Meta            `json:"meta"`
}

type OrdersPage struct {
	Data []models.SupplierOrder `json:"data"`
	Meta util.Meta              `json:"meta"`
}
