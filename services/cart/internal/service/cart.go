package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
)

type ClearPolicy string

const (
	// ClearBeforeAck empties the cart before the orders are stored.
	ClearBeforeAck ClearPolicy = "before_ack"
	// ClearAfterAck keeps the cart until the orders are committed.
	ClearAfterAck ClearPolicy = "after_ack"
)

type CartStore interface {
	Get(ctx context.Context, id string) (*domain.Cart, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, fn func(c *domain.Cart) (bool, error)) (*domain.Cart, error)
}

type ItemSource interface {
	GetItem(ctx context.Context, id uint) (*models.CatalogItem, error)
}

type OrderWriter interface {
	CreateOrders(ctx context.Context, orders []models.SupplierOrder) error
}

type CartService struct {
	Carts    CartStore
	Items    ItemSource
	Orders   OrderWriter
	Producer events.Publisher
	Policy   ClearPolicy
}

type Checkout struct {
	ID     uuid.UUID              `json:"checkout_id"`
	Orders []models.SupplierOrder `json:"orders"`
	Total  float64                `json:"total"`
}

func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.Carts.Get(ctx, userID)
	if errors.Is(err, session.ErrNotFound) {
		return &domain.Cart{}, nil
	}
	if err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, itemID uint, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be at least 1: %w", ErrValidation)
	}

	item, err := s.Items.GetItem(ctx, itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog item %d: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return s.Carts.Update(ctx, userID, func(c *domain.Cart) (bool, error) {
		if err := c.Add(item.ToDomain(), quantity); err != nil {
			return false, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		return true, nil
	})
}

// UpdateQuantity never fails for items that are not in the cart.
func (s *CartService) UpdateQuantity(ctx context.Context, userID string, itemID uint, quantity int) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) { c.UpdateQuantity(itemID, quantity) })
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, itemID uint) (*domain.Cart, error) {
	return s.mutate(ctx, userID, func(c *domain.Cart) { c.Remove(itemID) })
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	return s.Carts.Delete(ctx, userID)
}

func (s *CartService) Preview(ctx context.Context, userID string) ([]domain.SupplierOrderGroup, error) {
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	return cart.GroupBySupplier(), nil
}

// PlaceOrder splits the cart into one pending order per supplier. When the cart
// is cleared relative to the commit depends on Policy.
func (s *CartService) PlaceOrder(ctx context.Context, userID, notes string) (*Checkout, error) {
	l := logging.FromContext(ctx)

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	var placed []domain.SupplierOrder
	if s.Policy == ClearAfterAck {
		placed = cart.Orders(notes)
	} else {
		placed = cart.PlaceOrder(notes)
		if err := s.Carts.Delete(ctx, userID); err != nil {
			return nil, fmt.Errorf("clear cart: %w", err)
		}
	}

	checkout := &Checkout{ID: uuid.New()}
	for _, o := range placed {
		checkout.Orders = append(checkout.Orders, models.NewSupplierOrder(checkout.ID, userID, o))
		checkout.Total += o.Total
	}

	if err := s.Orders.CreateOrders(ctx, checkout.Orders); err != nil {
		return nil, fmt.Errorf("store orders: %w", err)
	}

	if s.Policy == ClearAfterAck {
		if err := s.Carts.Delete(ctx, userID); err != nil {
			l.Error("clear_cart_after_ack_error", "checkout_id", checkout.ID, "error", err)
		}
	}

	for _, o := range checkout.Orders {
		events.Publish(ctx, s.Producer, l, events.TopicOrders, o.ID.String(), map[string]any{
			"type":        "order_placed",
			"order_id":    o.ID,
			"checkout_id": checkout.ID,
			"vendor_id":   userID,
			"supplier_id": o.SupplierID,
			"total":       o.Total,
			"items":       len(o.Items),
		})
	}
	return checkout, nil
}

// mutate drops the key once the cart is empty.
func (s *CartService) mutate(ctx context.Context, userID string, fn func(*domain.Cart)) (*domain.Cart, error) {
	return s.Carts.Update(ctx, userID, func(c *domain.Cart) (bool, error) {
		fn(c)
		return !c.IsEmpty(), nil
	})
}
