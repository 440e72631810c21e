package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/repo"
)

type OrderRepo interface {
	GetOrder(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error)
	ListVendorOrders(ctx context.Context, vendorID string, offset, limit int) (int64, []models.SupplierOrder, error)
	ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, status string, offset, limit int) (int64, []models.SupplierOrder, error)
	Transition(ctx context.Context, id uuid.UUID, status, reason string) (*models.SupplierOrder, error)
}

type OrderService struct {
	Repo     OrderRepo
	Producer events.Publisher
}

func (s *OrderService) VendorOrders(ctx context.Context, vendorID string, offset, limit int) (int64, []models.SupplierOrder, error) {
	return s.Repo.ListVendorOrders(ctx, vendorID, offset, limit)
}

func (s *OrderService) SupplierOrders(ctx context.Context, actor Actor, supplierID uuid.UUID, status string, offset, limit int) (int64, []models.SupplierOrder, error) {
	if !actor.IsAdmin() && actor.ID != supplierID.String() {
		return 0, nil, ErrForbidden
	}
	switch status {
	case "", models.OrderStatusPending, models.OrderStatusAccepted, models.OrderStatusRejected:
	default:
		return 0, nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}
	return s.Repo.ListSupplierOrders(ctx, supplierID, status, offset, limit)
}

func (s *OrderService) Accept(ctx context.Context, actor Actor, id uuid.UUID) (*models.SupplierOrder, error) {
	return s.decide(ctx, actor, id, models.OrderStatusAccepted, "")
}

func (s *OrderService) Reject(ctx context.Context, actor Actor, id uuid.UUID, reason string) (*models.SupplierOrder, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("rejection reason required: %w", ErrValidation)
	}
	return s.decide(ctx, actor, id, models.OrderStatusRejected, reason)
}

func (s *OrderService) decide(ctx context.Context, actor Actor, id uuid.UUID, status, reason string) (*models.SupplierOrder, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && actor.ID != order.SupplierID.String() {
		return nil, ErrForbidden
	}

	order, err = s.Repo.Transition(ctx, id, status, reason)
	if errors.Is(err, repo.ErrNotPending) {
		return nil, fmt.Errorf("order %s: %w: %w", id, ErrConflict, err)
	}
	if err != nil {
		return nil, err
	}

	event := map[string]any{
		"type":        "order_" + status,
		"order_id":    order.ID,
		"vendor_id":   order.VendorID,
		"supplier_id": order.SupplierID,
	}
	if reason != "" {
		event["reason"] = reason
	}
	events.Publish(ctx, s.Producer, logging.FromContext(ctx), events.TopicOrders, order.ID.String(), event)
	return order, nil
}
