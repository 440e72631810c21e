package repo

import (
	"context"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateOrders stores every supplier order of one checkout atomically.
func (r *GormRepo) CreateOrders(ctx context.Context, orders []models.SupplierOrder) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			if err := tx.Create(&orders[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormRepo) GetOrder(ctx context.Context, id uuid.UUID) (*models.SupplierOrder, error) {
	var o models.SupplierOrder
	if err := r.DB.WithContext(ctx).Preload("Items").Where("id = ?", id).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *GormRepo) ListVendorOrders(ctx context.Context, vendorID string, offset, limit int) (int64, []models.SupplierOrder, error) {
	return r.listOrders(ctx, func(q *gorm.DB) *gorm.DB {
		return q.Where("vendor_id = ?", vendorID)
	}, offset, limit)
}

func (r *GormRepo) ListSupplierOrders(ctx context.Context, supplierID uuid.UUID, status string, offset, limit int) (int64, []models.SupplierOrder, error) {
	return r.listOrders(ctx, func(q *gorm.DB) *gorm.DB {
		q = q.Where("supplier_id = ?", supplierID)
		if status != "" {
			q = q.Where("status = ?", status)
		}
		return q
	}, offset, limit)
}

func (r *GormRepo) listOrders(ctx context.Context, scope func(*gorm.DB) *gorm.DB, offset, limit int) (int64, []models.SupplierOrder, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.SupplierOrder{}).Scopes(scope).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	orders := make([]models.SupplierOrder, 0, limit)
	if err := r.DB.WithContext(ctx).
		Model(&models.SupplierOrder{}).
		Scopes(scope).
		Preload("Items").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// Transition moves a pending order to status. Orders in any other state yield ErrNotPending.
func (r *GormRepo) Transition(ctx context.Context, id uuid.UUID, status, reason string) (*models.SupplierOrder, error) {
	var order models.SupplierOrder
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", id).First(&order).Error; err != nil {
			return err
		}

		res := tx.Model(&models.SupplierOrder{}).
			Where("id = ? AND status = ?", id, models.OrderStatusPending).
			Updates(map[string]any{"status": status, "reject_reason": reason})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		return tx.Preload("Items").Where("id = ?", id).First(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}
