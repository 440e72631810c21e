package repo

import (
	"context"
	"strings"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error) {
	var s models.Supplier
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Supplier").Create(item).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", item.SupplierID).First(&item.Supplier).Error
	})
}

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.CatalogItem, error) {
	var item models.CatalogItem
	if err := r.DB.WithContext(ctx).Preload("Supplier").Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ListItems applies the marketplace filter in SQL and returns one page ordered by id.
func (r *GormRepo) ListItems(ctx context.Context, f domain.Filter, offset, limit int) (int64, []models.CatalogItem, error) {
	filtered := func() *gorm.DB {
		q := r.DB.WithContext(ctx).
			Model(&models.CatalogItem{}).
			Joins("JOIN suppliers ON suppliers.id = catalog_items.supplier_id")

		if s := strings.ToLower(strings.TrimSpace(f.Query)); s != "" {
			like := "%" + s + "%"
			q = q.Where("(LOWER(catalog_items.name) LIKE ? OR LOWER(suppliers.name) LIKE ?)", like, like)
		}
		if f.Category != "" && f.Category != domain.CategoryAll {
			q = q.Where("LOWER(catalog_items.category) = ?", strings.ToLower(f.Category))
		}
		if lo, hi := f.Price.Bounds(); lo > 0 || hi > 0 {
			if lo > 0 {
				q = q.Where("catalog_items.price > ?", lo)
			}
			if hi > 0 {
				q = q.Where("catalog_items.price <= ?", hi)
			}
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return 0, nil, err
	}

	items := make([]models.CatalogItem, 0, limit)
	if err := filtered().
		Preload("Supplier").
		Order("catalog_items.id ASC").
		Offset(offset).
		Limit(limit).
		Find(&items).Error; err != nil {
		return 0, nil, err
	}
	return total, items, nil
}
