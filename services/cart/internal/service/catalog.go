package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
)

type CatalogRepo interface {
	ItemSource
	ListItems(ctx context.Context, f domain.Filter, offset, limit int) (int64, []models.CatalogItem, error)
	CreateItem(ctx context.Context, item *models.CatalogItem) error
	CreateSupplier(ctx context.Context, s *models.Supplier) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*models.Supplier, error)
}

type Searcher interface {
	Search(ctx context.Context, f domain.Filter, offset, limit int) (int64, []domain.CatalogItem, error)
	IndexItem(ctx context.Context, item domain.CatalogItem) error
}

type CatalogService struct {
	Repo CatalogRepo
	// Search is optional. Without it every query goes to the database.
	Search Searcher
}

func (s *CatalogService) List(ctx context.Context, f domain.Filter, offset, limit int) (int64, []domain.CatalogItem, error) {
	if s.Search != nil {
		total, items, err := s.Search.Search(ctx, f, offset, limit)
		if err == nil {
			return total, items, nil
		}
		logging.FromContext(ctx).Warn("catalog_search_fallback", "error", err)
	}

	total, rows, err := s.Repo.ListItems(ctx, f, offset, limit)
	if err != nil {
		return 0, nil, err
	}
	items := make([]domain.CatalogItem, len(rows))
	for i, r := range rows {
		items[i] = r.ToDomain()
	}
	return total, items, nil
}

func (s *CatalogService) Get(ctx context.Context, id uint) (*models.CatalogItem, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("catalog item %d: %w", id, ErrNotFound)
	}
	return item, err
}

func (s *CatalogService) CreateSupplier(ctx context.Context, sup *models.Supplier) error {
	if strings.TrimSpace(sup.Name) == "" {
		return fmt.Errorf("supplier name required: %w", ErrValidation)
	}
	if sup.Rating < 0 || sup.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5: %w", ErrValidation)
	}
	if sup.ID != uuid.Nil {
		_, err := s.Repo.GetSupplier(ctx, sup.ID)
		if err == nil {
			return fmt.Errorf("supplier %s: %w", sup.ID, ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return s.Repo.CreateSupplier(ctx, sup)
}

func (s *CatalogService) CreateItem(ctx context.Context, item *models.CatalogItem) error {
	switch {
	case strings.TrimSpace(item.Name) == "":
		return fmt.Errorf("name required: %w", ErrValidation)
	case item.Price <= 0:
		return fmt.Errorf("price must be positive: %w", ErrValidation)
	case strings.TrimSpace(item.Unit) == "":
		return fmt.Errorf("unit required: %w", ErrValidation)
	case item.AvailableQuantity < 0:
		return fmt.Errorf("available quantity cannot be negative: %w", ErrValidation)
	}

	if _, err := s.Repo.GetSupplier(ctx, item.SupplierID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("unknown supplier %s: %w", item.SupplierID, ErrValidation)
		}
		return err
	}

	item.Category = strings.ToLower(strings.TrimSpace(item.Category))
	if err := s.Repo.CreateItem(ctx, item); err != nil {
		return err
	}

	if s.Search != nil {
		if err := s.Search.IndexItem(ctx, item.ToDomain()); err != nil {
			logging.FromContext(ctx).Error("catalog_index_error", "item_id", item.ID, "error", err)
		}
	}
	return nil
}
