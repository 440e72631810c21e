package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
)

// HandleUserEvent turns a registered supplier account into a catalog supplier
// with the same id, so the account's access token owns the supplier's items
// and orders. Redelivered events are ignored.
func (s *CatalogService) HandleUserEvent(ctx context.Context, event map[string]any) error {
	if event["type"] != "user_registered" || event["role"] != "supplier" {
		return nil
	}
	l := logging.FromContext(ctx).With("handler", "catalog.user_registered")

	id, err := uuid.Parse(stringOf(event["account_id"]))
	if err != nil {
		l.Warn("supplier_sync_skipped", "reason", "account_id is not a uuid", "error", err)
		return nil
	}

	name := stringOf(event["business_name"])
	if name == "" {
		name = stringOf(event["name"])
	}
	sup := &models.Supplier{
		ID:       id,
		Name:     name,
		Phone:    stringOf(event["phone"]),
		Location: stringOf(event["city"]),
	}

	err = s.CreateSupplier(ctx, sup)
	switch {
	case errors.Is(err, ErrConflict):
		return nil
	case errors.Is(err, ErrValidation):
		l.Warn("supplier_sync_skipped", "supplier_id", id, "reason", err.Error())
		return nil
	case err != nil:
		return err
	}

	l.Info("supplier_sync_success", "supplier_id", id)
	return nil
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}
