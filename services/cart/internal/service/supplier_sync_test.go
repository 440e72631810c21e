package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/testenv"
)

func TestCatalogService_HandleUserEvent(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := &CatalogService{Repo: f.repo}
	ctx := context.Background()
	accountID := uuid.New()

	event := map[string]any{
		"type":          "user_registered",
		"account_id":    accountID.String(),
		"role":          "supplier",
		"name":          "Ravi Kumar",
		"business_name": "Ravi Farms",
		"phone":         "9876543210",
		"city":          "Nashik",
	}
	require.NoError(t, svc.HandleUserEvent(ctx, event))
	require.NoError(t, svc.HandleUserEvent(ctx, event))

	sup, err := f.repo.GetSupplier(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Farms", sup.Name)
	assert.Equal(t, "Nashik", sup.Location)

	vendor := uuid.New()
	require.NoError(t, svc.HandleUserEvent(ctx, map[string]any{"type": "user_registered", "account_id": vendor.String(), "role": "vendor", "name": "Asha"}))
	_, err = f.repo.GetSupplier(ctx, vendor)
	assert.Error(t, err)

	require.NoError(t, svc.HandleUserEvent(ctx, map[string]any{"type": "user_registered", "account_id": "remote-42", "role": "supplier", "name": "X"}))
}

func TestCatalogService_CreateSupplierWithAccountID(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := &CatalogService{Repo: f.repo}
	ctx := context.Background()

	err := svc.CreateSupplier(ctx, &models.Supplier{ID: testenv.GreenFarmID, Name: "Copy"})
	assert.ErrorIs(t, err, ErrConflict)

	id := uuid.New()
	require.NoError(t, svc.CreateSupplier(ctx, &models.Supplier{ID: id, Name: "Onion Co"}))
	sup, err := f.repo.GetSupplier(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Onion Co", sup.Name)
}
