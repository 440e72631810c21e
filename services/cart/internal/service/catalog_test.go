package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/testenv"
)

type stubSearcher struct {
	err     error
	items   []domain.CatalogItem
	indexed []domain.CatalogItem
}

func (s *stubSearcher) Search(context.Context, domain.Filter, int, int) (int64, []domain.CatalogItem, error) {
	if s.err != nil {
		return 0, nil, s.err
	}
	return int64(len(s.items)), s.items, nil
}

func (s *stubSearcher) IndexItem(_ context.Context, item domain.CatalogItem) error {
	s.indexed = append(s.indexed, item)
	return nil
}

func TestCatalogService_ListFromDatabase(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := &CatalogService{Repo: f.repo}

	total, items, err := svc.List(context.Background(), domain.Filter{Price: domain.PriceHigh}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Saffron", items[0].Name)
	assert.Equal(t, testenv.SpiceHubID, items[0].Supplier.ID)
}

func TestCatalogService_ListPrefersSearch(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	search := &stubSearcher{items: []domain.CatalogItem{{ID: 42, Name: "from index"}}}
	svc := &CatalogService{Repo: f.repo, Search: search}

	_, items, err := svc.List(context.Background(), domain.Filter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "from index", items[0].Name)

	search.err = errors.New("cluster red")
	total, _, err := svc.List(context.Background(), domain.Filter{}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
}

func TestCatalogService_Get(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := &CatalogService{Repo: f.repo}

	item, err := svc.Get(context.Background(), f.items[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", item.Name)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalogService_CreateItem(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	search := &stubSearcher{}
	svc := &CatalogService{Repo: f.repo, Search: search}
	ctx := context.Background()

	bad := []models.CatalogItem{
		{Price: 10, Unit: "kg", SupplierID: testenv.GreenFarmID},
		{Name: "Garlic", Price: 0, Unit: "kg", SupplierID: testenv.GreenFarmID},
		{Name: "Garlic", Price: 10, SupplierID: testenv.GreenFarmID},
		{Name: "Garlic", Price: 10, Unit: "kg", AvailableQuantity: -1, SupplierID: testenv.GreenFarmID},
		{Name: "Garlic", Price: 10, Unit: "kg", SupplierID: uuid.New()},
	}
	for i := range bad {
		assert.ErrorIs(t, svc.CreateItem(ctx, &bad[i]), ErrValidation, "case %d", i)
	}

	item := &models.CatalogItem{Name: "Garlic", Price: 80, Unit: "kg", Category: " Vegetables ", SupplierID: testenv.GreenFarmID}
	require.NoError(t, svc.CreateItem(ctx, item))
	assert.Equal(t, "vegetables", item.Category)
	require.Len(t, search.indexed, 1)
	assert.Equal(t, item.ID, search.indexed[0].ID)
	assert.Equal(t, "Green Farm", search.indexed[0].Supplier.Name)
}

func TestCatalogService_CreateSupplier(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	svc := &CatalogService{Repo: f.repo}

	assert.ErrorIs(t, svc.CreateSupplier(context.Background(), &models.Supplier{}), ErrValidation)
	assert.ErrorIs(t, svc.CreateSupplier(context.Background(), &models.Supplier{Name: "X", Rating: 6}), ErrValidation)

	s := &models.Supplier{Name: "Dairy Co", Rating: 4}
	require.NoError(t, svc.CreateSupplier(context.Background(), s))
	assert.NotEqual(t, uuid.Nil, s.ID)
}
