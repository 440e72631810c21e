package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Skotchmaster/trustbasket/pkg/events"
	"github.com/Skotchmaster/trustbasket/pkg/session"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/repo"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/testenv"
)

type fixture struct {
	repo   *repo.GormRepo
	carts  *session.Store[domain.Cart]
	events *events.Recorder
	items  []models.CatalogItem
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testenv.NewDB(t)
	items := testenv.Seed(t, db)
	return &fixture{
		repo:   &repo.GormRepo{DB: db},
		carts:  session.NewStore[domain.Cart](testenv.NewRedis(t), "cart", time.Hour),
		events: &events.Recorder{},
		items:  items,
	}
}

func (f *fixture) cartService(policy ClearPolicy) *CartService {
	return &CartService{
		Carts:    f.carts,
		Items:    f.repo,
		Orders:   f.repo,
		Producer: f.events,
		Policy:   policy,
	}
}

var errStoreDown = errors.New("store down")

type failingOrders struct{}

func (failingOrders) CreateOrders(context.Context, []models.SupplierOrder) error {
	return errStoreDown
}
