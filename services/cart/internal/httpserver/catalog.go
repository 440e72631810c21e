package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/domain"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/models"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/transport"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/util"
)

type CatalogHTTP struct {
	Svc *service.CatalogService
}

func (h *CatalogHTTP) ListItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.list_items")

	band, ok := domain.ParsePriceBand(c.QueryParam("price"))
	if !ok {
		return badRequest(l, "list_items_error", "price must be one of all, low, medium, high", nil)
	}
	f := domain.Filter{
		Query:    c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Price:    band,
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	size := util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	total, items, err := h.Svc.List(ctx, f, offset, limit)
	if err != nil {
		return fail(l, "list_items_error", err)
	}

	return c.JSON(http.StatusOK, transport.ItemsPage{
		Data: items,
		Meta: util.NewMeta(page, offset, limit, total),
	})
}

func (h *CatalogHTTP) GetItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_item")

	id, err := itemParam(c)
	if err != nil {
		return badRequest(l, "get_item_error", "id is not a number", err)
	}

	item, err := h.Svc.Get(ctx, id)
	if err != nil {
		return fail(l, "get_item_error", err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_item")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req transport.CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_item_error", "invalid body", err)
	}
	if !actor.IsAdmin() && actor.ID != req.SupplierID.String() {
		return fail(l, "create_item_error", service.ErrForbidden)
	}

	item := req.Model()
	if err := h.Svc.CreateItem(ctx, &item); err != nil {
		return fail(l, "create_item_error", err)
	}

	l.Info("create_item_success", "item_id", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) CreateSupplier(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_supplier")

	var req transport.CreateSupplierRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "create_supplier_error", "invalid body", err)
	}

	sup := models.Supplier{
		ID:       req.AccountID,
		Name:     req.Name,
		Phone:    req.Phone,
		Location: req.Location,
		Rating:   req.Rating,
	}
	if err := h.Svc.CreateSupplier(ctx, &sup); err != nil {
		return fail(l, "create_supplier_error", err)
	}

	l.Info("create_supplier_success", "supplier_id", sup.ID)
	return c.JSON(http.StatusCreated, sup)
}
