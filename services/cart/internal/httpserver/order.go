package httpserver

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/transport"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/util"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) VendorOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.vendor_orders")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize))

	total, orders, err := h.Svc.VendorOrders(ctx, actor.ID, offset, limit)
	if err != nil {
		return fail(l, "vendor_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.OrdersPage{Data: orders, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *OrderHTTP) SupplierOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.supplier_orders")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "supplier_orders_error", "id is not a uuid", err)
	}

	page := util.ParseIntDefault(c.QueryParam("page"), 1)
	offset, limit := util.Calculate(page, util.ParseIntDefault(c.QueryParam("size"), util.DefaultPageSize))

	total, orders, err := h.Svc.SupplierOrders(ctx, actor, supplierID, c.QueryParam("status"), offset, limit)
	if err != nil {
		return fail(l, "supplier_orders_error", err)
	}
	return c.JSON(http.StatusOK, transport.OrdersPage{Data: orders, Meta: util.NewMeta(page, offset, limit, total)})
}

func (h *OrderHTTP) AcceptOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.accept_order")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "accept_order_error", "id is not a uuid", err)
	}

	order, err := h.Svc.Accept(ctx, actor, id)
	if err != nil {
		return fail(l, "accept_order_error", err)
	}

	l.Info("accept_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) RejectOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.reject_order")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest(l, "reject_order_error", "id is not a uuid", err)
	}

	var req transport.RejectOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "reject_order_error", "invalid body", err)
	}

	order, err := h.Svc.Reject(ctx, actor, id, req.Reason)
	if err != nil {
		return fail(l, "reject_order_error", err)
	}

	l.Info("reject_order_success", "order_id", order.ID)
	return c.JSON(http.StatusOK, order)
}
