package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/trustbasket/pkg/logging"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/service"
	"github.com/Skotchmaster/trustbasket/services/cart/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	cart, err := h.Svc.GetCart(ctx, actor.ID)
	if err != nil {
		return fail(l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) AddItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_item")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req transport.AddItemRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_item_error", "invalid body", err)
	}
	if req.ItemID == 0 {
		return badRequest(l, "add_item_error", "item_id required", nil)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	cart, err := h.Svc.AddItem(ctx, actor.ID, req.ItemID, quantity)
	if err != nil {
		return fail(l, "add_item_error", err)
	}

	l.Info("add_item_success", "item_id", req.ItemID, "quantity", quantity)
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) UpdateQuantity(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update_quantity")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	itemID, err := itemParam(c)
	if err != nil {
		return badRequest(l, "update_quantity_error", "id is not a number", err)
	}

	var req transport.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_quantity_error", "invalid body", err)
	}
	if req.Quantity == nil {
		return badRequest(l, "update_quantity_error", "quantity required", nil)
	}

	cart, err := h.Svc.UpdateQuantity(ctx, actor.ID, itemID, *req.Quantity)
	if err != nil {
		return fail(l, "update_quantity_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) RemoveItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_item")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}
	itemID, err := itemParam(c)
	if err != nil {
		return badRequest(l, "remove_item_error", "id is not a number", err)
	}

	cart, err := h.Svc.RemoveItem(ctx, actor.ID, itemID)
	if err != nil {
		return fail(l, "remove_item_error", err)
	}
	return c.JSON(http.StatusOK, transport.NewCartResponse(cart))
}

func (h *CartHTTP) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear_cart")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	if err := h.Svc.Clear(ctx, actor.ID); err != nil {
		return fail(l, "clear_cart_error", err)
	}

	l.Info("clear_cart_success")
	return c.NoContent(http.StatusNoContent)
}

func (h *CartHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.checkout")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	groups, err := h.Svc.Preview(ctx, actor.ID)
	if err != nil {
		return fail(l, "checkout_error", err)
	}

	resp := transport.CheckoutPreviewResponse{Groups: groups}
	for _, g := range groups {
		resp.Total += g.Total
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CartHTTP) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.place_order")

	actor, err := actorOf(c)
	if err != nil {
		return err
	}

	var req transport.PlaceOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "place_order_error", "invalid body", err)
	}

	checkout, err := h.Svc.PlaceOrder(ctx, actor.ID, req.Notes)
	if err != nil {
		return fail(l, "place_order_error", err)
	}

	l.Info("place_order_success", "checkout_id", checkout.ID, "orders", len(checkout.Orders))
	return c.JSON(http.StatusCreated, checkout)
}

func itemParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
