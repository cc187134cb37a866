package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pedidos_api/internal/logging"
	"github.com/Skotchmaster/pedidos_api/internal/service"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	orders, err := h.Svc.ListOrders(ctx)
	if err != nil {
		return failure(l, "list_orders_error", err)
	}

	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "get_order_error", err)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return failure(l, "get_order_error", err)
	}

	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create_order")

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_order_error", err)
	}

	order, err := h.Svc.CreateOrder(ctx, req)
	if err != nil {
		return failure(l, "create_order_error", err)
	}

	l.Info("create_order_success", "orderID", order.ID)
	location(c, "pedidos", order.ID)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) ReplaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.replace_order")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "replace_order_error", err)
	}

	var req transport.OrderRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "replace_order_error", err)
	}

	if err := h.Svc.ReplaceOrder(ctx, id, req); err != nil {
		return failure(l, "replace_order_error", err)
	}

	l.Info("replace_order_success", "orderID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) DeleteOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.delete_order")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "delete_order_error", err)
	}

	if err := h.Svc.DeleteOrder(ctx, id); err != nil {
		return failure(l, "delete_order_error", err)
	}

	l.Info("delete_order_success", "orderID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *OrderHTTP) AddLineItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.add_line_item")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "add_line_item_error", err)
	}

	var req transport.LineItemRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "add_line_item_error", err)
	}

	order, err := h.Svc.AddLineItem(ctx, id, req)
	if err != nil {
		return failure(l, "add_line_item_error", err)
	}

	l.Info("add_line_item_success", "orderID", id, "productID", req.ProductID)
	location(c, "pedidos", id)
	return c.JSON(http.StatusCreated, order)
}

func (h *OrderHTTP) RemoveLineItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.remove_line_item")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "remove_line_item_error", err)
	}
	productID, err := parseID(c, "produto_id")
	if err != nil {
		return badID(l, "remove_line_item_error", err)
	}

	if err := h.Svc.RemoveLineItem(ctx, id, productID); err != nil {
		return failure(l, "remove_line_item_error", err)
	}

	l.Info("remove_line_item_success", "orderID", id, "productID", productID)
	return c.NoContent(http.StatusNoContent)
}
