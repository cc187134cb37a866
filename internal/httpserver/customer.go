package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pedidos_api/internal/logging"
	"github.com/Skotchmaster/pedidos_api/internal/service"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type CustomerHTTP struct {
	Svc *service.CustomerService
}

func (h *CustomerHTTP) ListCustomers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.list_customers")

	items, err := h.Svc.ListCustomers(ctx)
	if err != nil {
		return failure(l, "list_customers_error", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *CustomerHTTP) GetCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.get_customer")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "get_customer_error", err)
	}

	customer, err := h.Svc.GetCustomer(ctx, id)
	if err != nil {
		return failure(l, "get_customer_error", err)
	}

	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHTTP) CreateCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.create_customer")

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_customer_error", err)
	}

	customer, err := h.Svc.CreateCustomer(ctx, req)
	if err != nil {
		return failure(l, "create_customer_error", err)
	}

	l.Info("create_customer_success", "customerID", customer.ID)
	location(c, "clientes", customer.ID)
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHTTP) ReplaceCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.replace_customer")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "replace_customer_error", err)
	}

	var req transport.CustomerRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "replace_customer_error", err)
	}

	if err := h.Svc.ReplaceCustomer(ctx, id, req); err != nil {
		return failure(l, "replace_customer_error", err)
	}

	l.Info("replace_customer_success", "customerID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *CustomerHTTP) DeleteCustomer(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "customer.delete_customer")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "delete_customer_error", err)
	}

	if err := h.Svc.DeleteCustomer(ctx, id); err != nil {
		return failure(l, "delete_customer_error", err)
	}

	l.Info("delete_customer_success", "customerID", id)
	return c.NoContent(http.StatusNoContent)
}
