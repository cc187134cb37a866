package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pedidos_api/internal/logging"
	"github.com/Skotchmaster/pedidos_api/internal/search"
	"github.com/Skotchmaster/pedidos_api/internal/service"
	"github.com/Skotchmaster/pedidos_api/internal/transport"
)

type ProductHTTP struct {
	Svc *service.ProductService
}

func (h *ProductHTTP) ListProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.list_products")

	items, err := h.Svc.ListProducts(ctx)
	if err != nil {
		return failure(l, "list_products_error", err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *ProductHTTP) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.get_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "get_product_error", err)
	}

	product, err := h.Svc.GetProduct(ctx, id)
	if err != nil {
		return failure(l, "get_product_error", err)
	}

	return c.JSON(http.StatusOK, product)
}

func (h *ProductHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.create_product")

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "create_product_error", err)
	}

	product, err := h.Svc.CreateProduct(ctx, req)
	if err != nil {
		return failure(l, "create_product_error", err)
	}

	l.Info("create_product_success", "productID", product.ID)
	location(c, "produtos", product.ID)
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHTTP) ReplaceProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.replace_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "replace_product_error", err)
	}

	var req transport.ProductRequest
	if err := c.Bind(&req); err != nil {
		return badBody(l, "replace_product_error", err)
	}

	if err := h.Svc.ReplaceProduct(ctx, id, req); err != nil {
		return failure(l, "replace_product_error", err)
	}

	l.Info("replace_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) DeleteProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.delete_product")

	id, err := parseID(c, "id")
	if err != nil {
		return badID(l, "delete_product_error", err)
	}

	if err := h.Svc.DeleteProduct(ctx, id); err != nil {
		return failure(l, "delete_product_error", err)
	}

	l.Info("delete_product_success", "productID", id)
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHTTP) SearchProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "product.search_products")

	total, items, err := h.Svc.SearchProducts(ctx, c.QueryParam("q"))
	if err != nil {
		if errors.Is(err, search.ErrDisabled) {
			l.Warn("search_products_error", "status", 503, "reason", "search disabled")
			return echo.NewHTTPError(http.StatusServiceUnavailable, "search disabled")
		}
		return failure(l, "search_products_error", err)
	}

	return c.JSON(http.StatusOK, transport.SearchResponse{Total: total, Data: items})
}
