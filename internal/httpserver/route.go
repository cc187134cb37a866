package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CustomerHandler *CustomerHTTP
	ProductHandler  *ProductHTTP
	OrderHandler    *OrderHTTP
	Ready           func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready == nil {
			return c.NoContent(http.StatusOK)
		}
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := d.Ready(ctx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return c.NoContent(http.StatusOK)
	})

	v1 := e.Group("/v1")

	clientes := v1.Group("/clientes")
	clientes.GET("", d.CustomerHandler.ListCustomers)
	clientes.GET("/:id", d.CustomerHandler.GetCustomer)
	clientes.POST("", d.CustomerHandler.CreateCustomer)
	clientes.PUT("/:id", d.CustomerHandler.ReplaceCustomer)
	clientes.DELETE("/:id", d.CustomerHandler.DeleteCustomer)

	produtos := v1.Group("/produtos")
	produtos.GET("", d.ProductHandler.ListProducts)
	produtos.GET("/busca", d.ProductHandler.SearchProducts)
	produtos.GET("/:id", d.ProductHandler.GetProduct)
	produtos.POST("", d.ProductHandler.CreateProduct)
	produtos.PUT("/:id", d.ProductHandler.ReplaceProduct)
	produtos.DELETE("/:id", d.ProductHandler.DeleteProduct)

	pedidos := v1.Group("/pedidos")
	pedidos.GET("", d.OrderHandler.ListOrders)
	pedidos.GET("/:id", d.OrderHandler.GetOrder)
	pedidos.POST("", d.OrderHandler.CreateOrder)
	pedidos.PUT("/:id", d.OrderHandler.ReplaceOrder)
	pedidos.DELETE("/:id", d.OrderHandler.DeleteOrder)
	pedidos.POST("/:id/produtos", d.OrderHandler.AddLineItem)
	pedidos.DELETE("/:id/produtos/:produto_id", d.OrderHandler.RemoveLineItem)
}
