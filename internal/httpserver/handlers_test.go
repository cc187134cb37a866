package httpserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pedidos_api/internal/events"
	"github.com/Skotchmaster/pedidos_api/internal/models"
	"github.com/Skotchmaster/pedidos_api/internal/repo"
	"github.com/Skotchmaster/pedidos_api/internal/search"
	"github.com/Skotchmaster/pedidos_api/internal/service"
	"github.com/Skotchmaster/pedidos_api/internal/testutil"
)

type testEnv struct {
	T  *testing.T
	E  *echo.Echo
	DB *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.InitTestDB(t)
	r := &repo.GormRepo{DB: db}

	e := echo.New()
	Register(e, &Deps{
		CustomerHandler: &CustomerHTTP{Svc: &service.CustomerService{Repo: r, Publisher: events.Nop{}}},
		ProductHandler:  &ProductHTTP{Svc: &service.ProductService{Repo: r, Publisher: events.Nop{}, Index: search.Disabled{}}},
		OrderHandler:    &OrderHTTP{Svc: &service.OrderService{Repo: r, Publisher: events.Nop{}}},
	})

	return &testEnv{T: t, E: e, DB: db}
}

func (env *testEnv) doJSONRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(env.T, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestWidgetScenario(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"name": "Ana"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "Widget", "price": 9.99})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/produtos/1", rec.Header().Get(echo.HeaderLocation))
	prod := decode[models.Product](t, rec)
	assert.Equal(t, 1, prod.ID)

	rec = env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{
		"customer_id": 1,
		"status":      "pending",
		"line_items":  []map[string]any{{"product_id": 1}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "/v1/pedidos/1", rec.Header().Get(echo.HeaderLocation))
	assert.Equal(t, 1, decode[models.Order](t, rec).ID)

	rec = env.doJSONRequest(http.MethodGet, "/v1/pedidos/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		ID        int    `json:"id"`
		Status    string `json:"status"`
		LineItems []struct {
			ProductID int `json:"product_id"`
			Product   struct {
				ID    int     `json:"id"`
				Name  string  `json:"name"`
				Price float64 `json:"price"`
			} `json:"product"`
		} `json:"line_items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.ID)
	assert.Equal(t, "pending", body.Status)
	require.Len(t, body.LineItems, 1)
	assert.Equal(t, 1, body.LineItems[0].ProductID)
	assert.Equal(t, 1, body.LineItems[0].Product.ID)
	assert.Equal(t, "Widget", body.LineItems[0].Product.Name)
	assert.Equal(t, 9.99, body.LineItems[0].Product.Price)
}

func TestCustomer_CreateGetListReplace(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"id": 50, "name": "Ana", "email": "ana@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[models.Customer](t, rec)
	assert.Equal(t, 1, created.ID)

	rec = env.doJSONRequest(http.MethodGet, "/v1/clientes/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, created, decode[models.Customer](t, rec))

	rec = env.doJSONRequest(http.MethodPut, "/v1/clientes/1", map[string]any{"id": 1, "name": "Ana Maria", "phone": "555"})
	require.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = env.doJSONRequest(http.MethodGet, "/v1/clientes", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Customer](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, models.Customer{ID: 1, Name: "Ana Maria", Phone: "555"}, list[0])
}

func TestReplace_IDMismatchIsBadRequest(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "Widget", "price": 1}).Code)

	rec := env.doJSONRequest(http.MethodPut, "/v1/produtos/1", map[string]any{"id": 2, "name": "Other", "price": 2})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/v1/produtos/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Widget", decode[models.Product](t, rec).Name)

	rec = env.doJSONRequest(http.MethodPut, "/v1/clientes/1", map[string]any{"name": "no id"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingIDs(t *testing.T) {
	env := newTestEnv(t)

	for _, resource := range []string{"clientes", "produtos", "pedidos"} {
		t.Run(resource, func(t *testing.T) {
			assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodDelete, "/v1/"+resource+"/9", nil).Code)
			assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodGet, "/v1/"+resource+"/9", nil).Code)
			assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodPut, "/v1/"+resource+"/9", map[string]any{"id": 9, "customer_id": 1}).Code)
			assert.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodGet, "/v1/"+resource+"/abc", nil).Code)
			assert.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodDelete, "/v1/"+resource+"/0", nil).Code)
		})
	}
}

func TestOrder_DeleteCascadesLineItems(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"name": "Ana"}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "A", "price": 1}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "B", "price": 2}).Code)

	rec := env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{
		"customer_id": 1,
		"status":      "pending",
		"line_items":  []map[string]any{{"product_id": 1}, {"product_id": 2}},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Len(t, decode[models.Order](t, rec).LineItems, 2)

	rec = env.doJSONRequest(http.MethodDelete, "/v1/produtos/1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "referenced product is protected by the foreign key")

	rec = env.doJSONRequest(http.MethodDelete, "/v1/pedidos/1", nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	var n int64
	require.NoError(t, env.DB.Model(&models.OrderProduct{}).Where("order_id = ?", 1).Count(&n).Error)
	assert.Zero(t, n)

	assert.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodDelete, "/v1/produtos/1", nil).Code)
}

func TestCustomer_DeleteWithOrdersIsServerError(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"name": "Ana"}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{
		"customer_id": 1, "status": "pending",
	}).Code)

	rec := env.doJSONRequest(http.MethodDelete, "/v1/clientes/1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code, "customer with orders is protected by the foreign key")

	rec = env.doJSONRequest(http.MethodGet, "/v1/clientes/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ana", decode[models.Customer](t, rec).Name)

	require.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodDelete, "/v1/pedidos/1", nil).Code)
	assert.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodDelete, "/v1/clientes/1", nil).Code)
}

func TestOrder_ReplaceKeepsLineItems(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"name": "Ana"}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "A", "price": 1}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{
		"customer_id": 1, "status": "pending", "line_items": []map[string]any{{"product_id": 1}},
	}).Code)

	rec := env.doJSONRequest(http.MethodPut, "/v1/pedidos/1", map[string]any{
		"id": 1, "customer_id": 1, "status": "shipped", "line_items": []map[string]any{},
	})
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.doJSONRequest(http.MethodGet, "/v1/pedidos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	orders := decode[[]models.Order](t, rec)
	require.Len(t, orders, 1)
	assert.Equal(t, "shipped", orders[0].Status)
	assert.Len(t, orders[0].LineItems, 1)
	require.NotNil(t, orders[0].Customer)
	assert.Equal(t, "Ana", orders[0].Customer.Name)
}

func TestOrder_DuplicateLineItemIsConflict(t *testing.T) {
	env := newTestEnv(t)

	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/clientes", map[string]any{"name": "Ana"}).Code)
	require.Equal(t, http.StatusCreated, env.doJSONRequest(http.MethodPost, "/v1/produtos", map[string]any{"name": "A", "price": 1}).Code)

	rec := env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{
		"customer_id": 1, "line_items": []map[string]any{{"product_id": 1}, {"product_id": 1}},
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{"customer_id": 1, "status": "new"})
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[models.Order](t, rec).ID

	rec = env.doJSONRequest(http.MethodPost, "/v1/pedidos/1/produtos", map[string]any{"product_id": 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, id)
	assert.Len(t, decode[models.Order](t, rec).LineItems, 1)

	rec = env.doJSONRequest(http.MethodPost, "/v1/pedidos/1/produtos", map[string]any{"product_id": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodPost, "/v1/pedidos/7/produtos", map[string]any{"product_id": 1}).Code)

	assert.Equal(t, http.StatusNoContent, env.doJSONRequest(http.MethodDelete, "/v1/pedidos/1/produtos/1", nil).Code)
	assert.Equal(t, http.StatusNotFound, env.doJSONRequest(http.MethodDelete, "/v1/pedidos/1/produtos/1", nil).Code)
}

func TestOrder_UnknownCustomerIsServerError(t *testing.T) {
	env := newTestEnv(t)

	rec := env.doJSONRequest(http.MethodPost, "/v1/pedidos", map[string]any{"customer_id": 42, "status": "pending"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearch_DisabledAndValidation(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusBadRequest, env.doJSONRequest(http.MethodGet, "/v1/produtos/busca", nil).Code)
	assert.Equal(t, http.StatusServiceUnavailable, env.doJSONRequest(http.MethodGet, "/v1/produtos/busca?q=widget", nil).Code)
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/live", nil).Code)
	assert.Equal(t, http.StatusOK, env.doJSONRequest(http.MethodGet, "/health/ready", nil).Code)
}
