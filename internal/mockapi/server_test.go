package mockapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wetigu/ai-playground/pkg/api"
	"github.com/wetigu/ai-playground/pkg/model"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, opts ...Option) (*Server, http.Handler) {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s := New(opts...)
	return s, s.Handler()
}

func doJSON(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, api.Envelope[json.RawMessage]) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env api.Envelope[json.RawMessage]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func TestProductCRUD(t *testing.T) {
	_, h := newTestServer(t)

	rec, env := doJSON(t, h, http.MethodPost, "/products", model.ProductInput{
		Name:  model.Ptr("Widget"),
		Price: model.Ptr(4.5),
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	require.True(t, env.Success)

	var created model.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Widget", created.Name)
	assert.True(t, created.InStock)
	assert.True(t, fixedNow.Equal(created.CreatedAt))

	rec, env = doJSON(t, h, http.MethodPut, "/products/1", model.ProductInput{Price: model.Ptr(9.99)})
	require.Equal(t, http.StatusOK, rec.Code)
	var updated model.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, "Widget", updated.Name)

	rec, env = doJSON(t, h, http.MethodGet, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched model.Product
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, updated, fetched)

	rec, env = doJSON(t, h, http.MethodDelete, "/products/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)

	rec, env = doJSON(t, h, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "not found", env.Message)
}

func TestProductListPaginationAndFilters(t *testing.T) {
	_, h := newTestServer(t, WithSeed())

	rec, env := doJSON(t, h, http.MethodGet, "/products?page=1&per_page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var page model.Page[model.Product]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.TotalPages)

	_, env = doJSON(t, h, http.MethodGet, "/products?category=HARDWARE&max_price=10", nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Widget", page.Items[0].Name)

	_, env = doJSON(t, h, http.MethodGet, "/products?in_stock=false", nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Sprocket", page.Items[0].Name)

	rec, _ = doJSON(t, h, http.MethodGet, "/products?per_page=500", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec, _ = doJSON(t, h, http.MethodGet, "/products?min_price=cheap", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestProductValidation(t *testing.T) {
	_, h := newTestServer(t)

	rec, env := doJSON(t, h, http.MethodPost, "/products", model.ProductInput{Name: model.Ptr("Free")})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "price is required", env.Message)

	rec, env = doJSON(t, h, http.MethodPost, "/products", model.ProductInput{Name: model.Ptr("Neg"), Price: model.Ptr(-1.0)})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "price must be greater than 0", env.Message)

	rec, _ = doJSON(t, h, http.MethodPut, "/products/abc", model.ProductInput{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	_, h := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"name":`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/products", bytes.NewBufferString(`{"nope":1}`))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrders(t *testing.T) {
	s, h := newTestServer(t, WithSeed())

	rec, env := doJSON(t, h, http.MethodPost, "/orders", model.OrderInput{
		UserID:   model.Ptr(int64(1)),
		Products: []model.OrderItem{{ProductID: 2, Quantity: 3, Price: 19.99}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, env.Message)
	var order model.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, model.OrderPending, order.Status)
	assert.InDelta(t, 59.97, order.TotalAmount, 1e-9)

	rec, env = doJSON(t, h, http.MethodPost, "/orders", model.OrderInput{
		UserID:   model.Ptr(int64(1)),
		Products: []model.OrderItem{{ProductID: 99, Quantity: 1, Price: 1}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Message, "unknown product 99")

	shipped := model.OrderShipped
	rec, _ = doJSON(t, h, http.MethodPut, "/orders/2", model.OrderInput{Status: &shipped})
	require.Equal(t, http.StatusOK, rec.Code)

	_, env = doJSON(t, h, http.MethodGet, "/orders?status=shipped", nil)
	var page model.Page[model.Order]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(2), page.Items[0].ID)

	rec, _ = doJSON(t, h, http.MethodGet, "/orders?status=lost", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	products, orders, users := s.Counts()
	assert.Equal(t, 3, products)
	assert.Equal(t, 2, orders)
	assert.Equal(t, 1, users)
}

func TestUsers(t *testing.T) {
	_, h := newTestServer(t, WithSeed())

	rec, env := doJSON(t, h, http.MethodPost, "/users", model.UserInput{Username: model.Ptr("ana"), Email: model.Ptr("not-an-email")})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "email is not valid", env.Message)

	rec, _ = doJSON(t, h, http.MethodPost, "/users", model.UserInput{Username: model.Ptr("ana"), Email: model.Ptr("ana@tigu.dev")})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, env = doJSON(t, h, http.MethodGet, "/users?search=ana", nil)
	var page model.Page[model.User]
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "ana", page.Items[0].Username)
}

func TestFailNext(t *testing.T) {
	s, h := newTestServer(t, WithSeed())
	s.FailNext(http.StatusServiceUnavailable, "maintenance")

	rec, env := doJSON(t, h, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "maintenance", env.Message)

	rec, _ = doJSON(t, h, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusOK, rec.Code, "faults are consumed once")
}

func TestRequireToken(t *testing.T) {
	_, h := newTestServer(t, WithToken("secret"))

	rec, _ := doJSON(t, h, http.MethodGet, "/products", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRoute(t *testing.T) {
	_, h := newTestServer(t)
	rec, env := doJSON(t, h, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}
