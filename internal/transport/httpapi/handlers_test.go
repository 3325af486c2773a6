package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pedidos/internal/service/order"
	"github.com/vladislavdragonenkov/pedidos/internal/storage/memory"
	"github.com/vladislavdragonenkov/pedidos/internal/transport/httpapi"
)

func newTestServer() *httpapi.Server {
	svc := order.NewService(memory.NewOrderRepository(), nil, nil, nil, nil)
	return httpapi.NewServer(svc, nil)
}

func doJSON(t *testing.T, server *httpapi.Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.Engine().ServeHTTP(recorder, req)
	return recorder
}

func orderPayload() map[string]any {
	return map[string]any{
		"customer_id":      7,
		"branch_id":        3,
		"shipping_address": "Av. Siempre Viva 742",
		"payment_method":   "CARD",
		"items": []map[string]any{
			{"product_id": 100, "quantity": 2, "unit_price": 10.0},
			{"product_id": 200, "quantity": 3, "unit_price": 10.0},
		},
	}
}

func createOrder(t *testing.T, server *httpapi.Server) map[string]any {
	t.Helper()

	recorder := doJSON(t, server, http.MethodPost, "/api/v1/orders", orderPayload())
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	var created map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	return created
}

func TestCreateOrderEndpoint(t *testing.T) {
	server := newTestServer()

	created := createOrder(t, server)
	require.Equal(t, "PENDING", created["status"])
	require.Equal(t, 50.0, created["total"])
	require.Positive(t, created["id"].(float64))
	require.Len(t, created["items"], 2)
	require.NotEmpty(t, created["placed_at"])
}

func TestCreateOrderEndpoint_Invalid(t *testing.T) {
	server := newTestServer()

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte("{not json")))
		recorder := httptest.NewRecorder()
		server.Engine().ServeHTTP(recorder, req)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("missing customer", func(t *testing.T) {
		payload := orderPayload()
		payload["customer_id"] = 0
		recorder := doJSON(t, server, http.MethodPost, "/api/v1/orders", payload)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("no items", func(t *testing.T) {
		payload := orderPayload()
		payload["items"] = []map[string]any{}
		recorder := doJSON(t, server, http.MethodPost, "/api/v1/orders", payload)
		require.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetOrderEndpoint(t *testing.T) {
	server := newTestServer()
	created := createOrder(t, server)

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var fetched map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &fetched))
	require.Equal(t, created["id"], fetched["id"])
	require.Equal(t, created["total"], fetched["total"])
}

func TestGetOrderEndpoint_Errors(t *testing.T) {
	server := newTestServer()

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/orders/404", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doJSON(t, server, http.MethodGet, "/api/v1/orders/abc", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestUpdateOrderEndpoint(t *testing.T) {
	server := newTestServer()
	createOrder(t, server)

	payload := orderPayload()
	payload["items"] = []map[string]any{
		{"product_id": 300, "quantity": 1, "unit_price": 25.0},
	}
	recorder := doJSON(t, server, http.MethodPut, "/api/v1/orders/1", payload)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	require.Equal(t, 25.0, updated["total"])
	require.Len(t, updated["items"], 1)
}

func TestUpdateOrderEndpoint_NotFound(t *testing.T) {
	server := newTestServer()

	recorder := doJSON(t, server, http.MethodPut, "/api/v1/orders/404", orderPayload())
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUpdateOrderStatusEndpoint(t *testing.T) {
	server := newTestServer()
	createOrder(t, server)

	recorder := doJSON(t, server, http.MethodPut, "/api/v1/orders/1/status?status=EN_CAMINO", nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var updated map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &updated))
	require.Equal(t, "EN_CAMINO", updated["status"])

	recorder = doJSON(t, server, http.MethodPut, "/api/v1/orders/1/status", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doJSON(t, server, http.MethodPut, "/api/v1/orders/404/status?status=X", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestDeleteOrderEndpoint(t *testing.T) {
	server := newTestServer()
	createOrder(t, server)

	recorder := doJSON(t, server, http.MethodDelete, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusNoContent, recorder.Code)

	recorder = doJSON(t, server, http.MethodDelete, "/api/v1/orders/1", nil)
	require.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListOrdersByCustomerEndpoint(t *testing.T) {
	server := newTestServer()
	createOrder(t, server)

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/customers/7/orders", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)

	// Клиент без заказов получает пустой список, а не ошибку.
	recorder = doJSON(t, server, http.MethodGet, "/api/v1/customers/999/orders", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, "[]", recorder.Body.String())

	recorder = doJSON(t, server, http.MethodGet, "/api/v1/customers/0/orders", nil)
	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestListOrdersByBranchEndpoint(t *testing.T) {
	server := newTestServer()
	createOrder(t, server)

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/branches/3/orders", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var orders []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
}

func TestRequestIDHeader(t *testing.T) {
	server := newTestServer()

	recorder := doJSON(t, server, http.MethodGet, "/api/v1/customers/7/orders", nil)
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/customers/7/orders", nil)
	req.Header.Set("X-Request-ID", "req-123")
	echo := httptest.NewRecorder()
	server.Engine().ServeHTTP(echo, req)
	require.Equal(t, "req-123", echo.Header().Get("X-Request-ID"))
}
