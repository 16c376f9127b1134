package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shopcrm/internal/api"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/orders"
	"github.com/vladislavdragonenkov/shopcrm/internal/service/reports"
	"github.com/vladislavdragonenkov/shopcrm/internal/storage/memory"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	clients := store.Clients()
	products := store.Products()
	orderRepo := store.Orders()

	handler := api.NewHandler(
		clients,
		products,
		orders.NewService(clients, products, orderRepo, nil, nil),
		reports.NewEngine(clients, orderRepo, nil),
		nil,
		nil,
		nil,
	)
	return api.NewRouter(api.RouterConfig{Handler: handler})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func createClient(t *testing.T, router *gin.Engine) int64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/clients", gin.H{
		"fio":     "Иванов Иван",
		"phone":   "9123456789",
		"email":   "ivan@example.com",
		"address": "Москва Ленина 5",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func createProduct(t *testing.T, router *gin.Engine, name string, price float64) int64 {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name":  name,
		"price": price,
		"unit":  "шт",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create product: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decodeBody(t, w, &resp)
	return resp.ID
}

func TestCreateClient(t *testing.T) {
	router := newTestRouter(t)

	id := createClient(t, router)
	if id != 1 {
		t.Errorf("expected first client id 1, got %d", id)
	}

	w := doJSON(t, router, http.MethodGet, "/api/clients", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Clients []struct {
			ID  int64  `json:"id"`
			FIO string `json:"fio"`
		} `json:"clients"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Clients) != 1 || resp.Clients[0].FIO != "Иванов Иван" {
		t.Errorf("unexpected clients list: %+v", resp.Clients)
	}
}

func TestCreateClient_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "empty fields",
			body: gin.H{"fio": "", "phone": "", "email": "", "address": ""},
		},
		{
			name: "bad phone",
			body: gin.H{"fio": "Иванов Иван", "phone": "1234567890", "email": "ivan@example.com", "address": "Москва"},
		},
		{
			name: "bad email",
			body: gin.H{"fio": "Иванов Иван", "phone": "9123456789", "email": "ivan.example.com", "address": "Москва"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(t)

			w := doJSON(t, router, http.MethodPost, "/api/clients", tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}

			var resp api.ErrorEnvelope
			decodeBody(t, w, &resp)
			if resp.Error.Code != "validation" {
				t.Errorf("expected code 'validation', got %q", resp.Error.Code)
			}

			// Хранилище не должно меняться при отклонённом запросе.
			list := doJSON(t, router, http.MethodGet, "/api/clients", nil)
			var listResp struct {
				Clients []json.RawMessage `json:"clients"`
			}
			decodeBody(t, list, &listResp)
			if len(listResp.Clients) != 0 {
				t.Errorf("expected no clients stored, got %d", len(listResp.Clients))
			}
		})
	}
}

func TestCreateProduct_NegativePrice(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/products", gin.H{
		"name": "Телефон", "price": -1.0, "unit": "шт",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateOrder(t *testing.T) {
	router := newTestRouter(t)

	clientID := createClient(t, router)
	phoneID := createProduct(t, router, "Телефон", 1000)
	caseID := createProduct(t, router, "Чехол", 150.5)

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"client_id": clientID,
		"items": []gin.H{
			{"product_id": phoneID, "quantity": 2},
			{"product_id": caseID, "quantity": 1},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	list := doJSON(t, router, http.MethodGet, "/api/orders", nil)
	if list.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", list.Code)
	}
	var resp struct {
		Orders []struct {
			Client string `json:"client"`
			Items  string `json:"items"`
			Total  string `json:"total"`
		} `json:"orders"`
	}
	decodeBody(t, list, &resp)
	if len(resp.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(resp.Orders))
	}
	row := resp.Orders[0]
	if row.Client != "Иванов Иван" {
		t.Errorf("unexpected client %q", row.Client)
	}
	if row.Items != "Телефон x2, Чехол x1" {
		t.Errorf("unexpected items %q", row.Items)
	}
	if row.Total != "2150.50 руб." {
		t.Errorf("unexpected total %q", row.Total)
	}
}

func TestCreateOrder_UnknownClient(t *testing.T) {
	router := newTestRouter(t)
	productID := createProduct(t, router, "Телефон", 1000)

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"client_id": 42,
		"items":     []gin.H{{"product_id": productID, "quantity": 1}},
	})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
	}

	var resp api.ErrorEnvelope
	decodeBody(t, w, &resp)
	if resp.Error.Code != "not_found" {
		t.Errorf("expected code 'not_found', got %q", resp.Error.Code)
	}
}

func TestCreateOrder_NoItems(t *testing.T) {
	router := newTestRouter(t)
	clientID := createClient(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"client_id": clientID,
		"items":     []gin.H{},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateOrderByNames(t *testing.T) {
	router := newTestRouter(t)

	createClient(t, router)
	createProduct(t, router, "Телефон", 1000)

	w := doJSON(t, router, http.MethodPost, "/api/orders/by-name", gin.H{
		"client": "Иванов Иван",
		"items":  []gin.H{{"product": "Телефон", "quantity": 2}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	missing := doJSON(t, router, http.MethodPost, "/api/orders/by-name", gin.H{
		"client": "Нет Такого",
		"items":  []gin.H{{"product": "Телефон", "quantity": 1}},
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown client, got %d", missing.Code)
	}
}

func TestListOrders_Sorted(t *testing.T) {
	router := newTestRouter(t)

	createClient(t, router)
	w := doJSON(t, router, http.MethodPost, "/api/clients", gin.H{
		"fio":     "Петров Пётр",
		"phone":   "9234567890",
		"email":   "petr@example.com",
		"address": "Казань Баумана 1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create second client: %d", w.Code)
	}

	cable := createProduct(t, router, "Кабель", 100)

	for clientID, quantity := range map[int64]int{1: 1, 2: 5} {
		resp := doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
			"client_id": clientID,
			"items":     []gin.H{{"product_id": cable, "quantity": quantity}},
		})
		if resp.Code != http.StatusCreated {
			t.Fatalf("create order for client %d: %d", clientID, resp.Code)
		}
	}

	list := doJSON(t, router, http.MethodGet, "/api/orders?sort=total&desc=true", nil)
	var resp struct {
		Orders []struct {
			Total string `json:"total"`
		} `json:"orders"`
	}
	decodeBody(t, list, &resp)
	if len(resp.Orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(resp.Orders))
	}
	if resp.Orders[0].Total != "500.00 руб." || resp.Orders[1].Total != "100.00 руб." {
		t.Errorf("expected descending totals, got %+v", resp.Orders)
	}
}

func TestTopClients(t *testing.T) {
	router := newTestRouter(t)

	createClient(t, router)
	doJSON(t, router, http.MethodPost, "/api/clients", gin.H{
		"fio":     "Петров Пётр",
		"phone":   "9234567890",
		"email":   "petr@example.com",
		"address": "Казань Баумана 1",
	})
	cable := createProduct(t, router, "Кабель", 100)

	doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"client_id": 1,
		"items":     []gin.H{{"product_id": cable, "quantity": 2}},
	})
	doJSON(t, router, http.MethodPost, "/api/orders", gin.H{
		"client_id": 2,
		"items":     []gin.H{{"product_id": cable, "quantity": 7}},
	})

	w := doJSON(t, router, http.MethodGet, "/api/reports/top-clients?n=1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Clients []struct {
			Client string  `json:"client"`
			Total  float64 `json:"total"`
		} `json:"clients"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Clients) != 1 {
		t.Fatalf("expected 1 client, got %d", len(resp.Clients))
	}
	if resp.Clients[0].Client != "Петров Пётр" || resp.Clients[0].Total != 700 {
		t.Errorf("unexpected top client: %+v", resp.Clients[0])
	}
}

func TestTopClients_BadLimit(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/reports/top-clients?n=abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestClientsByCity(t *testing.T) {
	router := newTestRouter(t)

	createClient(t, router)
	doJSON(t, router, http.MethodPost, "/api/clients", gin.H{
		"fio":     "Петров Пётр",
		"phone":   "9234567890",
		"email":   "petr@example.com",
		"address": "Москва Тверская 7",
	})
	doJSON(t, router, http.MethodPost, "/api/clients", gin.H{
		"fio":     "Сидоров Сидор",
		"phone":   "9345678901",
		"email":   "sidr@example.com",
		"address": "Казань Баумана 1",
	})

	w := doJSON(t, router, http.MethodGet, "/api/reports/cities", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp struct {
		Cities []struct {
			City  string `json:"city"`
			Count int    `json:"count"`
		} `json:"cities"`
	}
	decodeBody(t, w, &resp)
	if len(resp.Cities) != 2 {
		t.Fatalf("expected 2 cities, got %d", len(resp.Cities))
	}
	if resp.Cities[0].City != "Москва" || resp.Cities[0].Count != 2 {
		t.Errorf("unexpected first city: %+v", resp.Cities[0])
	}
	if resp.Cities[1].City != "Казань" || resp.Cities[1].Count != 1 {
		t.Errorf("unexpected second city: %+v", resp.Cities[1])
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/clients", nil)
	if w.Header().Get(api.HeaderRequestID) == "" {
		t.Error("expected generated request id header")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set(api.HeaderRequestID, "test-id-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get(api.HeaderRequestID) != "test-id-123" {
		t.Errorf("expected request id to be preserved, got %q", rec.Header().Get(api.HeaderRequestID))
	}
}
