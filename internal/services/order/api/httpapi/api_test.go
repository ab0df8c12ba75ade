package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wharfside/marketplace/internal/services/order/service"
	"github.com/wharfside/marketplace/internal/services/order/storage"
	"github.com/wharfside/marketplace/internal/services/order/storage/sqlite"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, accountID, role string) string {
	t.Helper()
	claims := actorClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func newTestServer(t *testing.T) (*httptest.Server, storage.Store) {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "orders.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	n := 0
	svc, err := service.New(service.Config{
		Store: store,
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%03d", n)
		},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	server := httptest.NewServer(NewRouter(Config{
		Service:   svc,
		JWTSecret: testSecret,
	}))
	t.Cleanup(server.Close)
	return server, store
}

func seedCatalog(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := t.Context()
	if err := store.PutProduct(ctx, storage.ProductRecord{
		ID: "prod-a", SellerID: "seller-1", Name: "Walnut desk",
		UnitPrice: 5_000, Quantity: 10, Verified: true,
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := store.PutAccount(ctx, storage.AccountRecord{ID: "cust-1"}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := store.PutDestination(ctx, storage.DestinationRecord{
		ID: "dest-1", CustomerID: "cust-1", RecipientName: "Pat Doe",
		AddressLine1: "1 Harbor St",
	}); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
}

func doRequest(t *testing.T, method, url, token string, body any) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, data
}

func createOrderBody() map[string]any {
	return map[string]any{
		"destinationId": "dest-1",
		"items": []map[string]any{
			{"productId": "prod-a", "quantity": 1},
		},
	}
}

func TestCreateOrderEndpoint(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)
	token := signToken(t, "cust-1", "customer")

	resp, body := doRequest(t, http.MethodPost, server.URL+"/orders", token, createOrderBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var payload orderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.CustomerID != "cust-1" || payload.GrandTotal != 6_000 {
		t.Fatalf("unexpected order payload: %+v", payload)
	}
	if len(payload.Combos) != 1 || payload.Combos[0].Status != "PENDING" {
		t.Fatalf("expected one pending combo, got %+v", payload.Combos)
	}
}

func TestCreateOrderRequiresAuth(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)

	resp, _ := doRequest(t, http.MethodPost, server.URL+"/orders", "", createOrderBody())
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodPost, server.URL+"/orders", "not-a-jwt", createOrderBody())
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with malformed token, got %d", resp.StatusCode)
	}
}

func TestCreateOrderRejectsForgedToken(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)

	claims := actorClaims{
		Role: "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "cust-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}

	resp, _ := doRequest(t, http.MethodPost, server.URL+"/orders", forged, createOrderBody())
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 with forged token, got %d", resp.StatusCode)
	}
}

func TestGetOrderOwnershipStatuses(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)
	customerToken := signToken(t, "cust-1", "customer")

	resp, body := doRequest(t, http.MethodPost, server.URL+"/orders", customerToken, createOrderBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create order: %d %s", resp.StatusCode, body)
	}
	var order orderPayload
	if err := json.Unmarshal(body, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	resp, _ = doRequest(t, http.MethodGet, server.URL+"/orders/"+order.ID, customerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("owner read: expected 200, got %d", resp.StatusCode)
	}

	strangerToken := signToken(t, "cust-9", "customer")
	resp, _ = doRequest(t, http.MethodGet, server.URL+"/orders/"+order.ID, strangerToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("stranger read: expected 403, got %d", resp.StatusCode)
	}

	resp, _ = doRequest(t, http.MethodGet, server.URL+"/orders/ghost", customerToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("missing order: expected 404, got %d", resp.StatusCode)
	}
}

func TestTransitionEndpointStatuses(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)
	customerToken := signToken(t, "cust-1", "customer")
	sellerToken := signToken(t, "seller-1", "seller")

	resp, body := doRequest(t, http.MethodPost, server.URL+"/orders", customerToken, createOrderBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create order: %d %s", resp.StatusCode, body)
	}
	var order orderPayload
	if err := json.Unmarshal(body, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	comboID := order.Combos[0].ID

	resp, body = doRequest(t, http.MethodPost,
		server.URL+"/combos/"+comboID+"/transitions", sellerToken,
		map[string]any{"toStatus": "PREPARING"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("transition: expected 200, got %d: %s", resp.StatusCode, body)
	}
	var combo comboPayload
	if err := json.Unmarshal(body, &combo); err != nil {
		t.Fatalf("decode combo: %v", err)
	}
	if combo.Status != "PREPARING" {
		t.Fatalf("expected PREPARING, got %s", combo.Status)
	}

	// Skipping ahead to DELIVERED is a validation failure.
	resp, _ = doRequest(t, http.MethodPost,
		server.URL+"/combos/"+comboID+"/transitions", sellerToken,
		map[string]any{"toStatus": "DELIVERED"})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid transition: expected 422, got %d", resp.StatusCode)
	}

	// Another seller gets a 403.
	otherSeller := signToken(t, "seller-9", "seller")
	resp, _ = doRequest(t, http.MethodPost,
		server.URL+"/combos/"+comboID+"/transitions", otherSeller,
		map[string]any{"toStatus": "DELIVERING", "deliveryType": "MANUAL"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("foreign seller: expected 403, got %d", resp.StatusCode)
	}
}

func TestNextStatusesAndHistoryEndpoints(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)
	customerToken := signToken(t, "cust-1", "customer")

	resp, body := doRequest(t, http.MethodPost, server.URL+"/orders", customerToken, createOrderBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create order: %d %s", resp.StatusCode, body)
	}
	var order orderPayload
	if err := json.Unmarshal(body, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	comboID := order.Combos[0].ID

	resp, body = doRequest(t, http.MethodGet,
		server.URL+"/combos/"+comboID+"/next-statuses", customerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("next statuses: %d %s", resp.StatusCode, body)
	}
	var next struct {
		Statuses []string `json:"statuses"`
	}
	if err := json.Unmarshal(body, &next); err != nil {
		t.Fatalf("decode next statuses: %v", err)
	}
	if len(next.Statuses) != 2 {
		t.Fatalf("expected 2 next statuses, got %v", next.Statuses)
	}

	resp, body = doRequest(t, http.MethodGet,
		server.URL+"/combos/"+comboID+"/history", customerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history: %d %s", resp.StatusCode, body)
	}
	var history struct {
		History []historyPayload `json:"history"`
	}
	if err := json.Unmarshal(body, &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history.History) != 1 || history.History[0].ToStatus != "PENDING" {
		t.Fatalf("expected intake history row, got %+v", history.History)
	}
}

func TestCancelOrderEndpoint(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)
	customerToken := signToken(t, "cust-1", "customer")

	resp, body := doRequest(t, http.MethodPost, server.URL+"/orders", customerToken, createOrderBody())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create order: %d %s", resp.StatusCode, body)
	}
	var order orderPayload
	if err := json.Unmarshal(body, &order); err != nil {
		t.Fatalf("decode order: %v", err)
	}

	resp, _ = doRequest(t, http.MethodPost,
		server.URL+"/orders/"+order.ID+"/cancel", customerToken,
		map[string]any{"reason": "changed my mind"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("cancel: expected 204, got %d", resp.StatusCode)
	}

	account, err := store.GetAccount(t.Context(), "cust-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Balance != 5_000 {
		t.Fatalf("expected refund 5000, got %d", account.Balance)
	}
}

func TestSaveFeeTierRequiresAdmin(t *testing.T) {
	server, store := newTestServer(t)
	seedCatalog(t, store)

	body := map[string]any{"minPrice": 0, "rateBp": 500}

	customerToken := signToken(t, "cust-1", "customer")
	resp, _ := doRequest(t, http.MethodPut, server.URL+"/fee-tiers/t1", customerToken, body)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("customer save tier: expected 422, got %d", resp.StatusCode)
	}

	adminToken := signToken(t, "admin-1", "admin")
	resp, _ = doRequest(t, http.MethodPut, server.URL+"/fee-tiers/t1", adminToken, body)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin save tier: expected 204, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	server, _ := newTestServer(t)
	resp, body := doRequest(t, http.MethodGet, server.URL+"/healthz", "", nil)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("healthz: %d %s", resp.StatusCode, body)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server, _ := newTestServer(t)
	resp, _ := doRequest(t, http.MethodGet, server.URL+"/metrics", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", resp.StatusCode)
	}
}
