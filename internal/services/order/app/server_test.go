package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wharfside/marketplace/internal/services/order/storage"
	ordersqlite "github.com/wharfside/marketplace/internal/services/order/storage/sqlite"
)

func TestServer_CreateAndGetOrderRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "order.db")
	t.Setenv("WHARFSIDE_ORDER_DB_PATH", dbPath)
	t.Setenv("WHARFSIDE_ORDER_JWT_SECRET", "test-secret")

	// Seed the catalog before the server opens its own handle.
	seed, err := ordersqlite.Open(dbPath)
	if err != nil {
		t.Fatalf("open seed store: %v", err)
	}
	ctx := context.Background()
	if err := seed.PutProduct(ctx, storage.ProductRecord{
		ID: "prod-a", SellerID: "seller-1", Name: "Walnut desk",
		UnitPrice: 5_000, Quantity: 10, Verified: true,
	}); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if err := seed.PutAccount(ctx, storage.AccountRecord{ID: "cust-1"}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
	if err := seed.PutDestination(ctx, storage.DestinationRecord{
		ID: "dest-1", CustomerID: "cust-1", RecipientName: "Pat Doe",
		AddressLine1: "1 Harbor St",
	}); err != nil {
		t.Fatalf("seed destination: %v", err)
	}
	if err := seed.Close(); err != nil {
		t.Fatalf("close seed store: %v", err)
	}

	srv, err := NewWithAddr("127.0.0.1:0")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	runCtx, runCancel := context.WithCancel(context.Background())
	defer runCancel()

	serveDone := make(chan error, 1)
	go func() {
		serveDone <- srv.Serve(runCtx)
	}()
	t.Cleanup(func() {
		runCancel()
		select {
		case serveErr := <-serveDone:
			if serveErr != nil {
				t.Fatalf("serve: %v", serveErr)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for server shutdown")
		}
	})

	baseURL := "http://" + srv.Addr()

	resp, err := http.Get(baseURL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz status = %d, want 200", resp.StatusCode)
	}

	claims := jwt.MapClaims{
		"sub":  "cust-1",
		"role": "customer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	body, err := json.Marshal(map[string]any{
		"destinationId": "dest-1",
		"items": []map[string]any{
			{"productId": "prod-a", "quantity": 2},
		},
	})
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	data, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create order status = %d: %s", resp.StatusCode, data)
	}

	var created struct {
		ID         string `json:"id"`
		GrandTotal int64  `json:"grandTotal"`
	}
	if err := json.Unmarshal(data, &created); err != nil {
		t.Fatalf("decode order: %v", err)
	}
	if created.GrandTotal != 11_500 {
		t.Fatalf("grandTotal = %d, want 11500", created.GrandTotal)
	}

	req, err = http.NewRequest(http.MethodGet, baseURL+"/orders/"+created.ID, nil)
	if err != nil {
		t.Fatalf("build get request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	data, err = io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		t.Fatalf("read get response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get order status = %d: %s", resp.StatusCode, data)
	}
	var fetched struct {
		CustomerID string `json:"customerId"`
	}
	if err := json.Unmarshal(data, &fetched); err != nil {
		t.Fatalf("decode fetched order: %v", err)
	}
	if fetched.CustomerID != "cust-1" {
		t.Fatalf("customerId = %q, want cust-1", fetched.CustomerID)
	}
}
