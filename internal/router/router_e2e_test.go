//go:build integration

package router_test

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Covered flows:
//   - login → catalog setup → order with recipe + direct item → ledger check
//   - stock dashboard statuses after fulfillment
//   - manual SET adjustment

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marcusroqy/foodsystempdv/internal/config"
	"github.com/marcusroqy/foodsystempdv/internal/infra"
	"github.com/marcusroqy/foodsystempdv/internal/model"
	"github.com/marcusroqy/foodsystempdv/internal/router"
	"github.com/marcusroqy/foodsystempdv/internal/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("pdv_test"),
		tcPostgres.WithUsername("pdv"),
		tcPostgres.WithPassword("pdv"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		PackagingKeyword:   "sacola",
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	tenant := model.Tenant{Name: "E2E Pastelaria", Slug: "e2e", Active: true}
	require.NoError(t, db.Create(&tenant).Error)
	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := model.User{
		TenantID: tenant.ID, Name: "Admin E2E", Email: "admin@e2e.test",
		PasswordHash: string(hash), Role: "admin", Active: true,
	}
	require.NoError(t, db.Create(&admin).Error)

	r := router.New(cfg, db, rdb, worker.NewDispatcher(rdb))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "segredo123"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func (env *testEnv) createProduct(t *testing.T, body map[string]any) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/v1/products", jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

func TestE2E_OrderFulfillment(t *testing.T) {
	env := setupTestEnv(t)

	pastelID := env.createProduct(t, map[string]any{
		"name": "Pastel de Carne", "price": "12.50", "is_stock_controlled": false,
	})
	ketchupID := env.createProduct(t, map[string]any{
		"name": "Sachê de Ketchup", "price": "0", "is_for_sale": false, "min_quantity": "50",
	})
	sodaID := env.createProduct(t, map[string]any{
		"name": "Refrigerante Lata", "price": "7.00", "min_quantity": "24",
	})
	sacolaID := env.createProduct(t, map[string]any{
		"name": "Sacola Plástica", "price": "0", "is_for_sale": false, "min_quantity": "100",
	})

	linkResp := do(t, env.server, "POST", "/v1/recipes", jsonBody(t, map[string]any{
		"product_id": pastelID, "ingredient_id": ketchupID, "quantity": "1",
	}), env.token)
	require.Equal(t, http.StatusCreated, linkResp.StatusCode)

	// Opening stock
	for _, adj := range []map[string]any{
		{"product_id": ketchupID, "mode": "IN", "quantity": "200", "reason": "Estoque inicial"},
		{"product_id": sodaID, "mode": "IN", "quantity": "48", "reason": "Estoque inicial"},
		{"product_id": sacolaID, "mode": "IN", "quantity": "500", "reason": "Estoque inicial"},
	} {
		resp := do(t, env.server, "POST", "/v1/inventory/adjust", jsonBody(t, adj), env.token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	// Two pastéis + one soda
	orderResp := do(t, env.server, "POST", "/v1/orders", jsonBody(t, map[string]any{
		"items": []map[string]any{
			{"product_id": pastelID, "quantity": 2, "unit_price": "12.50"},
			{"product_id": sodaID, "quantity": 1, "unit_price": "7.00"},
		},
	}), env.token)
	require.Equal(t, http.StatusCreated, orderResp.StatusCode)
	var order struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		TotalAmount string `json:"total_amount"`
	}
	decodeJSON(t, orderResp, &order)
	assert.Equal(t, "QUEUE", order.Status)
	assert.Equal(t, "32", decimal.RequireFromString(order.TotalAmount).String())

	// Dashboard reflects the deductions: ketchup 198, soda 47, sacola 499.
	invResp := do(t, env.server, "GET", "/v1/inventory", nil, env.token)
	require.Equal(t, http.StatusOK, invResp.StatusCode)
	var items []struct {
		ProductID       string `json:"product_id"`
		CurrentQuantity string `json:"current_quantity"`
		Status          string `json:"status"`
	}
	decodeJSON(t, invResp, &items)
	byID := map[string]string{}
	for _, it := range items {
		byID[it.ProductID] = it.CurrentQuantity
	}
	assert.Equal(t, "198", decimal.RequireFromString(byID[ketchupID]).String())
	assert.Equal(t, "47", decimal.RequireFromString(byID[sodaID]).String())
	assert.Equal(t, "499", decimal.RequireFromString(byID[sacolaID]).String())

	// Status board
	statusResp := do(t, env.server, "PATCH", "/v1/orders/"+order.ID+"/status",
		jsonBody(t, map[string]string{"status": "COMPLETED"}), env.token)
	require.Equal(t, http.StatusOK, statusResp.StatusCode)

	// Ledger history lists the movements
	ledgerResp := do(t, env.server, "GET", "/v1/inventory/ledger?product_id="+ketchupID, nil, env.token)
	require.Equal(t, http.StatusOK, ledgerResp.StatusCode)
	var ledger struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, ledgerResp, &ledger)
	assert.EqualValues(t, 2, ledger.Total, "opening IN + order OUT")
}

func TestE2E_ManualSetAdjustment(t *testing.T) {
	env := setupTestEnv(t)

	skuID := env.createProduct(t, map[string]any{
		"name": "Farinha", "price": "0", "is_for_sale": false,
	})

	resp := do(t, env.server, "POST", "/v1/inventory/adjust", jsonBody(t, map[string]any{
		"product_id": skuID, "mode": "IN", "quantity": "10",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// SET to 4: single OUT 6
	resp = do(t, env.server, "POST", "/v1/inventory/adjust", jsonBody(t, map[string]any{
		"product_id": skuID, "mode": "SET", "quantity": "4", "reason": "Contagem física",
	}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry struct {
		Type     string `json:"type"`
		Quantity string `json:"quantity"`
	}
	decodeJSON(t, resp, &entry)
	assert.Equal(t, "OUT", entry.Type)
	assert.Equal(t, "6", decimal.RequireFromString(entry.Quantity).String())

	// SET again to the same value: 200 with no entry
	resp = do(t, env.server, "POST", "/v1/inventory/adjust", jsonBody(t, map[string]any{
		"product_id": skuID, "mode": "SET", "quantity": "4",
	}), env.token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
