//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - Full sale cycle (login → open drawer → sale → stock + drawer checks)
//   - Sale cancellation restores stock
//   - Cash session lifecycle with variance
//   - Single-open-session invariant under a second open attempt

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sergiom84/Lucy3000/internal/config"
	"github.com/Sergiom84/Lucy3000/internal/infra"
	"github.com/Sergiom84/Lucy3000/internal/router"
	"github.com/Sergiom84/Lucy3000/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

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

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("lucy3000_test"),
		tcPostgres.WithUsername("lucy3000"),
		tcPostgres.WithPassword("lucy3000"),
		tcPostgres.BasicWaitStrategies(),
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
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		BusinessName:       "Lucy3000 Test",
		PDFStoragePath:     t.TempDir(),
		SaleNumPrefix:      "V",
	}

	// NewDatabase migrates the throwaway container's schema on connect
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("e2e-password"), 12)
	require.NoError(t, err)
	err = db.Exec(`INSERT INTO users (id, email, name, password_hash, role, is_active, created_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E', ?, 'ADMIN', true, NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error
	require.NoError(t, err)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/api/auth/login",
		jsonBody(t, map[string]string{"email": "admin@e2e.test", "password": "e2e-password"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken, engine: r}
}

func createProduct(t *testing.T, env *testEnv, sku string, price float64, stock int) string {
	t.Helper()
	resp := do(t, env.server, "POST", "/api/products",
		jsonBody(t, map[string]any{
			"sku": sku, "name": "Product " + sku, "category": "retail",
			"price": price, "cost": price / 2, "stock": stock, "min_stock": 1,
		}), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var prod struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &prod)
	return prod.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_FullSaleCycle(t *testing.T) {
	env := setupTestEnv(t)

	productID := createProduct(t, env, "SHAMP-01", 10.00, 20)

	// Open the drawer
	openResp := do(t, env.server, "POST", "/api/cash/open",
		jsonBody(t, map[string]any{"opening_balance": 100.0}), env.token)
	require.Equal(t, http.StatusCreated, openResp.StatusCode)
	var session struct {
		ID string `json:"id"`
	}
	decodeJSON(t, openResp, &session)

	// Cash sale of 3 units
	saleResp := do(t, env.server, "POST", "/api/sales",
		jsonBody(t, map[string]any{
			"items": []map[string]any{
				{"product_id": productID, "description": "Shampoo", "quantity": 3, "price": 10.00},
			},
			"payment_method": "CASH",
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID         string `json:"id"`
		SaleNumber string `json:"sale_number"`
		Total      string `json:"total"`
		Status     string `json:"status"`
	}
	decodeJSON(t, saleResp, &sale)
	assert.Equal(t, "V-000001", sale.SaleNumber)
	assert.Equal(t, "COMPLETED", sale.Status)
	assert.Equal(t, "30", sale.Total)

	// Stock decremented 20 → 17
	prodResp := do(t, env.server, "GET", "/api/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 17, prod.Stock)

	// Drawer shows the INCOME movement: 100 + 30
	currentResp := do(t, env.server, "GET", "/api/cash/current", nil, env.token)
	require.Equal(t, http.StatusOK, currentResp.StatusCode)
	var current struct {
		CurrentBalance string `json:"current_balance"`
		Movements      []struct {
			Type   string `json:"type"`
			Amount string `json:"amount"`
		} `json:"movements"`
	}
	decodeJSON(t, currentResp, &current)
	assert.Equal(t, "130", current.CurrentBalance)
	require.Len(t, current.Movements, 1)
	assert.Equal(t, "INCOME", current.Movements[0].Type)

	// Listed
	listResp := do(t, env.server, "GET", "/api/sales", nil, env.token)
	require.Equal(t, http.StatusOK, listResp.StatusCode)
	var list struct {
		Total int64 `json:"total"`
	}
	decodeJSON(t, listResp, &list)
	assert.EqualValues(t, 1, list.Total)
}

func TestE2E_CancelSaleRestoresStock(t *testing.T) {
	env := setupTestEnv(t)

	productID := createProduct(t, env, "SERUM-01", 40.00, 10)

	saleResp := do(t, env.server, "POST", "/api/sales",
		jsonBody(t, map[string]any{
			"items": []map[string]any{
				{"product_id": productID, "description": "Serum", "quantity": 4, "price": 40.00},
			},
			"payment_method": "CARD",
		}), env.token)
	require.Equal(t, http.StatusCreated, saleResp.StatusCode)
	var sale struct {
		ID string `json:"id"`
	}
	decodeJSON(t, saleResp, &sale)

	cancelResp := do(t, env.server, "POST", "/api/sales/"+sale.ID+"/cancel",
		jsonBody(t, map[string]any{"reason": "entered by mistake"}), env.token)
	assert.Equal(t, http.StatusNoContent, cancelResp.StatusCode)

	prodResp := do(t, env.server, "GET", "/api/products/"+productID, nil, env.token)
	require.Equal(t, http.StatusOK, prodResp.StatusCode)
	var prod struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, prodResp, &prod)
	assert.Equal(t, 10, prod.Stock)

	// Second cancel conflicts
	againResp := do(t, env.server, "POST", "/api/sales/"+sale.ID+"/cancel",
		jsonBody(t, map[string]any{"reason": "entered by mistake"}), env.token)
	assert.Equal(t, http.StatusConflict, againResp.StatusCode)
}

func TestE2E_CashSessionLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	openResp := do(t, env.server, "POST", "/api/cash/open",
		jsonBody(t, map[string]any{"opening_balance": 200.0}), env.token)
	require.Equal(t, http.StatusCreated, openResp.StatusCode)
	var session struct {
		ID string `json:"id"`
	}
	decodeJSON(t, openResp, &session)

	// Manual expense of 50
	movResp := do(t, env.server, "POST", "/api/cash/"+session.ID+"/movements",
		jsonBody(t, map[string]any{
			"type": "EXPENSE", "amount": 50.0,
			"category": "supplies", "description": "towels restock",
		}), env.token)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)

	// Close counting 145: expected 150 → variance -5
	closeResp := do(t, env.server, "POST", "/api/cash/"+session.ID+"/close",
		jsonBody(t, map[string]any{"closing_balance": 145.0}), env.token)
	require.Equal(t, http.StatusOK, closeResp.StatusCode)
	var closed struct {
		Status          string  `json:"status"`
		ExpectedBalance *string `json:"expected_balance"`
		Variance        *string `json:"variance"`
	}
	decodeJSON(t, closeResp, &closed)
	assert.Equal(t, "CLOSED", closed.Status)
	require.NotNil(t, closed.ExpectedBalance)
	require.NotNil(t, closed.Variance)
	assert.Equal(t, "150", *closed.ExpectedBalance)
	assert.Equal(t, "-5", *closed.Variance)

	// A new session can open now
	reopenResp := do(t, env.server, "POST", "/api/cash/open",
		jsonBody(t, map[string]any{"opening_balance": 145.0}), env.token)
	assert.Equal(t, http.StatusCreated, reopenResp.StatusCode)
}

func TestE2E_SingleOpenSession(t *testing.T) {
	env := setupTestEnv(t)

	first := do(t, env.server, "POST", "/api/cash/open",
		jsonBody(t, map[string]any{"opening_balance": 100.0}), env.token)
	require.Equal(t, http.StatusCreated, first.StatusCode)

	second := do(t, env.server, "POST", "/api/cash/open",
		jsonBody(t, map[string]any{"opening_balance": 100.0}), env.token)
	assert.Equal(t, http.StatusConflict, second.StatusCode)
}
