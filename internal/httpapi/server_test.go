package httpapi_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
	"rentledger/internal/httpapi"
	"rentledger/internal/logging"
	"rentledger/internal/store"
	"rentledger/internal/testhelpers"
)

type envelope struct {
	Code    int             `json:"code"`
	Status  string          `json:"status"`
	Error   string          `json:"error"`
	Field   string          `json:"field"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiClient struct {
	t      *testing.T
	server *httpapi.Server
	token  string
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	db := testhelpers.NewDB(t)
	provider := auth.NewProvider(db, &auth.MemorySessionStore{}, []byte("secret"), auth.WithBcryptCost(bcrypt.MinCost))
	engine := billing.NewEngine(store.New(db), auth.ContextIdentity{})
	return &apiClient{t: t, server: httpapi.New(engine, provider, logging.Discard())}
}

func (a *apiClient) do(method, path string, body interface{}) (int, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.server.App().Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(a.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (a *apiClient) signIn() {
	a.t.Helper()
	status, _ := a.do(http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"email": "owner@example.com", "password": "long-enough", "country": "PH",
		"accept_terms": true, "accept_privacy": true,
	})
	require.Equal(a.t, http.StatusCreated, status)

	status, env := a.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "owner@example.com", "password": "long-enough",
	})
	require.Equal(a.t, http.StatusOK, status)
	var data struct {
		Token string `json:"token"`
	}
	require.NoError(a.t, json.Unmarshal(env.Data, &data))
	require.NotEmpty(a.t, data.Token)
	a.token = data.Token
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func TestHealth(t *testing.T) {
	c := newClient(t)
	status, env := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "success", env.Status)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	c := newClient(t)
	status, env := c.do(http.MethodGet, "/api/tenants", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", env.Error)

	c.token = "garbage"
	status, _ = c.do(http.MethodGet, "/api/ledger", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginWrongPassword(t *testing.T) {
	c := newClient(t)
	c.signIn()
	status, env := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email": "owner@example.com", "password": "nope-nope",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "unauthorized", env.Error)
}

func TestTenantValidationError(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, env := c.do(http.MethodPost, "/api/tenants", map[string]interface{}{
		"tenant_name": "Alice", "monthly_rent": "10000", "rent_due_day": 32,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "validation_error", env.Error)
	assert.Equal(t, "rent_due_day", env.Field)
}

func TestBillingFlow(t *testing.T) {
	c := newClient(t)
	c.signIn()

	status, env := c.do(http.MethodPost, "/api/tenants", map[string]interface{}{
		"tenant_name": "Alice", "monthly_rent": "10000", "rent_due_day": 31,
		"utilities": []string{"Water"},
	})
	require.Equal(t, http.StatusCreated, status, env.Message)
	var tenant struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tenant))

	status, env = c.do(http.MethodPost, "/api/rent/generate", map[string]string{"period": "2024-02"})
	require.Equal(t, http.StatusOK, status, env.Message)
	var gen struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &gen))
	assert.Equal(t, 1, gen.Count)

	status, env = c.do(http.MethodGet, "/api/rent", nil)
	require.Equal(t, http.StatusOK, status)
	var rent []struct {
		DueDate    string `json:"due_date"`
		TenantName string `json:"tenant_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rent))
	require.Len(t, rent, 1)
	assert.Contains(t, rent[0].DueDate, "2024-02-29")

	status, _ = c.do(http.MethodPost, "/api/utilities", map[string]interface{}{
		"tenant_id": tenant.ID, "utility_type": "Water", "charge_date": "2024-01-01", "amount": "500",
	})
	require.Equal(t, http.StatusCreated, status)
	status, _ = c.do(http.MethodPost, "/api/payments", map[string]interface{}{
		"tenant_id": tenant.ID, "amount": "500", "payment_date": "2024-01-05",
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = c.do(http.MethodGet, "/api/tenants/"+itoa(tenant.ID)+"/statement", nil)
	require.Equal(t, http.StatusOK, status)
	var stmt struct {
		Balance string `json:"balance"`
		Lines   []struct {
			RunningBalance string `json:"running_balance"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stmt))
	require.Len(t, stmt.Lines, 2)
	assert.Equal(t, "-500", stmt.Lines[0].RunningBalance)
	assert.Equal(t, "0", stmt.Balance)

	status, _ = c.do(http.MethodDelete, "/api/tenants/"+itoa(tenant.ID), nil)
	require.Equal(t, http.StatusOK, status)
	status, env = c.do(http.MethodGet, "/api/tenants/"+itoa(tenant.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Error)

	status, env = c.do(http.MethodGet, "/api/ledger", nil)
	require.Equal(t, http.StatusOK, status)
	var ledger []struct {
		TenantName string `json:"tenant_name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &ledger))
	require.Len(t, ledger, 2)
	assert.Equal(t, "N/A", ledger[0].TenantName)
}

func TestGenerateRentWithoutTenants(t *testing.T) {
	c := newClient(t)
	c.signIn()
	status, env := c.do(http.MethodPost, "/api/rent/generate", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "not_found", env.Error)
}
