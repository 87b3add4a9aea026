package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/models"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources/customers"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/testutil"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

type testServer struct {
	app   *fiber.App
	db    *gorm.DB
	token string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	cfg := testutil.Config()
	modules := Modules()
	var modelList []interface{}
	for _, m := range modules {
		modelList = append(modelList, m.Models()...)
	}
	db := testutil.NewDB(t, cfg, modelList...)

	require.NoError(t, db.Create(&[]customers.Customer{
		{CustomerID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: strPtr("Maria Anders"), City: strPtr("Berlin")},
		{CustomerID: "ANATR", CompanyName: "Ana Trujillo Emparedados y helados"},
	}).Error)
	require.NoError(t, db.Create(&customers.Order{OrderID: 1, CustomerID: "ALFKI"}).Error)

	auth := services.NewAuthService(db, services.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry))
	require.NoError(t, auth.SeedUser(context.Background(), models.User{
		Firstname: "Nancy", Lastname: "Davolio", Username: "nancy", AccessLevel: 1,
	}, "secret"))

	s := &testServer{app: New(cfg, db, modules), db: db}

	resp := s.do(t, http.MethodPost, "/api/authentication", dto.Credentials{Username: "nancy", Password: "secret"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var logged dto.LoggedUser
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&logged))
	require.NotEmpty(t, logged.Token)
	s.token = logged.Token
	return s
}

func (s *testServer) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (s *testServer) do(t *testing.T, method, path string, body any) *http.Response {
	t.Helper()
	return s.request(t, method, path, s.token, body)
}

func listCustomers(t *testing.T, s *testServer) []customers.Customer {
	t.Helper()
	resp := s.do(t, http.MethodGet, "/api/customers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var list []customers.Customer
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	return list
}

func TestServer_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	resp := s.request(t, http.MethodGet, "/api/hello", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "Hello, World!", string(body))

	resp = s.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var health dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "ok", health.DB)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
}

func TestServer_LoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)

	resp := s.request(t, http.MethodPost, "/api/authentication", "", dto.Credentials{Username: "nancy", Password: "wrong"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestServer_ProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/api/customers"},
		{http.MethodGet, "/api/customers/ALFKI"},
		{http.MethodGet, "/api/customers/company/Alf"},
		{http.MethodPost, "/api/customers"},
		{http.MethodPut, "/api/customers/ALFKI"},
		{http.MethodDelete, "/api/customers/ALFKI"},
		{http.MethodGet, "/api/products"},
	}
	for _, p := range paths {
		resp := s.request(t, p.method, p.path, "", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s without token", p.method, p.path)

		resp = s.request(t, p.method, p.path, "not.a.jwt", nil)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, "%s %s with malformed token", p.method, p.path)
	}

	// Rejected requests must not have touched the store.
	var count int64
	require.NoError(t, s.db.Model(&customers.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestServer_CustomerLifecycle(t *testing.T) {
	s := newTestServer(t)

	assert.Len(t, listCustomers(t, s), 2)

	// Orders
	resp := s.do(t, http.MethodGet, "/api/customers/ALFKI", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orders []customers.Order
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&orders))
	require.Len(t, orders, 1)
	assert.Equal(t, 1, orders[0].OrderID)

	resp = s.do(t, http.MethodGet, "/api/customers/MISSING", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// Create
	resp = s.do(t, http.MethodPost, "/api/customers", customers.Customer{CustomerID: "NEW01", CompanyName: "New Co"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, listCustomers(t, s), 3)

	resp = s.do(t, http.MethodPost, "/api/customers", customers.Customer{CustomerID: "NEW01", CompanyName: "Other Co"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	resp = s.do(t, http.MethodPost, "/api/customers", customers.Customer{CustomerID: "NEW02", CompanyName: "Alfreds Futterkiste"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Len(t, listCustomers(t, s), 3)

	// Full replace clears omitted fields
	resp = s.do(t, http.MethodPut, "/api/customers/ALFKI", map[string]string{"companyName": "Updated Name"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var alfki customers.Customer
	require.NoError(t, s.db.First(&alfki, "customer_id = ?", "ALFKI").Error)
	assert.Equal(t, "Updated Name", alfki.CompanyName)
	assert.Nil(t, alfki.ContactName)
	assert.Nil(t, alfki.City)

	// Delete cascades to orders, repeat is a no-op
	resp = s.do(t, http.MethodDelete, "/api/customers/ALFKI", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var orderCount int64
	require.NoError(t, s.db.Model(&customers.Order{}).Where("customer_id = ?", "ALFKI").Count(&orderCount).Error)
	assert.Zero(t, orderCount)

	resp = s.do(t, http.MethodDelete, "/api/customers/ALFKI", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Len(t, listCustomers(t, s), 2)
}

func TestServer_UnknownAPIRouteIsGated(t *testing.T) {
	s := newTestServer(t)

	resp := s.request(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
