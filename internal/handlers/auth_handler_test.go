package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*dto.LoggedUser, error) {
	args := m.Called(username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoggedUser), args.Error(1)
}

func newAuthApp(auth Authenticator) *fiber.App {
	app := fiber.New()
	app.Post("/api/authentication", NewAuthHandler(auth).Login)
	return app
}

func postCredentials(t *testing.T, app *fiber.App, body []byte) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/authentication", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "nancy", "secret").Return(&dto.LoggedUser{
		UserID: 1, Firstname: "Nancy", Lastname: "Davolio", Username: "nancy", AccessLevel: 1, Token: "signed.jwt.token",
	}, nil)

	status, body := postCredentials(t, newAuthApp(auth), []byte(`{"username":"nancy","password":"secret"}`))

	assert.Equal(t, fiber.StatusOK, status)
	var logged map[string]any
	require.NoError(t, json.Unmarshal(body, &logged))
	assert.Equal(t, "signed.jwt.token", logged["token"])
	assert.Equal(t, "nancy", logged["username"])
	assert.NotContains(t, logged, "password")
	auth.AssertExpectations(t)
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "nancy", "wrong").Return(nil, services.ErrInvalidCredentials)

	status, body := postCredentials(t, newAuthApp(auth), []byte(`{"username":"nancy","password":"wrong"}`))

	assert.Equal(t, fiber.StatusBadRequest, status)
	var errResp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, "Username or password is incorrect", errResp.Message)
	auth.AssertExpectations(t)
}

func TestAuthHandler_Login_StoreFailure(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Authenticate", "nancy", "secret").Return(nil, errors.New("connection refused"))

	status, _ := postCredentials(t, newAuthApp(auth), []byte(`{"username":"nancy","password":"secret"}`))

	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	auth := new(MockAuthenticator)

	status, _ := postCredentials(t, newAuthApp(auth), []byte("{invalid json}"))

	assert.Equal(t, fiber.StatusBadRequest, status)
	auth.AssertNumberOfCalls(t, "Authenticate", 0)
}
