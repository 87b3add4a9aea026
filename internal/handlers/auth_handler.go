package handlers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	"github.com/gofiber/fiber/v2"
)

// Authenticator checks credentials and issues a token for the matching user.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*dto.LoggedUser, error)
}

type AuthHandler struct {
	authService Authenticator
}

func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login answers 400, not 401, on bad credentials; 401 is reserved for the token gate.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.Credentials
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	loggedUser, err := h.authService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			slog.Warn("login rejected", "username", req.Username, "trace_id", middleware.RequestID(c))
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Username or password is incorrect",
			})
		}
		slog.Error("login failed", "action", "auth.login", "error", err.Error(), "trace_id", middleware.RequestID(c))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.JSON(loggedUser)
}
