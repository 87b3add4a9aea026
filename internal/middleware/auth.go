package middleware

import (
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JWTProtected rejects requests without a valid "Authorization: Bearer" token
// before any handler runs.
func JWTProtected(tokens *services.TokenService) fiber.Handler {
	return jwtware.New(jwtware.Config{
		KeyFunc: tokens.Keyfunc(),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// CurrentUsername returns the username claim of the verified token, if any.
func CurrentUsername(c *fiber.Ctx) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	username, _ := claims["username"].(string)
	return username
}

// RequestID returns the id assigned by the requestid middleware.
func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
