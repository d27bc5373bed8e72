package handlers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/dto"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// Authenticator issues operator tokens.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (domain.Token, error)
}

// AuthHandler exposes POST /auth/login.
type AuthHandler struct {
	auth Authenticator
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService Authenticator) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	token, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AuthResponse{Token: token.Value, ExpiresAt: token.ExpiresAt}})
}
