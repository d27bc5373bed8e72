package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

const principalKey = "auth_operator"

// AuthMiddleware validates bearer tokens and stores the operator in locals.
type AuthMiddleware struct {
	tokens *TokenManager
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	c.Locals(principalKey, &domain.Operator{Email: claims.Email, Role: claims.Role})
	return c.Next()
}

// OperatorFromContext retrieves the authenticated operator.
func OperatorFromContext(c *fiber.Ctx) (*domain.Operator, bool) {
	op, ok := c.Locals(principalKey).(*domain.Operator)
	return op, ok && op != nil
}
