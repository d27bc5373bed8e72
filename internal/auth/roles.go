package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// RequireRole ensures the operator holds one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		op, ok := OperatorFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[op.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// WriteGuards returns the handlers placed in front of mutating routes. With
// auth disabled the list is empty and the routes stay open.
func WriteGuards(required bool, m *AuthMiddleware) []fiber.Handler {
	if !required || m == nil {
		return nil
	}
	return []fiber.Handler{m.Handle, RequireRole(domain.RoleAdmin)}
}
