package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/dto"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// parseBody decodes the request body and maps decode failures to
// validation errors.
func parseBody(c *fiber.Ctx, out any) error {
	err := c.BodyParser(out)
	if err == nil {
		return nil
	}
	var amountErr *dto.InvalidAmountError
	if errors.As(err, &amountErr) {
		return apperrors.NewValidationError("amount must be numeric", map[string]any{"value": amountErr.Raw})
	}
	return apperrors.NewValidationError("invalid payload", nil)
}
