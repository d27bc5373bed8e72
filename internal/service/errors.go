package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// mapStoreError turns tagged repository errors into API errors.
func mapStoreError(err error, resource string, details map[string]any) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NewNotFound(resource, details)
	case errors.Is(err, repository.ErrDuplicate):
		return apperrors.NewConflict(resource+" already exists", details)
	case errors.Is(err, repository.ErrForeignKey):
		return apperrors.NewValidationError("referenced record does not exist", details)
	case errors.Is(err, repository.ErrInvalidInput):
		return apperrors.NewValidationError("invalid "+resource+" data", details)
	}
	return apperrors.NewInternalError(err)
}

func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID),
			zap.Error(err))
	}
}
