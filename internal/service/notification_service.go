package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/config"
	"github.com/spec-kit/dreamhome-service/internal/events"
)

// NotificationEvents lists the event types that produce notifications.
var NotificationEvents = []events.EventType{
	events.EventStaffHired,
	events.EventStaffUpdated,
	events.EventBranchCreated,
	events.EventBranchUpdated,
	events.EventClientCreated,
	events.EventClientUpdated,
}

// NotificationService handles emitting notifications for domain events.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{logger: logger, cfg: cfg}
}

// Handle delivers the notifications for one event.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventStaffHired:
		n.logger.Info("StaffHired", zap.String("staff_no", event.EntityID), zap.Any("payload", event.Payload))
		n.sendEmailNotificationStub(ctx, event)
		n.sendWebhookNotificationStub(ctx, event)
	case events.EventStaffUpdated:
		n.logger.Info("StaffUpdated", zap.String("staff_no", event.EntityID), zap.Any("payload", event.Payload))
		n.sendWebhookNotificationStub(ctx, event)
	default:
		n.logger.Info("RecordChanged",
			zap.String("event_type", string(event.Type)),
			zap.String("entity_id", event.EntityID))
		n.sendWebhookNotificationStub(ctx, event)
	}
	return nil
}

// welcome mail for the new hire
func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("entity_id", event.EntityID),
		zap.String("event_type", string(event.Type)))
}
