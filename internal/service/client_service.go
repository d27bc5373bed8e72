package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/events"
	"github.com/spec-kit/dreamhome-service/internal/repository"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// ClientService manages prospective tenants.
type ClientService struct {
	clients    repository.ClientRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewClientService constructs the service.
func NewClientService(clients repository.ClientRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ClientService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClientService{clients: clients, dispatcher: dispatcher, logger: logger}
}

// List returns all clients.
func (s *ClientService) List(ctx context.Context) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx)
	if err != nil {
		return nil, mapStoreError(err, "client", nil)
	}
	return clients, nil
}

// Get fetches one client.
func (s *ClientService) Get(ctx context.Context, clientNo string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, clientNo)
	if err != nil {
		return nil, mapStoreError(err, "client", map[string]any{"client_no": clientNo})
	}
	return client, nil
}

// Create registers a client; only the client number is mandatory.
func (s *ClientService) Create(ctx context.Context, client *domain.Client) error {
	if strings.TrimSpace(client.ClientNo) == "" {
		return apperrors.NewValidationError("client number is required to identify the client", nil)
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return mapStoreError(err, "client", map[string]any{"client_no": client.ClientNo})
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventClientCreated, client.ClientNo, nil))
	return nil
}

// Update writes telephone, email, preferred type and maximum rent.
func (s *ClientService) Update(ctx context.Context, update domain.ClientUpdate) error {
	if strings.TrimSpace(update.ClientNo) == "" {
		return apperrors.NewValidationError("client id is required", nil)
	}
	details := map[string]any{"client_no": update.ClientNo}

	exists, err := s.clients.Exists(ctx, update.ClientNo)
	if err != nil {
		return mapStoreError(err, "client", details)
	}
	if !exists {
		return apperrors.NewNotFound("client", details)
	}

	if err := s.clients.Update(ctx, update); err != nil {
		return mapStoreError(err, "client", details)
	}
	publish(ctx, s.dispatcher, s.logger, events.NewEvent(events.EventClientUpdated, update.ClientNo, nil))
	return nil
}
