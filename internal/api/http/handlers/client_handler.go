package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/dto"
	"github.com/spec-kit/dreamhome-service/internal/domain"
)

// ClientService is the client behaviour the handler needs.
type ClientService interface {
	List(ctx context.Context) ([]domain.Client, error)
	Get(ctx context.Context, clientNo string) (*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) error
	Update(ctx context.Context, update domain.ClientUpdate) error
}

// ClientHandler exposes the /client endpoints.
type ClientHandler struct {
	service ClientService
}

// NewClientHandler constructs handler.
func NewClientHandler(clientService ClientService) *ClientHandler {
	return &ClientHandler{service: clientService}
}

// List handles GET /client.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	clients, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, cl := range clients {
		items = append(items, dto.NewClientResponse(cl))
	}
	return c.JSON(items)
}

// Get handles GET /client/:clientNo.
func (h *ClientHandler) Get(c *fiber.Ctx) error {
	client, err := h.service.Get(c.UserContext(), c.Params("clientNo"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewClientResponse(*client))
}

// Create handles POST /client.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	client := req.ToDomain()
	if err := h.service.Create(c.UserContext(), client); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Client inserted successfully",
		"client":  dto.NewClientResponse(*client),
	})
}

// Update handles PUT /client.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateClientRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := h.service.Update(c.UserContext(), req.ToDomain()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Client information updated successfully"})
}
