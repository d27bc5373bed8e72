package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/dto"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

// BranchService is the branch behaviour the handler needs.
type BranchService interface {
	List(ctx context.Context) ([]domain.Branch, error)
	Get(ctx context.Context, branchNo string) (*domain.Branch, error)
	Create(ctx context.Context, branch *domain.Branch) error
	Update(ctx context.Context, update domain.BranchUpdate) (*domain.Branch, error)
}

// BranchHandler exposes the /branch endpoints.
type BranchHandler struct {
	service BranchService
}

// NewBranchHandler constructs handler.
func NewBranchHandler(branchService BranchService) *BranchHandler {
	return &BranchHandler{service: branchService}
}

// List handles GET /branch.
func (h *BranchHandler) List(c *fiber.Ctx) error {
	branches, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		items = append(items, dto.NewBranchResponse(b))
	}
	return c.JSON(items)
}

// Get handles GET /branch/:branchNo. A missing branch is answered with
// {exists:false} rather than the error envelope.
func (h *BranchHandler) Get(c *fiber.Ctx) error {
	branch, err := h.service.Get(c.UserContext(), c.Params("branchNo"))
	if apperrors.IsCode(err, "NOT_FOUND") {
		return c.Status(http.StatusNotFound).JSON(dto.BranchLookupResponse{Exists: false, Message: "Branch not found"})
	}
	if err != nil {
		return err
	}
	resp := dto.NewBranchResponse(*branch)
	return c.JSON(dto.BranchLookupResponse{Exists: true, Branch: &resp})
}

// Create handles POST /branch.
func (h *BranchHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBranchRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	branch := req.ToDomain()
	if err := h.service.Create(c.UserContext(), branch); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "New branch created successfully.",
		"branch":  dto.NewBranchResponse(*branch),
	})
}

// Update handles PUT /branch and answers with a plain text confirmation.
func (h *BranchHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBranchRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if _, err := h.service.Update(c.UserContext(), req.ToDomain()); err != nil {
		return err
	}
	return c.SendString("Branch updated successfully")
}
