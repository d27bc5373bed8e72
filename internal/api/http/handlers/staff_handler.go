package handlers

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/dto"
	"github.com/spec-kit/dreamhome-service/internal/domain"
	"github.com/spec-kit/dreamhome-service/internal/service"
	"github.com/spec-kit/dreamhome-service/internal/staffcache"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StaffService is the staff behaviour the handler needs.
type StaffService interface {
	List(ctx context.Context) ([]domain.Staff, error)
	Hire(ctx context.Context, in service.HireInput) (*domain.Staff, error)
	Update(ctx context.Context, update domain.StaffUpdate) (staffcache.Entry, error)
	Summary(staffNo string) (staffcache.Entry, error)
	RebuildCache(ctx context.Context) (int, error)
	ExportWorkbook(ctx context.Context) (*bytes.Buffer, error)
}

// StaffHandler exposes the /staff endpoints.
type StaffHandler struct {
	service StaffService
}

// NewStaffHandler constructs handler.
func NewStaffHandler(staffService StaffService) *StaffHandler {
	return &StaffHandler{service: staffService}
}

// List handles GET /staff.
func (h *StaffHandler) List(c *fiber.Ctx) error {
	staff, err := h.service.List(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.StaffResponse, 0, len(staff))
	for _, s := range staff {
		items = append(items, dto.NewStaffResponse(s))
	}
	return c.JSON(items)
}

// Hire handles POST /staff.
func (h *StaffHandler) Hire(c *fiber.Ctx) error {
	var req dto.HireStaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	staff, err := h.service.Hire(c.UserContext(), service.HireInput{
		StaffNo:   strings.TrimSpace(req.StaffNo),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  req.Position,
		Sex:       req.Sex,
		DOB:       req.DOB,
		Salary:    req.Salary.Float(),
		BranchNo:  strings.TrimSpace(req.BranchNo),
		Telephone: req.Telephone,
		Mobile:    req.Mobile,
		Email:     req.Email,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewHireStaffResponse(staff))
}

// Update handles PUT /staff and answers with the updated cache entry.
func (h *StaffHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateStaffRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	update := req.ToDomain()

	entry, err := h.service.Update(c.UserContext(), update)
	if err != nil {
		return err
	}
	return c.JSON([]dto.StaffSummaryResponse{{StaffNo: update.StaffNo, Entry: entry}})
}

// Summary handles GET /staff/:staffNo/summary.
func (h *StaffHandler) Summary(c *fiber.Ctx) error {
	staffNo := c.Params("staffNo")
	entry, err := h.service.Summary(staffNo)
	if err != nil {
		return err
	}
	return c.JSON(dto.StaffSummaryResponse{StaffNo: staffNo, Entry: entry})
}

// RebuildCache handles POST /staff/cache/rebuild.
func (h *StaffHandler) RebuildCache(c *fiber.Ctx) error {
	n, err := h.service.RebuildCache(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.CacheRebuildResponse{Entries: n})
}

// Export handles GET /staff/export.
func (h *StaffHandler) Export(c *fiber.Ctx) error {
	buf, err := h.service.ExportWorkbook(c.UserContext())
	if err != nil {
		return err
	}
	c.Attachment("staff.xlsx")
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}
