package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util"
)

// TicketsHandler serves ticket write-back endpoints. Every mutation
// goes to the upstream tracker first; the local dataset only changes
// after the tracker confirms.
type TicketsHandler struct {
	dashboard *service.DashboardService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(dashboard *service.DashboardService) *TicketsHandler {
	return &TicketsHandler{dashboard: dashboard}
}

// UpdateStatus PATCH /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	value, err := parseValue(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.UpdateStatus(c.Context(), c.Params("id"), value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// UpdateSquad PATCH /api/tickets/:id/squad.
func (h *TicketsHandler) UpdateSquad(c *fiber.Ctx) error {
	value, err := parseValue(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.UpdateSquad(c.Context(), c.Params("id"), value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// UpdateGmud PATCH /api/tickets/:id/gmud.
func (h *TicketsHandler) UpdateGmud(c *fiber.Ctx) error {
	value, err := parseValue(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.UpdateGmud(c.Context(), c.Params("id"), value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// UpdateAssignee PATCH /api/tickets/:id/assignee.
func (h *TicketsHandler) UpdateAssignee(c *fiber.Ctx) error {
	value, err := parseValue(c)
	if err != nil {
		return err
	}
	if err := h.dashboard.UpdateAssignee(c.Context(), c.Params("id"), value); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"updated": true}})
}

// AddNote POST /api/tickets/:id/notes.
func (h *TicketsHandler) AddNote(c *fiber.Ctx) error {
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Text) == "" {
		return apperrors.NewValidationError("text required", nil)
	}
	if err := h.dashboard.AddNote(c.Context(), c.Params("id"), req.Text); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": fiber.Map{"created": true}})
}

func parseValue(c *fiber.Ctx) (string, error) {
	var req dto.UpdateFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return "", apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Value) == "" {
		return "", apperrors.NewValidationError("value required", nil)
	}
	return req.Value, nil
}
