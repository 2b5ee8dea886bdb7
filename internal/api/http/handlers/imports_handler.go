package handlers

import (
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/ingest"
	"github.com/spec-kit/ticket-dashboard/internal/service"
	apperrors "github.com/spec-kit/ticket-dashboard/pkg/util"
)

// ImportsHandler accepts ticket export uploads.
type ImportsHandler struct {
	dashboard *service.DashboardService
}

// NewImportsHandler constructs handler.
func NewImportsHandler(dashboard *service.DashboardService) *ImportsHandler {
	return &ImportsHandler{dashboard: dashboard}
}

// Upload POST /api/imports. Accepts a CSV or XLSX export under the
// "file" form field and replaces the dataset with its contents.
func (h *ImportsHandler) Upload(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file upload required", nil)
	}

	file, err := header.Open()
	if err != nil {
		return apperrors.NewValidationError("unreadable upload", nil)
	}
	defer file.Close()

	var rows []map[string]string
	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xls":
		rows, err = ingest.ReadExcel(file)
	default:
		rows, err = ingest.ReadCSV(file)
	}
	if err != nil {
		return apperrors.NewValidationError("could not parse export file", map[string]any{
			"filename": header.Filename,
			"reason":   err.Error(),
		})
	}

	count, err := h.dashboard.Import(c.Context(), rows, header.Filename)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.ImportResponse{Rows: count, Filename: header.Filename},
	})
}
