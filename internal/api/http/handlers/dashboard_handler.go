package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/dto"
	"github.com/spec-kit/ticket-dashboard/internal/dataset"
	"github.com/spec-kit/ticket-dashboard/internal/service"
)

// DashboardHandler serves the table, KPI and chart views.
type DashboardHandler struct {
	dashboard *service.DashboardService
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Table GET /api/dashboard/table.
func (h *DashboardHandler) Table(c *fiber.Ctx) error {
	page := h.dashboard.TableView(parseQuery(c))
	return c.JSON(dto.TableResponseFrom(page, h.dashboard.CapturedAt()))
}

// KPIs GET /api/dashboard/kpis.
func (h *DashboardHandler) KPIs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.KPIs(parseQuery(c))})
}

// Charts GET /api/dashboard/charts.
func (h *DashboardHandler) Charts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.Charts(parseQuery(c))})
}

// Options GET /api/dashboard/options.
func (h *DashboardHandler) Options(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.dashboard.Options()})
}

// Export GET /api/dashboard/export.csv.
func (h *DashboardHandler) Export(c *fiber.Ctx) error {
	out, err := h.dashboard.ExportCSV(parseQuery(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.csv"`)
	return c.Send(out)
}

// ExportExcel GET /api/dashboard/export.xlsx.
func (h *DashboardHandler) ExportExcel(c *fiber.Ctx) error {
	out, err := h.dashboard.ExportExcel(parseQuery(c))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="tickets.xlsx"`)
	return c.Send(out)
}

// parseQuery maps request parameters onto a dataset query. A "projects"
// parameter left off the request means unconstrained; an explicit empty
// selection excludes everything.
func parseQuery(c *fiber.Ctx) dataset.Query {
	q := dataset.Query{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		State:    c.Query("state"),
		Category: c.Query("category"),
		Owner:    c.Query("owner"),
		Assignee: c.Query("assignee"),
		Sort:     dataset.ParseColumn(c.Query("sort")),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	}

	if c.Request().URI().QueryArgs().Has("projects") {
		q.Projects = splitList(c.Query("projects"))
	}
	q.Squads = splitList(c.Query("squads"))
	if c.Request().URI().QueryArgs().Has("states") {
		q.States = splitList(c.Query("states"))
	}

	if c.Query("direction") == "desc" {
		q.Direction = -1
	} else {
		q.Direction = 1
	}

	if from, err := time.Parse("2006-01-02", c.Query("from")); err == nil {
		q.From = from
	}
	if to, err := time.Parse("2006-01-02", c.Query("to")); err == nil {
		q.To = to
	}
	return q
}

// splitList parses a comma-separated multi-select. The returned slice
// is non-nil even when empty, so "present but empty" keeps its meaning.
func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
