package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-dashboard/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Dashboard     *handlers.DashboardHandler
	Imports       *handlers.ImportsHandler
	Tickets       *handlers.TicketsHandler
	Notifications *handlers.NotificationsHandler
	Relay         *handlers.RelayHandler
	APIKey        string
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	dashboard := api.Group("/dashboard")
	dashboard.Get("/table", cfg.Dashboard.Table)
	dashboard.Get("/kpis", cfg.Dashboard.KPIs)
	dashboard.Get("/charts", cfg.Dashboard.Charts)
	dashboard.Get("/options", cfg.Dashboard.Options)
	dashboard.Get("/export.csv", cfg.Dashboard.Export)
	dashboard.Get("/export.xlsx", cfg.Dashboard.ExportExcel)

	notifications := api.Group("/notifications")
	notifications.Get("/", cfg.Notifications.List)
	notifications.Get("/unread-count", cfg.Notifications.UnreadCount)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
	notifications.Post("/read-all", cfg.Notifications.MarkAllRead)

	// Mutations require the API key when one is configured.
	guarded := api.Group("", RequireAPIKey(cfg.APIKey))
	guarded.Post("/imports", cfg.Imports.Upload)

	tickets := guarded.Group("/tickets")
	tickets.Patch("/:id/status", cfg.Tickets.UpdateStatus)
	tickets.Patch("/:id/squad", cfg.Tickets.UpdateSquad)
	tickets.Patch("/:id/gmud", cfg.Tickets.UpdateGmud)
	tickets.Patch("/:id/assignee", cfg.Tickets.UpdateAssignee)
	tickets.Post("/:id/notes", cfg.Tickets.AddNote)

	guarded.All("/tracker/*", cfg.Relay.Relay)
}
