package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mistatas/soporte-service/internal/api/http/handlers"
	"github.com/mistatas/soporte-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Stream         *handlers.StreamHandler
	Technicians    *handlers.TechniciansHandler
	Amaia          *handlers.AmaiaHandler
	Reports        *handlers.ReportsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Users.Logout)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Users.Me)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	api.Get("/tickets/dashboard", cfg.Tickets.Dashboard)
	api.Get("/tickets/calendar", cfg.Tickets.Calendar)
	api.Get("/tickets/stream", cfg.Stream.Stream)
	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Put("/tickets/:id", cfg.Tickets.UpdateTicket)
	api.Post("/tickets/:id/status", cfg.Tickets.ChangeStatus)
	api.Delete("/tickets/:id", cfg.Tickets.DeleteTicket)

	api.Get("/technicians", cfg.Technicians.List)

	api.Post("/amaia/import", cfg.Amaia.Import)
	api.Get("/amaia/tickets", cfg.Amaia.List)
	api.Get("/amaia/metrics", cfg.Amaia.Metrics)

	api.Get("/reports/route", cfg.Reports.RouteSheet)
	api.Get("/reports/period", cfg.Reports.PeriodReport)
}
