package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Moussassoss/citizens-complaints/internal/api/http/handlers"
	"github.com/Moussassoss/citizens-complaints/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health          *handlers.HealthHandler
	Metrics         *handlers.MetricsHandler
	Complaints      *handlers.ComplaintsHandler
	StaffComplaints *handlers.StaffComplaintsHandler
	Auth            *handlers.AuthHandler
	Reference       *handlers.ReferenceHandler
	AuthMiddleware  *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Metrics.Snapshot)

	api := app.Group("/api/v1")

	complaints := api.Group("/complaints")
	complaints.Post("/", cfg.Complaints.Submit)
	complaints.Get("/:ticketID", cfg.Complaints.Track)

	reference := api.Group("/reference")
	reference.Get("/categories", cfg.Reference.Categories)
	reference.Get("/agencies", cfg.Reference.Agencies)
	reference.Get("/statuses", cfg.Reference.Statuses)
	reference.Get("/locations", cfg.Reference.Locations)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.AuthMiddleware.Attach, cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Attach, cfg.Auth.Logout)
	authGroup.Get("/session", cfg.AuthMiddleware.Handle, cfg.Auth.Session)

	staff := api.Group("/staff", cfg.AuthMiddleware.Handle, auth.RequireSignedIn())
	staff.Get("/complaints", cfg.StaffComplaints.List)
	staff.Get("/complaints/stats", cfg.StaffComplaints.Stats)
	staff.Get("/complaints/:ticketID/history", cfg.StaffComplaints.History)
	staff.Patch("/complaints/:ticketID/status", cfg.StaffComplaints.UpdateStatus)
}
