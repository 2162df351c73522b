package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doutly/doutly-service/internal/api/http/handlers"
	"github.com/doutly/doutly-service/internal/auth"
	"github.com/doutly/doutly-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Doubts         *handlers.DoubtsHandler
	Leads          *handlers.LeadsHandler
	Teams          *handlers.TeamsHandler
	Profile        *handlers.ProfileHandler
	Events         *handlers.EventsHandler
	Projects       *handlers.ProjectsHandler
	Dashboard      *handlers.DashboardHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	doubts := app.Group("/doubts", cfg.AuthMiddleware.Handle)
	doubts.Post("", cfg.Doubts.Submit)
	doubts.Get("/mine", cfg.Doubts.ListMine)
	doubts.Get("", auth.RequireRole(domain.RoleTutor, domain.RoleSubjectExpert, domain.RoleAdmin), cfg.Doubts.List)
	doubts.Post("/:id/assign", auth.RequireRole(domain.RoleTutor, domain.RoleSubjectExpert, domain.RoleAdmin), cfg.Doubts.Assign)
	doubts.Post("/:id/resolve", cfg.Doubts.Resolve)
	doubts.Delete("/:id", cfg.Doubts.Delete)

	leads := app.Group("/leads", cfg.AuthMiddleware.Handle, auth.RequireSalesRole())
	leads.Post("", cfg.Leads.Create)
	leads.Get("", cfg.Leads.List)
	leads.Post("/bulk-assign", cfg.Leads.BulkAssign)
	leads.Get("/:id", cfg.Leads.Get)
	leads.Patch("/:id", cfg.Leads.Update)
	leads.Post("/:id/assign", cfg.Leads.Assign)
	leads.Post("/:id/status", cfg.Leads.UpdateStatus)

	teams := app.Group("/teams", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleTeamLeader, domain.RoleAdmin))
	teams.Post("", cfg.Teams.Create)
	teams.Get("", cfg.Teams.List)
	teams.Post("/:id/members", cfg.Teams.AddMember)
	teams.Delete("/:id/members/:email", cfg.Teams.RemoveMember)

	app.Get("/profile", cfg.AuthMiddleware.Handle, cfg.Profile.Get)

	events := app.Group("/events", cfg.AuthMiddleware.Handle)
	events.Get("", cfg.Events.List)
	events.Post("", auth.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleVerticalHead), cfg.Events.Create)
	events.Post("/:id/register", cfg.Events.Register)
	events.Get("/:id/registrations", auth.RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleVerticalHead), cfg.Events.Registrations)

	projects := app.Group("/projects", cfg.AuthMiddleware.Handle)
	projects.Post("", cfg.Projects.Create)
	projects.Get("", cfg.Projects.List)

	app.Get("/dashboard", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleAdmin, domain.RoleVerticalHead, domain.RoleManager), cfg.Dashboard.Snapshot)

	notifications := app.Group("/notifications", cfg.AuthMiddleware.Handle)
	notifications.Get("", cfg.Notifications.List)
	notifications.Post("/:id/read", cfg.Notifications.MarkRead)
}
