package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/jobboard/internal/api/http/handlers"
	"github.com/spec-kit/jobboard/internal/auth"
	"github.com/spec-kit/jobboard/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Metrics        *handlers.MetricsHandler
	Auth           *handlers.AuthHandler
	Join           *handlers.JoinHandler
	Jobs           *handlers.JobsHandler
	Applications   *handlers.ApplicationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	if cfg.Health != nil {
		app.Get("/health/live", cfg.Health.Live)
		app.Get("/health/ready", cfg.Health.Ready)
	}
	if cfg.Metrics != nil {
		app.Get("/metrics", cfg.Metrics.Show)
	}

	gate := cfg.AuthMiddleware.Handle

	authGroup := app.Group("/auth")
	authGroup.Post("/volunteer-login", cfg.Auth.VolunteerLogin)
	authGroup.Post("/companies-login", cfg.Auth.CompanyLogin)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", gate, cfg.Auth.Me)

	join := app.Group("/join")
	join.Post("/volunteer", cfg.Join.Volunteer)
	join.Post("/companies", cfg.Join.Company)

	jobs := app.Group("/jobs")
	jobs.Get("/", cfg.Jobs.List)
	jobs.Get("/detail/:id", cfg.Jobs.Detail)
	jobs.Post("/", gate, auth.RequireRole(domain.RoleCompany), cfg.Jobs.Create)
	jobs.Patch("/:id", gate, cfg.Jobs.Update)
	jobs.Delete("/:id", gate, cfg.Jobs.Delete)

	applications := app.Group("/jobapplications", gate)
	applications.Get("/", cfg.Applications.ListMine)
	applications.Post("/:id", cfg.Applications.Submit)
}
