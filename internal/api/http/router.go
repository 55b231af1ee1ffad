package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/access-gate/internal/api/http/handlers"
	"github.com/spec-kit/access-gate/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Views  *handlers.ViewsHandler
	Guard  *ViewGuard
}

// RegisterRoutes wires HTTP routes. Guarded views name their required role;
// a nil requirement admits any authenticated user.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)

	admin := domain.RoleAdmin
	industrial := domain.RoleIndustrial
	individual := domain.RoleIndividual

	app.Get("/dashboard", cfg.Guard.Protect(nil, cfg.Views.Dashboard))
	app.Get("/admin", cfg.Guard.Protect(&admin, cfg.Views.AdminPanel))
	app.Get("/industrial", cfg.Guard.Protect(&industrial, cfg.Views.IndustrialConsole))
	app.Get("/account", cfg.Guard.Protect(&individual, cfg.Views.Account))
}
