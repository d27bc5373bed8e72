package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dreamhome-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Staff  *handlers.StaffHandler
	Branch *handlers.BranchHandler
	Client *handlers.ClientHandler
	// WriteGuards run in front of every mutating route; empty leaves them open.
	WriteGuards []fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	write := func(h fiber.Handler) []fiber.Handler {
		chain := make([]fiber.Handler, 0, len(cfg.WriteGuards)+1)
		chain = append(chain, cfg.WriteGuards...)
		return append(chain, h)
	}

	app.Get("/", cfg.Health.Welcome)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	if cfg.Auth != nil {
		app.Post("/auth/login", cfg.Auth.Login)
	}

	staff := app.Group("/staff")
	staff.Get("/", cfg.Staff.List)
	staff.Get("/export", cfg.Staff.Export)
	staff.Get("/:staffNo/summary", cfg.Staff.Summary)
	staff.Post("/", write(cfg.Staff.Hire)...)
	staff.Put("/", write(cfg.Staff.Update)...)
	staff.Post("/cache/rebuild", write(cfg.Staff.RebuildCache)...)

	branch := app.Group("/branch")
	branch.Get("/", cfg.Branch.List)
	branch.Get("/:branchNo", cfg.Branch.Get)
	branch.Post("/", write(cfg.Branch.Create)...)
	branch.Put("/", write(cfg.Branch.Update)...)

	client := app.Group("/client")
	client.Get("/", cfg.Client.List)
	client.Get("/:clientNo", cfg.Client.Get)
	client.Post("/", write(cfg.Client.Create)...)
	client.Put("/", write(cfg.Client.Update)...)
}
