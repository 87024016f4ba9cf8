package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/internhub/api/http/handlers"
)

// Handlers groups everything Register mounts.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Health      *handlers.HealthHandler
	Application *handlers.ApplicationHandler
	Admin       *handlers.AdminHandler
}

// Guards are applied in order to every /admin route except login.
type Guards struct {
	Admin  []fiber.Handler
	Submit fiber.Handler
}

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, h Handlers, g Guards) {
	api := app.Group("/api")
	v1 := api.Group("/v1")

	// Health and readiness endpoints for probes/monitoring
	v1.Get("/health", h.Health.Health)
	v1.Get("/ready", h.Health.Ready)

	apps := v1.Group("/applications")
	if g.Submit != nil {
		apps.Post("/", g.Submit, h.Application.Submit)
	} else {
		apps.Post("/", h.Application.Submit)
	}
	apps.Post("/track", h.Application.Track)
	apps.Get("/:id", h.Application.Get)

	v1.Post("/admin/login", h.Auth.Login)

	admin := v1.Group("/admin", g.Admin...)
	admin.Get("/applications", h.Admin.List)
	admin.Get("/applications/:id", h.Admin.Detail)
	admin.Post("/applications/:id/rescore", h.Admin.Rescore)
	admin.Get("/export", h.Admin.Export)
}
