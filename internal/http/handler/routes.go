package handler

import (
	"github.com/gofiber/fiber/v2"

	"farmapi/internal/service"
	"farmapi/internal/storage"
)

// RegisterRoutes attaches the API, health and upload routes to the provided Fiber app.
// apiMiddleware runs in front of the /api group only.
func RegisterRoutes(app *fiber.App, svc service.AssistantService, store storage.Storage, apiMiddleware ...fiber.Handler) {
	app.Get("/health", HealthCheck(store))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", apiMiddleware...)
	api.Post("/query", AskQuery(svc))
	api.Post("/analyze-image", AnalyzeImage(svc))
	api.Get("/weather", GetWeather(svc))
	api.Post("/contact", SubmitContact(svc))

	app.Get("/uploads/:filename", ServeUpload(store))
}
