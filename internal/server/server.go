package server

import (
	"errors"
	"strings"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"farmapi/docs"
	"farmapi/internal/config"
	handlers "farmapi/internal/http/handler"
	"farmapi/internal/http/middleware"
	"farmapi/internal/service"
	"farmapi/internal/storage"
)

// Deps are the collaborators the server does not build itself.
type Deps struct {
	Logger *zap.Logger
	// Registry receives the HTTP metrics and backs /metrics. A fresh registry is used when nil.
	Registry *prometheus.Registry
	Store    storage.Storage
}

// New assembles the HTTP application. Everything it needs comes from cfg and deps, so
// several instances can live in one process.
func New(cfg *config.AppConfig, deps Deps) (*fiber.App, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if deps.Store == nil {
		return nil, errors.New("storage is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	svc := service.NewAssistantService(deps.Store, logger)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(logger),
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	// Logger and metrics sit outside recover so panics are recorded as 500s.
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))

	if cfg.MetricsEnabled {
		reg := deps.Registry
		if reg == nil {
			reg = prometheus.NewRegistry()
		}
		prom, err := middleware.NewPrometheusMiddleware(reg)
		if err != nil {
			return nil, err
		}
		app.Use(prom.Handler())
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	app.Use(fiberrecover.New())
	app.Use(cors.New())

	if cfg.SwaggerEnabled {
		// Swagger UI with dynamic host and scheme
		app.Get("/swagger/*", func(c *fiber.Ctx) error {
			scheme := c.Protocol()
			if proto := c.Get(fiber.HeaderXForwardedProto); proto != "" {
				scheme = strings.Split(proto, ",")[0]
			}

			docs.SwaggerInfo.Host = c.Get(fiber.HeaderHost)
			docs.SwaggerInfo.Schemes = []string{scheme}

			return swagger.HandlerDefault(c)
		})
	}

	handlers.RegisterRoutes(app, svc, deps.Store,
		middleware.RateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
	)

	// Frontend bundle last so it never shadows API or upload routes.
	app.Static("/", cfg.PublicDir)

	return app, nil
}
