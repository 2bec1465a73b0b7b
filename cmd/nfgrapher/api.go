package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/dukex/nfgrapher/pkg/registry"
	"github.com/dukex/nfgrapher/pkg/web"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"go.opentelemetry.io/otel/trace"
)

type API struct {
	logger   *slog.Logger
	registry *registry.Registry
	tracer   trace.Tracer
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	registry *registry.Registry,
	tracer trace.Tracer,
) *API {
	return &API{
		logger:   logger,
		registry: registry,
		tracer:   tracer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.logger, a.validate, a.registry, a.tracer)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("nfgrapher API")
	})

	app.Get("/schema", handlers.GetScoreSchema)

	k := app.Group("/kinds")
	k.Get("/", handlers.GetKinds)
	k.Get("/:kind", handlers.GetKind)

	s := app.Group("/scores")
	s.Post("/validate", handlers.ValidateScore)
	s.Post("/normalize", handlers.NormalizeScore)

	return app
}

// Start serves the API on port until ctx is cancelled.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	go func() {
		<-ctx.Done()

		if err := app.Shutdown(); err != nil {
			a.logger.Error("Failed to shut down API", "error", err)
		}
	}()

	return app.Listen(":"+strconv.Itoa(port), fiber.ListenConfig{DisableStartupMessage: true})
}
