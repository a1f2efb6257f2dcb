package server

import (
	"log"

	"intellilab-gc-be/internal/bootstrap"
	"intellilab-gc-be/internal/config"
	"intellilab-gc-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.App.BodyLimitBytes,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type, Content-Disposition",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(container.Metrics.Handler()))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	log.Printf("Server is running on http://localhost:%s", s.cfg.App.Port)
	return s.app.Listen(":" + s.cfg.App.Port)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api/v1")

	c.InstrumentController.RegisterRoutes(api)
	c.MethodController.RegisterRoutes(api)
	c.CompoundController.RegisterRoutes(api)
	c.SampleController.RegisterRoutes(api)
	c.CostController.RegisterRoutes(api)

	c.CalibrationController.RegisterRoutes(api)
	c.InsightController.RegisterRoutes(api)
	c.OCRController.RegisterRoutes(api)
	c.SimulatorController.RegisterRoutes(api)
	c.DashboardController.RegisterRoutes(api)

	c.BrandingController.RegisterRoutes(api)
	c.LimsController.RegisterRoutes(api)
	c.TrainingController.RegisterRoutes(api)
	c.AdminController.RegisterRoutes(api)

	c.LiveFeedHandler.RegisterRoutes(app)
}
