package server

import (
	"log"

	"ai-hukum-web/internal/bootstrap"
	"ai-hukum-web/internal/config"
	"ai-hukum-web/internal/dto"
	"ai-hukum-web/internal/pkg/serverutils"
	"ai-hukum-web/internal/view"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    20 * 1024 * 1024, // 20MB, uploads are forwarded whole
		Views:        view.NewEngine(),
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
		// form values are kept in visitor state after the handler returns
		Immutable:    true,
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CorsAllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// OpenTelemetry tracing middleware (traces all HTTP requests)
	app.Use(otelfiber.Middleware())

	app.Get("/healthz", func(ctx *fiber.Ctx) error {
		return ctx.JSON(dto.HealthResponse{Name: cfg.App.Name, Status: "ok"})
	})

	// Routes
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
	web := app.Group("/", serverutils.VisitorMiddleware(c.Visitors))

	c.HomeController.RegisterRoutes(web)
	c.DraftController.RegisterRoutes(web)
	c.ReviewController.RegisterRoutes(web)
	c.HistoryController.RegisterRoutes(web)
	c.PageController.RegisterRoutes(web)
}
