package main

import (
	"log"
	"os"
	"os/signal"
	"slices"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/customchess/chessdb/internal/config"
	"github.com/customchess/chessdb/internal/database"
	"github.com/customchess/chessdb/internal/handlers"
	"github.com/customchess/chessdb/internal/middleware"
	"github.com/customchess/chessdb/internal/types"
	"github.com/customchess/chessdb/internal/variant"

	_ "github.com/customchess/chessdb/docs/api" // Swagger docs
)

// @title Custom Chess API
// @version 1.0.0
// @description Catalog and customization API for the Custom Chess storefront

// @contact.name API Support
// @contact.url https://github.com/customchess/chessdb

// @host localhost:3001
// @BasePath /api
// @schemes http https

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Build the variant resolver from explicit configuration
	variantCfg := variant.DefaultConfig()
	variantCfg.Strategy = variant.ParseStrategy(cfg.ValidationStrategy)
	resolver := variant.NewResolver(variantCfg)
	log.Printf("Variant validation strategy: %s", resolver.Strategy())

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return slices.Contains(cfg.AllowedOrigins, origin)
		},
	}))

	// Prometheus metrics
	prometheus := fiberprometheus.New("chessdb")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Root banner and liveness
	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.SendString(
			`<h1 style="text-align: center; margin-top: 50px;">Custom Chess API</h1>` +
				`<h2 style="text-align: center; margin-top: 50px;">This machine serves the API, routes, and database operations for the Custom Chess app.</h2>`)
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	// Create handlers
	piecesHandler := &handlers.PiecesHandler{DB: db, Resolver: resolver}
	customItemsHandler := &handlers.CustomItemsHandler{DB: db, Resolver: resolver}

	// Catalog routes (public GET, admin PATCH/DELETE)
	pieces := api.Group("/pieces")
	pieces.Get("/", piecesHandler.GetPieces)
	pieces.Get("/:id", piecesHandler.GetPieceByID)
	pieces.Get("/:id/options", piecesHandler.GetPieceOptions)
	pieces.Patch("/:id", piecesHandler.UpdatePiece)
	pieces.Delete("/:id", piecesHandler.DeletePiece)

	// Custom item routes
	customItems := api.Group("/custom-items")
	customItems.Get("/", customItemsHandler.ListCustomItems)
	customItems.Get("/:id", customItemsHandler.GetCustomItem)
	customItems.Post("/", customItemsHandler.CreateCustomItem)
	customItems.Put("/:id", customItemsHandler.UpdateCustomItem)
	customItems.Delete("/:id", customItemsHandler.DeleteCustomItem)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Resource not found.",
		})
	})

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error."

	if ce, ok := types.AsCustomError(err); ok {
		code = ce.Code
		message = ce.Message
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
