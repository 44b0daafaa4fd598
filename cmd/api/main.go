package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/repositories"
	"alfredoptarigan/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize repositories
	datasetRepo := repositories.NewDatasetRepository()

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zlog.Fatal("failed to create upload directory", zap.Error(err))
	}

	csvLoader := services.NewCSVLoaderService()
	pdfParser := services.NewPDFParserService()
	matcher := services.NewMatcherService()

	ingester := services.NewIngestService(datasetRepo, csvLoader, matcher, zlog)

	// Initialize worker
	worker := services.NewWorker(datasetRepo, ingester, cfg.Worker.Concurrency, zlog)

	// Start worker
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	datasetHandler := handlers.NewDatasetHandler(
		datasetRepo,
		storageService,
		worker,
		cfg.Storage.MaxFileSize,
	)
	rankingHandler := handlers.NewRankingHandler(matcher, cfg.Screening)
	chartHandler := handlers.NewChartHandler(matcher, cfg.Screening)
	matchHandler := handlers.NewMatchHandler(
		matcher,
		storageService,
		pdfParser,
		cfg.Storage.MaxFileSize,
	)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Screening API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Datasets
	api.Post("/datasets/resumes", datasetHandler.HandleUploadResumes)
	api.Post("/datasets/jobs", datasetHandler.HandleUploadJobs)
	api.Get("/datasets/:id", datasetHandler.HandleGetDataset)

	// Rankings
	api.Get("/jobs", rankingHandler.HandleListJobs)
	api.Get("/jobs/:index/ranking", rankingHandler.HandleRanking)
	api.Get("/jobs/:index/ranking/export", rankingHandler.HandleExport)
	api.Get("/jobs/:index/candidates", rankingHandler.HandleCandidateSearch)

	// Charts
	api.Get("/jobs/:index/charts/histogram", chartHandler.HandleHistogram)
	api.Get("/jobs/:index/charts/line", chartHandler.HandleLine)
	api.Get("/charts/bubble", chartHandler.HandleBubble)
	api.Get("/charts/bar", chartHandler.HandleBar)

	// Single-resume match
	api.Post("/match", matchHandler.HandleMatch)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Screening API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/datasets/resumes",
				"POST /api/v1/datasets/jobs",
				"GET /api/v1/datasets/:id",
				"GET /api/v1/jobs",
				"GET /api/v1/jobs/:index/ranking",
				"GET /api/v1/jobs/:index/ranking/export",
				"GET /api/v1/jobs/:index/candidates",
				"GET /api/v1/jobs/:index/charts/histogram",
				"GET /api/v1/jobs/:index/charts/line",
				"GET /api/v1/charts/bubble",
				"GET /api/v1/charts/bar",
				"POST /api/v1/match",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		worker.Stop()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Server.Env))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
