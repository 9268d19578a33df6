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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"

	"alfredoptarigan/resume-analyzer/internal/config"
	"alfredoptarigan/resume-analyzer/internal/handlers"
	"alfredoptarigan/resume-analyzer/internal/repositories"
	"alfredoptarigan/resume-analyzer/internal/services"
	"alfredoptarigan/resume-analyzer/web"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	appRepo := repositories.NewApplicationRepository(db)
	adminRepo := repositories.NewAdminRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath, cfg.Storage.AllowedExtensions)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	authService := services.NewAuthService(adminRepo)
	if err := authService.EnsureDefaultAdmin(cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("❌ Failed to seed admin credentials: %v", err)
	}

	extractor := services.NewTextExtractor()
	jobService := services.NewJobListingService(services.JobListingConfig{
		APIKey:   cfg.Jobs.APIKey,
		APIHost:  cfg.Jobs.APIHost,
		APIURL:   cfg.Jobs.APIURL,
		Search:   cfg.Jobs.Search,
		Location: cfg.Jobs.Location,
		Timeout:  cfg.Jobs.Timeout,
	})
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.EmbedModel)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Similar-candidate search is optional
	var (
		qdrantService services.QdrantService
		indexer       services.Indexer
	)
	if cfg.Qdrant.Enabled {
		qdrantService, err = services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}
		log.Println("✅ Qdrant initialized successfully")

		indexer = services.NewIndexer(
			appRepo,
			extractor,
			services.NewTextChunker(),
			geminiService,
			qdrantService,
			cfg.Worker.Concurrency,
			cfg.Worker.PollInterval,
		)
		indexer.Start(ctx)
	} else {
		log.Println("ℹ️  Qdrant disabled, similar candidates will not be shown")
	}

	submissionService := services.NewSubmissionService(
		appRepo,
		storageService,
		extractor,
		geminiService,
		indexer,
		cfg.Storage.MaxFileSize,
		cfg.Worker.RetryMaxAttempts,
	)
	applicationService := services.NewApplicationService(appRepo, storageService, geminiService, qdrantService)

	// Initialize handlers
	sessions := handlers.NewSessions(session.New(session.Config{
		Expiration:     cfg.Admin.SessionExpiry,
		KeyLookup:      "cookie:resume_analyzer_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
		CookieSecure:   !cfg.IsDevelopment(),
	}))
	indexHandler := handlers.NewIndexHandler(submissionService, jobService, sessions, cfg.Jobs.Count, cfg.Storage.MaxFileSize)
	adminHandler := handlers.NewAdminHandler(applicationService, authService, storageService, sessions)
	apiHandler := handlers.NewAPIHandler(jobService, cfg.Jobs.Count)
	log.Println("✅ Handlers initialized")

	// Leave room for the other multipart fields around the file
	bodyLimit := int(cfg.Storage.MaxFileSize) + 1024*1024

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Analyzer",
		Views:        web.NewEngine(),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: handlers.NewErrorHandler(sessions, cfg.Storage.MaxFileSize),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	handlers.SetupRoutes(app, indexHandler, adminHandler, apiHandler, sessions)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if indexer != nil {
			indexer.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Server starting on http://%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
