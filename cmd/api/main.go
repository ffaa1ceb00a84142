package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"cv-parser/internal/cache"
	"cv-parser/internal/config"
	"cv-parser/internal/handlers"
	"cv-parser/internal/middleware"
	"cv-parser/internal/repositories"
	"cv-parser/internal/services"
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
	candidateRepo := repositories.NewCandidateRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize cache backend for rate limiting
	var cacheBackend cache.Cache
	switch cfg.Cache.Backend {
	case "redis":
		cacheBackend, err = cache.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		log.Println("✅ Redis cache initialized successfully")
	default:
		cacheBackend = cache.NewMemoryCache()
		log.Println("✅ In-memory cache initialized successfully")
	}

	rateLimitWindow := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	rateLimiter := services.NewRateLimiter(cacheBackend, cfg.RateLimit.MaxRequests, rateLimitWindow)

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	ocrClient := services.NewTesseractClient(cfg.Extractor.OCRLanguage)
	extractor := services.NewTextExtractor(ocrClient, cfg.Extractor.OCRRenderDPI, cfg.Extractor.PreserveDocumentOrder)
	parser := services.NewOpenAIParser(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, cfg.OpenAI.Timeout)
	log.Println("✅ Services initialized successfully")

	ingestor, err := services.NewIngestionService(
		candidateRepo,
		storageService,
		extractor,
		parser,
		cfg.Storage.MaxFileSize,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize ingestion pipeline: %v", err)
	}
	log.Println("✅ Ingestion pipeline initialized")

	// Initialize Gemini AI for the chat endpoint
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	chatService := services.NewChatService(candidateRepo, geminiService, cfg.Gemini.RetryMaxAttempts)
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(ingestor)
	candidateHandler := handlers.NewCandidateHandler(candidateRepo)
	chatHandler := handlers.NewChatHandler(chatService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "CV Parser API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 1024*1024,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
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
	api.Use(middleware.RateLimit(rateLimiter, cfg.RateLimit.MaxRequests, rateLimitWindow))

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/candidates", uploadHandler.HandleUpload)
	api.Get("/candidates/:id", candidateHandler.HandleGetCandidate)
	api.Post("/chat", chatHandler.HandleChat)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "CV Parser API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/candidates",
				"GET /api/v1/candidates/:id",
				"POST /api/v1/chat",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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
