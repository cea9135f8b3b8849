package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phdonas/site/api"
	"github.com/phdonas/site/config"
	"github.com/phdonas/site/database"
	"github.com/phdonas/site/middleware"
	"github.com/phdonas/site/models"
	"github.com/phdonas/site/repository"
	"github.com/phdonas/site/services"

	"gorm.io/gorm"
)

func main() {
	// Load application configuration
	config.LoadConfig()

	// Initialize database connection
	db, err := database.Init()
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to initialize database: %v", err)
	}

	// Auto-migrate database schema
	runMigrations(db)

	// Initialize Repositories
	cacheRepo := repository.NewCacheRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	quotaRepo := repository.NewQuotaRepository(db)
	chatRepo := repository.NewChatRepository()
	log.Println("INFO: [Main] Repositories initialized.")

	// Initialize Services
	pipeline := services.NewFetchPipeline(
		config.AppConfig.WordPress.Strategies,
		time.Duration(config.AppConfig.WordPress.TimeoutSeconds)*time.Second,
	)
	contentService := services.NewContentService(cacheRepo, pipeline)
	assistantService := services.NewAssistantService()
	refreshService := services.NewRefreshService(
		contentService,
		time.Duration(config.AppConfig.RefreshIntervalMin)*time.Minute,
	)
	log.Println("INFO: [Main] Services initialized.")

	// Initialize API Handler with all dependencies
	apiHandler := api.NewAPIHandler(
		contentService,
		assistantService,
		chatRepo,
		quotaRepo,
		settingsRepo,
		sessionRepo,
	)
	log.Println("INFO: [Main] API Handler initialized.")

	// Warm the content snapshot in the background.
	go func() {
		if err := refreshService.Run(context.Background()); err != nil {
			log.Printf("INFO: [Main] Refresh service stopped: %v", err)
		}
	}()

	// Create Gin engine
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Register middlewares
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())
	log.Println("INFO: [Main] Middlewares registered.")

	// Register routes
	registerRoutes(r, apiHandler, sessionRepo)
	log.Println("INFO: [Main] Routes registered.")

	// Start the server
	serverPort := ":" + config.AppConfig.Server.Port
	if config.AppConfig.Server.Port == "" {
		log.Println("WARN: [Main] Server port not configured, using default :8080.")
		serverPort = ":8080"
	}
	log.Printf("INFO: [Main] Starting server on port %s", serverPort)
	if err := r.Run(serverPort); err != nil {
		log.Fatalf("FATAL: [Main] Server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	log.Println("INFO: [Main] Running database migrations...")
	err := db.AutoMigrate(
		&models.StoredValue{},
		&models.AdminSession{},
		&models.GuestQuota{},
	)
	if err != nil {
		log.Fatalf("FATAL: [Main] Failed to auto-migrate database: %v", err)
	}
	log.Println("INFO: [Main] Database migration completed.")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, sessionRepo repository.SessionRepository) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/init", handler.InitHandler)
		apiGroup.GET("/settings", handler.SettingsHandler)

		// Content endpoints
		apiGroup.GET("/articles", handler.ArticlesHandler)
		apiGroup.GET("/articles/:id", handler.ArticleByIDHandler)
		apiGroup.GET("/videos", handler.VideosHandler)
		apiGroup.GET("/pillars", handler.PillarsHandler)
		apiGroup.GET("/courses", handler.CoursesHandler)
		apiGroup.GET("/courses/:id", handler.CourseByIDHandler)
		apiGroup.GET("/books", handler.BooksHandler)
		apiGroup.GET("/resources", handler.ResourcesHandler)

		// Assistant endpoints
		chatRate := config.AppConfig.ChatRate
		apiGroup.POST("/chat", middleware.RateLimit(chatRate.PerSecond, chatRate.Burst), handler.ChatHandler)
		apiGroup.GET("/chat/history/:userID", handler.ChatHistoryHandler)

		// Admin endpoints
		apiGroup.POST("/login", handler.LoginHandler)
		adminGroup := apiGroup.Group("/admin", middleware.AdminAuth(sessionRepo))
		{
			adminGroup.POST("/logout", handler.LogoutHandler)
			adminGroup.PUT("/settings", handler.UpdateSettingsHandler)
			adminGroup.DELETE("/cache", handler.ClearCacheHandler)
		}
	}
}
