package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"concierge/internal/catalog"
	"concierge/internal/config"
	"concierge/internal/handler"
	"concierge/internal/repository"
	"concierge/internal/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Imóveis Concierge")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the listing catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load listing catalog: %v", err)
	}
	log.Printf("✅ Loaded %d listings", cat.Len())

	// Lead persistence is optional; without it the server keeps
	// sessions in memory only.
	var repo *repository.LeadRepository
	var leadStore service.LeadStore
	var feedbackStore handler.FeedbackStore
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewLeadRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer repo.Close()
		leadStore = repo
		feedbackStore = repo
		log.Println("✅ Connected to PostgreSQL database")
	} else {
		log.Println("⚠️  PostgreSQL is disabled - leads will not be persisted")
		log.Println("   Set DATABASE_URL or PG_HOST to enable persistence")
	}

	// Initialize services
	scorer := service.NewScorer(
		cfg.Scoring.Base,
		cfg.Scoring.AmenityBonus,
		cfg.Scoring.PriceBonus,
		cfg.Scoring.JitterMax,
		rand.New(rand.NewSource(time.Now().UnixNano())),
	)
	searchService := service.NewSearchService(cat, scorer, cfg.Search.MaxResults)
	conversationService := service.NewConversationService(searchService, leadStore)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(conversationService)
	searchHandler := handler.NewSearchHandler(searchService, cat, cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	feedbackHandler := handler.NewFeedbackHandler(cat, feedbackStore)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "imoveis-concierge",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		// Conversation endpoints
		apiV1.POST("/chat/sessions", chatHandler.StartSession)
		apiV1.POST("/chat/sessions/:id/messages", chatHandler.Message)
		apiV1.GET("/chat/sessions/:id", chatHandler.GetSession)

		// Search endpoints
		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/listings/:id", searchHandler.GetListing)

		// Feedback endpoint
		apiV1.POST("/feedback", feedbackHandler.Submit)
	}

	// Serve static files (frontend)
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
