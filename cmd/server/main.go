package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"aptchat/internal/config"
	"aptchat/internal/handler"
	"aptchat/internal/repository"
	"aptchat/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log := logrus.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	setupLogger(log, &cfg.Logging)
	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("Apartment Chat Search")

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewApartmentRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Info("Connected to PostgreSQL database")

	// Initialize embedding client
	embedder := service.NewEmbeddingClient(&cfg.Embedding)
	if embedder.IsEnabled() {
		log.WithFields(logrus.Fields{
			"api_base": cfg.Embedding.APIBase,
			"model":    cfg.Embedding.Model,
		}).Info("Embedding client initialized")
	} else {
		log.Warn("Embedding API is disabled - semantic search will not work")
		log.Warn("Set EMBEDDING_API_KEY environment variable to enable it")
	}

	// Populate the vector index at startup (offline batch step, not the query path)
	indexer := service.NewIndexer(repo, embedder, log)
	if embedder.IsEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		indexed, err := indexer.BuildIndex(ctx)
		cancel()
		if err != nil {
			log.WithError(err).Warn("Initial index build failed - semantic search may return stale results")
		} else {
			log.WithField("indexed", indexed).Info("Vector index ready")
		}
	}

	// Initialize services
	chatService := service.NewChatService(
		repo,
		repo,
		embedder,
		cfg.Search.TopK,
		cfg.Search.FilterMaxResults,
	)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatService, log)
	indexHandler := handler.NewIndexHandler(indexer, log)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.AllowedOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "apartment-chat",
			"version": Version,
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

	// Chat endpoint
	router.POST("/chat", chatHandler.Chat)

	// Maintenance routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/index/rebuild", indexHandler.Rebuild)
	}

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("Starting server")

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
}

func setupLogger(log *logrus.Logger, cfg *config.LoggingConfig) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if cfg.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
