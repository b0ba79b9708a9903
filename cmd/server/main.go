package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"listingprice/internal/config"
	"listingprice/internal/features"
	"listingprice/internal/handler"
	"listingprice/internal/logger"
	"listingprice/internal/predictor"
	"listingprice/internal/repository"
	"listingprice/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	zlog.Info("listing price estimator",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("git_commit", GitCommit),
	)

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the price model; nothing can be served without it
	schema := features.DefaultSchema()
	priceModel, err := predictor.LoadXGBoost(cfg.Model.ArtifactPath, schema)
	if err != nil {
		zlog.Fatal("failed to load price model", zap.String("path", cfg.Model.ArtifactPath), zap.Error(err))
	}
	zlog.Info("price model loaded",
		zap.String("path", cfg.Model.ArtifactPath),
		zap.Int("trees", priceModel.Trees()),
		zap.Int("features", schema.Len()),
	)

	opts := []service.Option{service.WithCurrency(cfg.Model.Currency)}

	// Comparable listings are optional
	var repo *repository.PostgresRepository
	if cfg.ComparablesEnabled() {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			zlog.Warn("comparable listings disabled", zap.Error(err))
		} else {
			defer repo.Close()
			ranker := service.NewRanker(cfg.Comparables.WeightSimilarity, cfg.Comparables.WeightPrice)
			opts = append(opts, service.WithComparables(repo, ranker, cfg.Comparables.Limit))

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if total, err := repo.CountReference(ctx); err != nil {
				zlog.Warn("failed to count reference listings", zap.Error(err))
			} else {
				zlog.Info("connected to PostgreSQL", zap.Int("reference_listings", total))
			}
			cancel()
		}
	}

	// Initialize services
	predictionService, err := service.NewPredictionService(priceModel, schema, zlog, opts...)
	if err != nil {
		zlog.Fatal("failed to initialize prediction service", zap.Error(err))
	}

	// Initialize handlers
	predictionHandler := handler.NewPredictionHandler(predictionService)
	formHandler := handler.NewFormHandler(predictionService)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery(), logger.GinMiddleware(zlog))

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = config.SplitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = config.SplitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = config.SplitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     "listing-price-estimator",
			"version":     Version,
			"model_trees": priceModel.Trees(),
			"comparables": predictionService.ComparablesEnabled(),
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	if cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))
	}

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/predict", predictionHandler.Predict)
		apiV1.GET("/schema", predictionHandler.Schema)
		apiV1.GET("/options", predictionHandler.Options)
		apiV1.GET("/model", predictionHandler.ModelInfo)
	}

	// Browser form
	// Templates come from embed.go (production) or static_dev.go (development)
	setupTemplates(router, cfg.Server.WebDir, zlog)
	router.GET("/", formHandler.Show)
	router.POST("/", formHandler.Submit)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("starting server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	zlog.Info("server stopped")
}

// notFound answers unknown routes, as JSON under /api
func notFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
		return
	}
	c.String(http.StatusNotFound, "404 page not found")
}
