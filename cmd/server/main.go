package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"price-verification-service/internal/adapters/primary/http/handlers"
	"price-verification-service/internal/adapters/primary/http/middleware"
	"price-verification-service/internal/adapters/secondary/metrics"
	"price-verification-service/internal/bootstrap"
	"price-verification-service/internal/config"
	"price-verification-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	bootstrap.InitLogger(cfg.Logger)

	// ============================================================================
	// Hexagonal Architecture Wiring
	// ============================================================================

	// Secondary Adapters (model artifacts, goods catalog, metrics)
	registry, err := bootstrap.BuildRegistry(&cfg.Artifacts)
	if err != nil {
		log.Fatalf("load price models: %v", err)
	}

	catalog := bootstrap.LoadCatalog(context.Background(), cfg)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	predictionMetrics := metrics.NewPredictionMetrics(reg)

	// Core Services (Application Layer)
	assessmentSvc := services.NewPriceAssessmentService(registry, catalog, predictionMetrics, cfg.Assessment)

	// Primary Adapter (HTTP Handlers)
	h := handlers.New(assessmentSvc)

	// Setup router
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Logging(), gin.Recovery())

	api := router.Group("/api/v1/price-verification")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.NewRateLimiter(cfg.RateLimit).Middleware())
		log.WithFields(log.Fields{
			"rps":   cfg.RateLimit.RPS,
			"burst": cfg.RateLimit.Burst,
		}).Info("rate limiting enabled")
	}
	h.RegisterRoutes(api)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "models": assessmentSvc.ModelCount()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("models", assessmentSvc.ModelCount()).Infof("starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced shutdown: %v", err)
	}

	log.Info("server stopped")
}
