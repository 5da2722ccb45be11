package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/campus-enrollment-api/api/swagger"
	"github.com/noah-isme/campus-enrollment-api/internal/handler"
	"github.com/noah-isme/campus-enrollment-api/internal/repository"
	"github.com/noah-isme/campus-enrollment-api/internal/service"
	"github.com/noah-isme/campus-enrollment-api/pkg/cache"
	"github.com/noah-isme/campus-enrollment-api/pkg/config"
	"github.com/noah-isme/campus-enrollment-api/pkg/logger"
)

// @title Campus Enrollment API
// @version 0.1.0
// @description Student enrollment with capacity limits, duplicate detection and a grouped, searchable roster
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	var redisClient *redis.Client
	if cfg.Roster.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("roster cache disabled: redis unavailable", zap.Error(err))
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, "enrollment:roster", logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Roster.CacheTTL, logr, cfg.Roster.CacheEnabled && redisClient != nil)

	students := repository.NewStudentRepository()
	enrollments := service.NewEnrollmentService(service.EnrollmentServiceParams{
		Repo:      students,
		IDs:       service.NewIDGenerator(0),
		Cache:     cacheSvc,
		Metrics:   metrics,
		Validator: validator.New(),
		Logger:    logr,
		Config: service.EnrollmentServiceConfig{
			MaxCapacity:    cfg.Enrollment.MaxCapacity,
			Batches:        cfg.Enrollment.Batches,
			YearOptions:    cfg.Enrollment.YearOptions,
			RosterCacheTTL: cfg.Roster.CacheTTL,
		},
	})
	metrics.ObserveRoster(0, enrollments.Capacity())
	exports := service.NewExportService(students, logr)

	router := handler.NewRouter(handler.RouterParams{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Docs.Enabled && cfg.Env != config.EnvProduction,
		Enrollments:    handler.NewEnrollmentHandler(enrollments),
		Exports:        handler.NewExportHandler(exports),
		Metrics:        metrics,
		Logger:         logr,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "capacity", enrollments.Capacity())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("server shutdown failed", "error", err)
	}
	logr.Info("server stopped")
}
