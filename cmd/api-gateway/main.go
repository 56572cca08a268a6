package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/event-planner-api/api/swagger"
	"github.com/noah-isme/event-planner-api/internal/handler"
	"github.com/noah-isme/event-planner-api/internal/repository"
	"github.com/noah-isme/event-planner-api/internal/server"
	"github.com/noah-isme/event-planner-api/internal/service"
	"github.com/noah-isme/event-planner-api/pkg/cache"
	"github.com/noah-isme/event-planner-api/pkg/config"
	"github.com/noah-isme/event-planner-api/pkg/database"
	"github.com/noah-isme/event-planner-api/pkg/logger"
	"github.com/noah-isme/event-planner-api/pkg/push"
)

// @title Event Planner API
// @version 1.0.0
// @description Event planning lifecycle, review queue and staff notifications
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(cfg.Database, logr); err != nil {
			logr.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	var redisClient *redis.Client
	if cfg.Dashboard.CacheEnabled {
		redisClient, err = cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	metricsSvc := service.NewMetricsService()
	validate := validator.New()

	staffRepo := repository.NewStaffRepository(db)
	eventRepo := repository.NewEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	checks := map[string]handler.Pinger{"postgres": db}
	var cacheRepo service.CacheRepository
	if redisClient != nil {
		redisCache := repository.NewCacheRepository(redisClient)
		cacheRepo = redisCache
		checks["redis"] = handler.PingFunc(redisCache.Ping)
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, redisClient != nil)

	var publisher push.Publisher
	if cfg.Push.Enabled() {
		publisher = push.NewPubNub(cfg.Push)
	}
	pusher := service.NewNotificationPusher(publisher, cfg.Push, metricsSvc, logr)
	pusher.Start(ctx)
	defer pusher.Stop()

	notificationSvc := service.NewNotificationService(notificationRepo, pusher, metricsSvc, logr)
	querySvc := service.NewEventQueryService(eventRepo, logr)
	eventSvc := service.NewEventService(eventRepo, service.NewLifecycle(cfg.Lifecycle.Policy), service.EventServiceDeps{
		Notifier: notificationSvc,
		Cache:    cacheSvc,
		Audit:    auditRepo,
		Metrics:  metricsSvc,
	}, validate, logr)
	staffSvc := service.NewStaffService(staffRepo, eventRepo, auditRepo, validate, logr)
	authSvc := service.NewAuthService(staffRepo, auditRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	identitySvc := service.NewIdentityService(staffRepo, cfg.Identity, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Events:        querySvc,
		Notifications: notificationSvc,
		Staff:         staffSvc,
		Cache:         cacheSvc,
		Logger:        logr,
		Config: service.DashboardServiceConfig{
			CacheTTL:    cfg.Dashboard.CacheTTL,
			RecentLimit: cfg.Dashboard.RecentLimit,
		},
	})
	exportSvc := service.NewExportService(querySvc, nil, nil, logr)

	seeded, err := staffSvc.EnsureSeed(ctx, cfg.Seed)
	if err != nil {
		logr.Fatal("failed to seed staff directory", zap.Error(err))
	}
	logr.Info("staff directory ready", zap.Int("seeded", seeded))

	if err := cacheSvc.InvalidatePattern(ctx, service.PlannerStatsPattern); err != nil {
		logr.Warn("stale planner stats left in cache", zap.Error(err))
	}

	router := server.NewRouter(server.Deps{
		Config:   cfg,
		Logger:   logr,
		Metrics:  metricsSvc,
		Tokens:   authSvc,
		Identity: identitySvc,
		Audit:    auditRepo,
		Handlers: server.Handlers{
			Auth:          handler.NewAuthHandler(authSvc),
			PlannerEvents: handler.NewPlannerEventHandler(eventSvc, querySvc),
			AdminEvents:   handler.NewAdminEventHandler(eventSvc, querySvc, exportSvc),
			Staff:         handler.NewStaffHandler(staffSvc),
			Notifications: handler.NewNotificationHandler(notificationSvc),
			Dashboard:     handler.NewDashboardHandler(dashboardSvc),
			Metrics:       handler.NewMetricsHandler(metricsSvc, checks),
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "lifecycle", cfg.Lifecycle.Policy)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
