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

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/educa-portal/api/swagger"
	"github.com/noah-isme/educa-portal/internal/client"
	"github.com/noah-isme/educa-portal/internal/dispatcher"
	"github.com/noah-isme/educa-portal/internal/guard"
	"github.com/noah-isme/educa-portal/internal/handler"
	"github.com/noah-isme/educa-portal/internal/middleware"
	"github.com/noah-isme/educa-portal/internal/service"
	"github.com/noah-isme/educa-portal/internal/session"
	"github.com/noah-isme/educa-portal/internal/validation"
	"github.com/noah-isme/educa-portal/pkg/cache"
	"github.com/noah-isme/educa-portal/pkg/config"
	"github.com/noah-isme/educa-portal/pkg/logger"
	corsmiddleware "github.com/noah-isme/educa-portal/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/educa-portal/pkg/middleware/requestid"
)

// @title EDUCA Portal
// @version 1.0.0
// @description Session-backed portal in front of the EDUCA REST API
// @BasePath /
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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore := sessionStore(ctx, cfg, logr)
	defer closeStore()

	metrics := service.NewMetricsService()
	api := client.New(cfg.API, logr.Named("client"), client.WithObserver(metrics))
	sessions := session.NewManager(store, cfg.Session.TTL, logr.Named("session"))
	validator := validation.New()
	dispatch := dispatcher.New(sessions, validator, logr.Named("dispatcher"),
		dispatcher.WithObserver(metrics),
		dispatcher.WithPDFSource(api),
	)
	sessionGuard := guard.New(sessions, api, cfg.Session.LoginPath, logr.Named("guard"), guard.WithObserver(metrics))

	watcher := guard.NewWatcher(sessionGuard, cfg.Session.CheckInterval, logr.Named("watcher"))
	if err := watcher.Start(ctx); err != nil {
		logr.Fatal("session watcher failed to start", zap.Error(err))
	}
	defer watcher.Stop()

	deps := service.Deps{API: api, Sessions: sessions, Dispatcher: dispatch, Validator: validator, Logger: logr}
	handlers := handler.Handlers{
		Auth: handler.NewAuthHandler(service.NewAuthService(deps), handler.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
		}),
		Catalog:      handler.NewCatalogHandler(service.NewCatalogService(deps)),
		Enrollments:  handler.NewEnrollmentHandler(service.NewEnrollmentService(deps)),
		Teacher:      handler.NewTeacherHandler(service.NewTeacherService(deps)),
		Certificates: handler.NewCertificateHandler(service.NewCertificateService(deps)),
		Schedules:    handler.NewScheduleHandler(service.NewScheduleService(deps)),
		Directory:    handler.NewDirectoryHandler(service.NewDirectoryService(deps)),
		Users:        handler.NewUserHandler(service.NewProfileService(deps), service.NewStatisticsService(deps)),
	}
	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metrics))
		r.GET(cfg.Metrics.Path, metricsHandler.Prometheus)
		r.GET(cfg.Metrics.Path+"/summary", metricsHandler.Summary)
	}

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handlers, sessionGuard, cfg.Session.CookieName)

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "api", cfg.API.BaseURL, "sessionStore", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("server shutdown", zap.Error(err))
	}
	logr.Info("server stopped")
}

// sessionStore picks the configured session backend. A Redis store that
// cannot be reached falls back to memory so the portal still serves logins.
func sessionStore(ctx context.Context, cfg *config.Config, logr *zap.Logger) (session.Store, func()) {
	if cfg.Session.Store != config.SessionStoreRedis {
		return session.NewMemoryStore(), func() {}
	}
	rdb, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, sessions kept in memory", zap.Error(err))
		return session.NewMemoryStore(), func() {}
	}
	return session.NewRedisStore(rdb), func() { _ = rdb.Close() }
}
