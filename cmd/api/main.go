package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/appointment-booking/internal/audit"
	"github.com/BruksfildServices01/appointment-booking/internal/cache"
	"github.com/BruksfildServices01/appointment-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/appointment-booking/internal/db"
	"github.com/BruksfildServices01/appointment-booking/internal/logger"
	"github.com/BruksfildServices01/appointment-booking/internal/middleware"
	"github.com/BruksfildServices01/appointment-booking/internal/routes"
	"github.com/BruksfildServices01/appointment-booking/internal/storage"
	"github.com/BruksfildServices01/appointment-booking/internal/timezone"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	if err := timezone.SetDefault(cfg.DefaultTimezone); err != nil {
		log.Fatal("invalid DEFAULT_TIMEZONE", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := dbpkg.NewDB(cfg, log)

	rdb, err := cache.Connect(ctx, cfg)
	if err != nil {
		log.Warn("redis unavailable, running without cache and rate limiting", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	images := storage.NewImages(cfg)
	if images == nil {
		log.Info("S3_BUCKET not set, image uploads disabled")
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(log),
		middleware.CORSMiddleware(),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Redis:  rdb,
		Images: images,
		Audit:  auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	auditDispatcher.Close()
}
