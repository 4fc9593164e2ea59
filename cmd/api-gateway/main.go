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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/shift-roster-api/api/swagger"
	"github.com/noah-isme/shift-roster-api/internal/bootstrap"
	"github.com/noah-isme/shift-roster-api/internal/handler"
	internalmiddleware "github.com/noah-isme/shift-roster-api/internal/middleware"
	"github.com/noah-isme/shift-roster-api/internal/service"
	"github.com/noah-isme/shift-roster-api/pkg/config"
	"github.com/noah-isme/shift-roster-api/pkg/jobs"
	"github.com/noah-isme/shift-roster-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/shift-roster-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/shift-roster-api/pkg/middleware/requestid"
)

// @title Shift Roster API
// @version 0.1.0
// @description Monthly department shift generation, reconciliation and editing
// @BasePath /
// @schemes http

const shutdownTimeout = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to init dependencies", "error", err)
	}
	defer app.Close() //nolint:errcheck

	queue := jobs.NewQueue("shift-generation", service.GenerationJobHandler(app.Generator), jobs.QueueConfig{
		Workers:    cfg.Generator.Workers,
		MaxRetries: cfg.Generator.Retries,
		RetryDelay: cfg.Generator.RetryDelay,
		Logger:     logr.Named("jobs"),
	})
	queue.Start(ctx)
	defer queue.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(app.Metrics))

	checks := map[string]handler.Pinger{"postgres": app.DB}
	if app.Cache != nil {
		checks["redis"] = handler.PingFunc(app.Cache.Ping)
	}

	department := cfg.ShiftMap.DefaultDepartment
	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Shifts: handler.NewShiftHandler(
			app.Generator,
			service.NewShiftGenerationJobs(queue, nil),
			app.View,
			app.Edits,
			app.Export,
			department,
		),
		Leave:        handler.NewLeaveRequestHandler(app.Leave, department),
		Temporary:    handler.NewTemporaryAssignmentHandler(app.Temporary, department),
		Requirements: handler.NewStaffingRequirementHandler(app.Requirements, department),
		Metrics:      handler.NewMetricsHandler(app.Metrics, checks),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Errorw("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
