// Package bootstrap wires storage, caching and services for the API server
// and the shiftctl CLI.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/shift-roster-api/internal/repository"
	"github.com/noah-isme/shift-roster-api/internal/service"
	"github.com/noah-isme/shift-roster-api/pkg/cache"
	"github.com/noah-isme/shift-roster-api/pkg/config"
	"github.com/noah-isme/shift-roster-api/pkg/database"
	"github.com/noah-isme/shift-roster-api/pkg/export"
)

// App holds the live connections and the roster services built on them.
type App struct {
	DB      *sqlx.DB
	Redis   *redis.Client
	Cache   *repository.CacheRepository
	Metrics *service.MetricsService

	Generator    *service.ShiftGeneratorService
	View         *service.ShiftViewService
	Edits        *service.ShiftEditService
	Leave        *service.LeaveRequestService
	Temporary    *service.TemporaryAssignmentService
	Requirements *service.StaffingRequirementService
	Export       *service.RosterExportService
}

// New connects to Postgres and, when the shift cache is enabled, Redis. An
// unreachable Redis disables caching instead of failing startup.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	app := &App{DB: db, Metrics: service.NewMetricsService()}

	var cacheRepo service.CacheRepository
	if cfg.ShiftMap.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logger.Warn("redis unavailable, shift map cache disabled", zap.Error(err))
		} else {
			app.Redis = client
			app.Cache = repository.NewCacheRepository(client)
			cacheRepo = app.Cache
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, app.Metrics, cfg.ShiftMap.CacheTTL, logger, cacheRepo != nil)

	validate := validator.New()
	workers := repository.NewWorkerRepository(db)
	leaves := repository.NewLeaveRequestRepository(db)
	requirements := repository.NewStaffingRequirementRepository(db)
	temps := repository.NewTemporaryAssignmentRepository(db)
	shifts := repository.NewShiftRepository(db)

	app.Generator = service.NewShiftGeneratorService(
		workers, leaves, requirements, temps, shifts, db, cacheSvc, app.Metrics, validate,
		logger.Named("generator"),
		service.ShiftGeneratorConfig{Actor: cfg.Generator.Actor},
	)
	app.View = service.NewShiftViewService(workers, shifts, cacheSvc, cfg.ShiftMap.CacheTTL, logger.Named("shift_view"))
	app.Edits = service.NewShiftEditService(workers, shifts, db, cacheSvc, app.Metrics, logger.Named("shift_edit"), nil)
	app.Leave = service.NewLeaveRequestService(leaves, db, validate, logger.Named("leave"), nil)
	app.Temporary = service.NewTemporaryAssignmentService(temps, workers, db, validate, logger.Named("temporary"))
	app.Requirements = service.NewStaffingRequirementService(requirements, db, validate, logger.Named("requirements"))
	app.Export = service.NewRosterExportService(app.View, export.NewCSVExporter(true), export.NewPDFExporter(), logger.Named("export"))

	return app, nil
}

// Close releases the connections.
func (a *App) Close() error {
	if a.Redis != nil {
		_ = a.Redis.Close()
	}
	return a.DB.Close()
}
