package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/course-compass/course-compass-api/api/swagger"
	"github.com/course-compass/course-compass-api/internal/catalog"
	"github.com/course-compass/course-compass-api/internal/handler"
	"github.com/course-compass/course-compass-api/internal/middleware"
	"github.com/course-compass/course-compass-api/internal/repository"
	"github.com/course-compass/course-compass-api/internal/service"
	"github.com/course-compass/course-compass-api/internal/timetable"
	"github.com/course-compass/course-compass-api/pkg/cache"
	"github.com/course-compass/course-compass-api/pkg/config"
	"github.com/course-compass/course-compass-api/pkg/database"
	"github.com/course-compass/course-compass-api/pkg/logger"
	corsmiddleware "github.com/course-compass/course-compass-api/pkg/middleware/cors"
	reqidmiddleware "github.com/course-compass/course-compass-api/pkg/middleware/requestid"
	"github.com/course-compass/course-compass-api/pkg/storage"
)

// @title Course Compass API
// @version 0.1.0
// @description Course discovery gateway: semantic search, timetable assembly and selection management
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

	periodTable, err := loadPeriodTable(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to load period table", "error", err)
	}
	grid, err := timetable.NewGridTemplate(cfg.Timetable.GridDays, cfg.Timetable.GridPeriods, periodTable)
	if err != nil {
		logr.Sugar().Fatalw("invalid grid template", "error", err)
	}
	assigner := timetable.NewAssigner(periodTable, grid)
	categoryPredicate := timetable.DepartmentKeywordPredicate(cfg.Timetable.SecurityKeywords)

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	var cacheSvc *service.CacheService
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, search cache disabled", "error", err)
		} else {
			redisClient = client
		}
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, redisClient != nil)
	}

	normalizer := catalog.NewNormalizer(periodTable, logr)
	upstream := catalog.NewClient(cfg.Upstream, normalizer, logr)

	searchSvc := service.NewSearchService(upstream, cacheSvc, metricsSvc, logr)
	timetableSvc := service.NewTimetableService(assigner, categoryPredicate, validate, logr)

	var exportSvc *service.ExportService
	if cfg.Exports.Enabled {
		store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("failed to init export storage", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
		exportSvc = service.NewExportService(store, signer, service.ExportConfig{APIPrefix: cfg.APIPrefix}, logr, nil, nil)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	searchHandler := handler.NewSearchHandler(searchSvc)
	timetableHandler := handler.NewTimetableHandler(timetableSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	api := r.Group(cfg.APIPrefix)
	api.GET("/courses/search", searchHandler.Search)
	api.GET("/courses/:identifier", searchHandler.GetCourse)
	api.POST("/timetable", timetableHandler.Build)

	var db *sqlx.DB
	if cfg.Selections.Enabled {
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Sugar().Fatalw("selections are enabled but the database is unreachable", "error", err)
		}
		selectionRepo := repository.NewSelectionRepository(db)
		selectionSvc := service.NewSelectionService(selectionRepo, searchSvc, validate, logr)
		selectionHandler := handler.NewSelectionHandler(selectionSvc, timetableSvc, exportSvc)

		api.POST("/selections", selectionHandler.Create)
		api.GET("/selections", selectionHandler.List)
		api.GET("/selections/:id", selectionHandler.Get)
		api.DELETE("/selections/:id", selectionHandler.Delete)
		api.POST("/selections/:id/courses", selectionHandler.AddCourse)
		api.DELETE("/selections/:id/courses/:identifier", selectionHandler.RemoveCourse)
		api.GET("/selections/:id/timetable", selectionHandler.Timetable)
		api.POST("/selections/:id/export", selectionHandler.Export)
	}

	if cfg.Exports.Enabled {
		api.GET("/exports/:token", exportHandler.Download)
	}

	metricsHandler := handler.NewMetricsHandler(metricsSvc, db, redisClient)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/snapshot", metricsHandler.Snapshot)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting",
		"addr", addr,
		"env", cfg.Env,
		"upstream", cfg.Upstream.BaseURL,
		"selections", cfg.Selections.Enabled,
		"exports", cfg.Exports.Enabled,
	)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func loadPeriodTable(cfg *config.Config) (*timetable.PeriodTable, error) {
	if cfg.Timetable.PeriodTableFile == "" {
		return timetable.DefaultPeriodTable(), nil
	}
	return timetable.LoadPeriodTableFile(cfg.Timetable.PeriodTableFile)
}
