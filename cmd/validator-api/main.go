package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/modern-research-group/course-validator/api/swagger"
	"github.com/modern-research-group/course-validator/internal/catalog"
	"github.com/modern-research-group/course-validator/internal/handler"
	"github.com/modern-research-group/course-validator/internal/middleware"
	"github.com/modern-research-group/course-validator/internal/repository"
	"github.com/modern-research-group/course-validator/internal/service"
	"github.com/modern-research-group/course-validator/internal/validation"
	appcache "github.com/modern-research-group/course-validator/pkg/cache"
	"github.com/modern-research-group/course-validator/pkg/config"
	"github.com/modern-research-group/course-validator/pkg/database"
	"github.com/modern-research-group/course-validator/pkg/jobs"
	"github.com/modern-research-group/course-validator/pkg/logger"
	corsmiddleware "github.com/modern-research-group/course-validator/pkg/middleware/cors"
	reqidmiddleware "github.com/modern-research-group/course-validator/pkg/middleware/requestid"
	"github.com/modern-research-group/course-validator/pkg/storage"
)

// @title Course Validator API
// @version 1.0.0
// @description Course registration validation over chronological transcripts
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx, cfg, logr)
	if err != nil {
		logr.Sugar().Fatalw("catalog load failed", "source", cfg.Catalog.Source, "error", err)
	}
	logr.Sugar().Infow("catalog loaded", "source", cfg.Catalog.Source, "courses", cat.Len())

	metricsSvc := service.NewMetricsService()

	var cache *repository.ResultCache
	if cfg.Validation.CacheEnabled {
		redisClient, err := appcache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("redis connection failed", "error", err)
		}
		defer redisClient.Close() //nolint:errcheck
		cache = repository.NewResultCache(redisClient, cfg.Validation.CacheTTL)
	}

	engine := validation.NewEngine(cat, validation.Limits{
		Regular: cfg.Validation.RegularCreditLimit,
		Summer:  cfg.Validation.SummerCreditLimit,
	})
	validate := validator.New()

	var validationSvc *service.ValidationService
	if cache != nil {
		validationSvc = service.NewValidationService(engine, cache, metricsSvc, validate, logr)
	} else {
		validationSvc = service.NewValidationService(engine, nil, metricsSvc, validate, logr)
	}
	catalogSvc := service.NewCatalogService(cat, logr)

	var reportSvc *service.ReportJobService
	var reportQueue *jobs.Queue
	if cfg.Reports.Enabled {
		local, err := storage.NewLocalStorage(cfg.Reports.StorageDir)
		if err != nil {
			logr.Sugar().Fatalw("report storage init failed", "error", err)
		}
		signer := storage.NewSignedURLSigner(cfg.Reports.SignedURLSecret, cfg.Reports.SignedURLTTL)
		store := repository.NewReportJobStore()

		reportSvc = service.NewReportJobService(store, nil, validationSvc, local, signer, metricsSvc, logr, service.ReportJobConfig{
			RetentionPeriod: cfg.Reports.RetentionPeriod,
			CleanupInterval: cfg.Reports.CleanupInterval,
			DownloadPath:    cfg.APIPrefix + "/reports/download",
		})
		reportQueue = jobs.NewQueue("reports", reportSvc.Process, jobs.QueueConfig{
			Workers:    cfg.Reports.WorkerConcurrency,
			BufferSize: cfg.Reports.QueueCapacity,
			MaxRetries: cfg.Reports.WorkerRetries,
			Logger:     logr,
		})
		reportSvc.SetQueue(reportQueue)
		reportQueue.Start(ctx)
		defer reportQueue.Stop()
		reportSvc.StartCleanup(ctx)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	metricsHandler := handler.NewMetricsHandler(metricsSvc, catalogSvc)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		validationHandler := handler.NewValidationHandler(validationSvc)
		api.POST("/validate", validationHandler.Validate)
		api.POST("/validate/report", validationHandler.Report)

		catalogHandler := handler.NewCatalogHandler(catalogSvc)
		api.GET("/courses", catalogHandler.List)
		api.GET("/courses/:code", catalogHandler.Get)

		if reportSvc != nil {
			reportHandler := handler.NewReportHandler(reportSvc)
			api.POST("/reports", reportHandler.Create)
			api.GET("/reports/:id", reportHandler.Status)
			api.GET("/reports/download", reportHandler.Download)
		}
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Warnw("shutdown incomplete", "error", err)
	}
}

func loadCatalog(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourcePostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		defer db.Close() //nolint:errcheck
		entries, err := repository.NewCatalogRepository(db).LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.New(entries), nil
	case config.CatalogSourceFile, "":
		return catalog.LoadFile(cfg.Catalog.File)
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}
