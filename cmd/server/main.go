package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aroifoods/salescrm/internal/config"
	"github.com/aroifoods/salescrm/internal/entity"
	"github.com/aroifoods/salescrm/internal/handler"
	"github.com/aroifoods/salescrm/internal/identity"
	"github.com/aroifoods/salescrm/internal/middleware"
	"github.com/aroifoods/salescrm/internal/repository"
	"github.com/aroifoods/salescrm/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting salescrm service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	idp := identity.NewHTTPProvider(cfg.Identity.BaseURL, cfg.Identity.SecretKey, rdb)

	repos := repository.NewRepositories(db)
	services := service.NewServices(db, repos, idp, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Unique violations must surface as gorm.ErrDuplicatedKey for
		// the store-code retry loop and the product 409 path.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(cfg.JWT.Secret))

	admin := middleware.RequireAdmin()

	stores := v1.Group("/stores")
	{
		stores.GET("", h.Store.List)
		stores.POST("", h.Store.Create)
		stores.GET("/export", h.Store.Export)
		stores.GET("/:id", h.Store.Get)
		stores.PUT("/:id", h.Store.Update)
		stores.DELETE("/:id", admin, h.Store.Delete)
		stores.DELETE("", admin, h.Store.DeleteAll)
		stores.POST("/import", admin, h.Store.Import)
		stores.POST("/import/excel", admin, h.Store.ImportExcel)
	}

	visits := v1.Group("/visits")
	{
		visits.GET("", h.Visit.List)
		visits.POST("", h.Visit.Create)
		visits.DELETE("/:id", admin, h.Visit.Delete)
		visits.DELETE("", admin, h.Visit.DeleteAll)
		visits.POST("/import", h.Visit.Import)
		visits.POST("/import/excel", h.Visit.ImportExcel)
	}

	plans := v1.Group("/plans")
	{
		plans.GET("", h.Plan.List)
		plans.POST("", h.Plan.Create)
		plans.PUT("/:id", h.Plan.Update)
		plans.DELETE("/:id", h.Plan.Delete)
		plans.POST("/import", admin, h.Plan.Import)
		plans.POST("/import/excel", admin, h.Plan.ImportExcel)
	}

	forecasts := v1.Group("/forecasts")
	{
		forecasts.GET("", h.Forecast.List)
		forecasts.POST("", h.Forecast.Create)
		forecasts.GET("/:id", h.Forecast.Get)
		forecasts.PUT("/:id", admin, h.Forecast.Update)
		forecasts.DELETE("/:id", admin, h.Forecast.Delete)
	}

	issues := v1.Group("/issues")
	{
		issues.GET("", h.Issue.List)
		issues.POST("", h.Issue.Create)
		issues.PUT("/:id", admin, h.Issue.Update)
		issues.DELETE("/:id", admin, h.Issue.Delete)
		issues.POST("/import", admin, h.Issue.Import)
		issues.POST("/import/excel", admin, h.Issue.ImportExcel)
	}

	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
	}

	// Path casing kept for the spreadsheet sync scripts that already
	// call it.
	orderTracking := v1.Group("/OrderTracking")
	{
		orderTracking.GET("", h.Purchase.List)
		orderTracking.POST("", h.Purchase.Create)
		orderTracking.POST("/import", h.Purchase.Import)
		orderTracking.POST("/import/excel", h.Purchase.ImportExcel)
	}

	profile := v1.Group("/profile")
	{
		profile.GET("", h.Profile.List)
		profile.POST("", h.Profile.Create)
		profile.GET("/check", h.Profile.Check)
	}

	v1.DELETE("/nuclear", admin, h.Maintenance.Nuclear)
	v1.GET("/storage-usage", admin, h.Maintenance.StorageUsage)
	v1.GET("/clean-sales", admin, h.Maintenance.CleanSales)
	v1.GET("/fix-dates", admin, h.Maintenance.FixDates)
}
