package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/noah-isme/mes-workflow-api/api/swagger"
	"github.com/noah-isme/mes-workflow-api/internal/handler"
	"github.com/noah-isme/mes-workflow-api/internal/middleware"
	"github.com/noah-isme/mes-workflow-api/internal/models"
	"github.com/noah-isme/mes-workflow-api/internal/repository"
	"github.com/noah-isme/mes-workflow-api/internal/service"
	"github.com/noah-isme/mes-workflow-api/pkg/cache"
	"github.com/noah-isme/mes-workflow-api/pkg/config"
	"github.com/noah-isme/mes-workflow-api/pkg/database"
	"github.com/noah-isme/mes-workflow-api/pkg/export"
	"github.com/noah-isme/mes-workflow-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/mes-workflow-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/mes-workflow-api/pkg/middleware/requestid"
)

// @title MES Workflow API
// @version 1.0.0
// @description Role-gated manufacturing workflow service
// @BasePath /api
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	// Redis is optional: the dashboards fall back to direct queries when
	// the cache is unavailable.
	var cacheSvc *service.CacheService
	metricsSvc := service.NewMetricsService()
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
	} else {
		defer redisClient.Close()
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Dashboard.CacheTTL, logr, true)
	}

	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	qcRepo := repository.NewQCRepository(db)

	validate := service.NewValidator()
	tokenSvc := service.NewTokenService(cfg.JWT)
	authSvc := service.NewAuthService(userRepo, tokenSvc, validate, logr)
	userSvc := service.NewUserService(userRepo, validate, logr)
	orderSvc := service.NewOrderService(orderRepo, userRepo, validate, logr)
	qcSvc := service.NewQCService(qcRepo, orderRepo, userRepo, export.NewQCReportRenderer(), validate, logr)
	dashboardSvc := service.NewDashboardService(orderRepo, qcRepo, userRepo, cacheSvc, cfg.Dashboard.CacheTTL, logr)

	authHandler := handler.NewAuthHandler(authSvc, cfg)
	userHandler := handler.NewUserHandler(userSvc)
	orderHandler := handler.NewOrderHandler(orderSvc, dashboardSvc)
	qcHandler := handler.NewQCHandler(qcSvc, dashboardSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if !cfg.IsProduction() {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "mes-workflow-api ready"})
	})

	api.POST("/login", authHandler.Login)
	api.GET("/refresh-token", middleware.RefreshCookie(tokenSvc), authHandler.Refresh)
	api.DELETE("/logout", middleware.RefreshCookie(tokenSvc), authHandler.Logout)

	admin := api.Group("", middleware.JWT(tokenSvc), middleware.RequireRoles(models.RoleAdmin))
	admin.POST("/register", userHandler.Register)
	admin.GET("/users", userHandler.List)
	admin.PUT("/user/:id", userHandler.Update)

	authed := api.Group("", middleware.JWT(tokenSvc))
	authed.GET("/production-orders", orderHandler.List)
	authed.GET("/production-order/:referenceNo", orderHandler.Detail)
	authed.POST("/production-order", middleware.RequireRoles(models.RoleOperator), orderHandler.Create)
	authed.PUT("/production-order/:referenceNo", middleware.RequireRoles(models.RoleOperator), orderHandler.UpdateStatus)
	authed.DELETE("/production-order/:referenceNo", middleware.RequireRoles(models.RoleOperator), orderHandler.Delete)

	authed.POST("/qc-report/:productionId", middleware.RequireRoles(models.RoleQC), qcHandler.Record)
	authed.GET("/qc-report/:referenceNo", middleware.RequireRoles(models.RoleQC), qcHandler.Export)

	authed.GET("/dashboard/production", dashboardHandler.Production)
	authed.GET("/dashboard/inspections", dashboardHandler.Inspections)
	authed.GET("/dashboard/users", middleware.RequireRoles(models.RoleAdmin), dashboardHandler.Users)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
