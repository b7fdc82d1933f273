package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/nextstopchina/forms-api/api/swagger"
	"github.com/nextstopchina/forms-api/internal/handler"
	"github.com/nextstopchina/forms-api/internal/mailer"
	"github.com/nextstopchina/forms-api/internal/middleware"
	"github.com/nextstopchina/forms-api/internal/repository"
	"github.com/nextstopchina/forms-api/internal/service"
	"github.com/nextstopchina/forms-api/pkg/cache"
	"github.com/nextstopchina/forms-api/pkg/config"
	"github.com/nextstopchina/forms-api/pkg/database"
	"github.com/nextstopchina/forms-api/pkg/logger"
	corsmiddleware "github.com/nextstopchina/forms-api/pkg/middleware/cors"
	reqidmiddleware "github.com/nextstopchina/forms-api/pkg/middleware/requestid"
	"github.com/nextstopchina/forms-api/pkg/response"
)

// @title Next Stop China Forms API
// @version 1.0.0
// @description Form intake backend: contact inquiries, study-abroad applications and newsletter subscriptions
// @BasePath /api
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

	response.SetVerbose(cfg.Env == config.EnvDevelopment)
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, rate limiting disabled", "error", err)
	}

	sender, err := mailer.NewPostmarkSender(cfg.Email)
	if err != nil {
		if cfg.Env == config.EnvProduction {
			logr.Sugar().Fatalw("mailer configuration invalid", "error", err)
		}
		logr.Sugar().Infow("postmark not configured, writing emails to disk", "dir", cfg.Email.DevDir)
		sender = mailer.NewDevSender(cfg.Email.DevDir)
	}

	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	renderer := mailer.NewRenderer(cfg.Email.SenderName)
	notifier := service.NewNotificationService(sender, renderer, cfg.Email.AdminEmail, logr, metrics)

	inquiries := repository.NewInquiryRepository(db)
	applications := repository.NewApplicationRepository(db)
	subscriptions := repository.NewSubscriptionRepository(db)

	contactSvc := service.NewContactService(inquiries, notifier, validate, logr, metrics)
	applicationSvc := service.NewApplicationService(applications, notifier, validate, logr, metrics)
	newsletterSvc := service.NewNewsletterService(subscriptions, notifier, validate, logr, metrics)

	contactHandler := handler.NewContactHandler(contactSvc)
	applicationHandler := handler.NewApplicationHandler(applicationSvc)
	newsletterHandler := handler.NewNewsletterHandler(newsletterSvc)
	emailHandler := handler.NewEmailHandler(cfg.Env, cfg.Email)
	healthHandler := handler.NewHealthHandler(db, metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.RequestLogger(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", healthHandler.Live)
	r.GET("/ready", healthHandler.Ready)
	r.GET("/metrics", healthHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	forms := api.Group("/forms")
	forms.Use(middleware.RateLimit(redisClient, cfg.RateLimit, logr, metrics))
	forms.POST("/contact", contactHandler.Submit)
	forms.POST("/application", applicationHandler.Submit)
	forms.POST("/newsletter", newsletterHandler.Subscribe)
	forms.POST("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)

	api.GET("/email/test", emailHandler.Test)

	admin := api.Group("/admin")
	admin.GET("/inquiries", contactHandler.List)
	admin.GET("/applications", applicationHandler.List)
	admin.GET("/subscriptions", newsletterHandler.List)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
