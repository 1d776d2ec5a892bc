package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todolist-web/internal/config"
	"todolist-web/internal/database"
	"todolist-web/internal/handlers"
	"todolist-web/internal/logging"
	"todolist-web/internal/middleware"
	"todolist-web/internal/session"
)

func main() {
	// Initialize logging first
	logConfig, err := logging.NewLogConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid logging configuration: %v\n", err)
		os.Exit(1)
	}
	logging.InitLogger(logConfig)

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		logging.Logger.Fatalf("Invalid configuration: %v", err)
	}
	securityConfig, err := middleware.NewSecurityConfigFromEnv()
	if err != nil {
		logging.Logger.Fatalf("Invalid security configuration: %v", err)
	}
	rateLimitConfig, err := middleware.NewRateLimitConfigFromEnv()
	if err != nil {
		logging.Logger.Fatalf("Invalid rate limit configuration: %v", err)
	}

	sessions := session.NewStore(cfg.Session.TTL)

	var db *gorm.DB
	storageMiddleware := middleware.SessionStorage()

	if cfg.UsesDatabase() {
		dbConfig, err := database.NewConfigFromEnv()
		if err != nil {
			logging.Logger.Fatalf("Invalid database configuration: %v", err)
		}

		db, err = database.Connect(dbConfig, logging.Logger)
		if err != nil {
			logging.Logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			logging.Logger.Fatalf("Failed to create schema: %v", err)
		}

		logging.Logger.WithField("driver", dbConfig.Driver).Info("Database storage initialized successfully")
		storageMiddleware = middleware.DatabaseStorage(db)
	} else {
		logging.Logger.Info("Using session storage")
	}

	// Set up Gin router (without default logger since we'll use our own)
	router := gin.New()
	router.Use(gin.Recovery())

	if err := router.SetTrustedProxies(securityConfig.TrustedProxies); err != nil {
		logging.Logger.Fatalf("Invalid trusted proxies: %v", err)
	}

	// Add security headers (should be first)
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestSizeLimit(securityConfig.MaxRequestBodySize))
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorSanitizer())
	router.Use(middleware.GlobalRateLimiter(rateLimitConfig))

	handlers.RegisterHealthRoutes(router, handlers.NewHealthHandler(db, sessions))

	// Pages need the caller's session and a storage bound to this request
	app := router.Group("", middleware.Sessions(sessions, cfg.Session), storageMiddleware)
	handlers.RegisterRoutes(app,
		handlers.NewListHandler(),
		handlers.NewTodoHandler(),
		middleware.WriteRateLimiter(rateLimitConfig),
	)

	logging.Logger.Infof("Starting server on port %s...", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logging.Logger.Fatalf("Failed to start server: %v", err)
	}
}
