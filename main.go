// File: dashdine/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dashdine/config"
	"dashdine/cron"
	"dashdine/database"
	"dashdine/database/kv"
	"dashdine/handlers"
	"dashdine/middleware"
	"dashdine/routes"
	"dashdine/services/tasks"
	"dashdine/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitCache()
	utils.InitAuthCache()

	// Scheduler state persists through the configured key-value backend.
	var store kv.Store
	switch config.AppConfig.KVBackend {
	case "mongo":
		database.InitDB()
		store = kv.NewMongoStore(database.MongoClient, config.AppConfig.MongoDBName)
	case "memory":
		logger.Warn("using in-memory persistence; scheduler state will not survive restarts")
		store = kv.NewMemoryStore()
	default:
		store = kv.NewRedisStore(utils.GetCacheClient())
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()
	cron.InitReminderWorker(&cron.LogNotifier{Logger: logger})

	registry := handlers.NewSessionRegistry(store, reminderScheduler, logger)

	handlerBundle := &routes.HandlerBundle{
		Gig:          handlers.NewGigHandler(registry, logger),
		Availability: handlers.NewAvailabilityHandler(registry, logger),
		Progress:     handlers.NewProgressHandler(registry),
	}
	routes.RegisterRoutes(router, handlerBundle)

	redisClients := []*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()}
	utils.StartHealthMonitor(redisClients, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
