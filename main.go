// File: detailify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"detailify/config"
	"detailify/database"
	scheduleRepo "detailify/database/repository/schedule"
	"detailify/handlers"
	"detailify/middleware"
	"detailify/routes"
	"detailify/services/scheduling"
	"detailify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()

	// Booking gate: in-process by default, Redis-backed for multi-instance
	// deployments. Either way callers see the same interface.
	var gate scheduling.Gate
	var redisClients []*redis.Client
	redisClients = append(redisClients, utils.GetCacheClient())
	if config.AppConfig.UseRedisGate {
		utils.InitGateCache()
		redisClients = append(redisClients, utils.GetGateCacheClient())
		gate = scheduling.NewRedisGate(utils.GetGateCacheClient(), logger)
	} else {
		memGate := scheduling.NewMemoryGate()
		stopSweeper := memGate.StartSweeper(time.Minute)
		defer stopSweeper()
		gate = memGate
	}

	resolver := &scheduling.ConflictResolver{
		SuggestionCount: config.AppConfig.SuggestionCount,
		Logger:          logger,
	}

	scheduleHandler := handlers.NewScheduleHandler(schedRepo, gate, resolver, logger)
	routes.RegisterRoutes(router, scheduleHandler)

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
