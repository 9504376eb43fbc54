package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/quincho_booking/internal/adapter/handler"
	"github.com/srgjo27/quincho_booking/internal/adapter/repository/postgres"
	redisrepo "github.com/srgjo27/quincho_booking/internal/adapter/repository/redis"
	"github.com/srgjo27/quincho_booking/internal/core/services"
	"github.com/srgjo27/quincho_booking/internal/platform/config"
	"github.com/srgjo27/quincho_booking/internal/platform/database"
	"github.com/srgjo27/quincho_booking/internal/platform/metrics"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Printf("Conflict policy: %s (index %s)", cfg.Policy.Name, cfg.Policy.IndexName)

	db, err := database.NewPostgresDB(database.Config{
		URL:      cfg.Database.URL,
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}
	defer db.Close()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := postgres.EnsureSchema(startupCtx, db, cfg.Policy); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	log.Printf("Connecting to Redis at %s...", cfg.RedisAddr())

	redisClient := redisrepo.NewClient(redisrepo.Config{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisrepo.Ping(startupCtx, redisClient); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	if cfg.Metrics.Enabled {
		metrics.Register()
	}

	bookingRepo := postgres.NewBookingRepository(db)
	slotRepo := postgres.NewSlotRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	availabilityCache := redisrepo.NewAvailabilityCache(redisClient, cfg.Booking.AvailabilityCacheTTL)
	sessionStore := redisrepo.NewSessionStore(redisClient, cfg.Session.TTL)
	rateLimiter := redisrepo.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window)

	availabilityService := services.NewAvailabilityService(slotRepo, availabilityCache)
	bookingService := services.NewBookingService(bookingRepo, slotRepo, availabilityService, cfg.Policy)
	authService := services.NewAuthService(adminRepo, sessionStore)

	if err := authService.EnsureDefaultAdmin(startupCtx, cfg.Admin.DefaultUser, cfg.Admin.DefaultPassword); err != nil {
		log.Printf("Failed to seed default admin: %v", err)
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Booking.PendingTTL > 0 {
		go bookingService.RunBackgroundCleanup(workerCtx, cfg.Booking.PendingTTL)
	}

	bookingHandler := handler.NewBookingHandler(bookingService, availabilityService)
	adminHandler := handler.NewAdminHandler(authService, bookingService, handler.CookieConfig{
		Name:   cfg.Session.CookieName,
		TTL:    cfg.Session.TTL,
		Secure: cfg.IsProduction(),
	})

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.AllowedOrigins(),
		CookieName:     cfg.Session.CookieName,
		MetricsEnabled: cfg.Metrics.Enabled,
	}, bookingHandler, adminHandler, authService, rateLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port :%s", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
