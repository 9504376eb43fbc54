package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/srgjo27/quincho_booking/internal/core/ports"
	"github.com/srgjo27/quincho_booking/internal/core/services"
)

type RouterConfig struct {
	AllowedOrigins []string
	CookieName     string
	MetricsEnabled bool
}

func NewRouter(
	cfg RouterConfig,
	bookingHandler *BookingHandler,
	adminHandler *AdminHandler,
	auth *services.AuthService,
	limiter ports.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")
	api.Use(NoCache())
	if limiter != nil {
		api.Use(RateLimit(limiter))
	}
	{
		api.GET("/availability", bookingHandler.GetAvailability)
		api.POST("/request", bookingHandler.CreateBooking)

		admin := api.Group("/admin")
		{
			admin.POST("/login", adminHandler.Login)
			admin.POST("/logout", adminHandler.Logout)
			admin.GET("/session", adminHandler.Session)

			bookings := admin.Group("/bookings")
			bookings.Use(RequireAdmin(auth, cfg.CookieName))
			{
				bookings.GET("", adminHandler.ListBookings)
				bookings.PUT("/:id", adminHandler.UpdateStatus)
				bookings.DELETE("/:id", adminHandler.DeleteBooking)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found."})
	})

	return r
}
