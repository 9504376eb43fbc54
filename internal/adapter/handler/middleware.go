package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/ports"
	"github.com/srgjo27/quincho_booking/internal/core/services"
)

const sessionContextKey = "admin"

const (
	msgUnauthorized    = "Unauthorized: You must be logged in to access this resource."
	msgTooManyRequests = "Too many requests from this IP, please try again in 15 minutes."
)

// RequireAdmin rejects requests without a live admin session cookie.
func RequireAdmin(auth *services.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)

		session, err := auth.Session(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrNoSession) {
				log.Printf("Failed to load admin session: %v", err)
			}
			respondMessage(c, http.StatusUnauthorized, msgUnauthorized)
			return
		}

		c.Set(sessionContextKey, session)
		c.Next()
	}
}

func NoCache() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
		c.Header("Pragma", "no-cache")
		c.Header("Expires", "0")
		c.Next()
	}
}

// RateLimit counts requests per client IP. Limiter failures let the request through.
func RateLimit(limiter ports.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Printf("Rate limiter unavailable: %v", err)
			c.Next()
			return
		}

		if !allowed {
			respondMessage(c, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}

		c.Next()
	}
}
