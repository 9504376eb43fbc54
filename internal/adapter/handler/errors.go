package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
)

func respondMessage(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "message": message})
}

// respondError maps domain errors onto status codes. Anything unrecognised is
// logged and reported with a generic message.
func respondError(c *gin.Context, err error) {
	if verr := domain.IsValidationError(err); verr != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": verr.Error(),
			"fields":  verr.Fields(),
		})
		return
	}

	if rerr := domain.IsInvalidRangeError(err); rerr != nil {
		respondMessage(c, http.StatusBadRequest, rerr.Message)
		return
	}

	if nerr := domain.IsNotFoundError(err); nerr != nil {
		respondMessage(c, http.StatusNotFound, "Booking not found.")
		return
	}

	if cerr := domain.IsConflictError(err); cerr != nil {
		respondMessage(c, http.StatusConflict, cerr.Message)
		return
	}

	if errors.Is(err, domain.ErrInvalidCredentials) {
		respondMessage(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	if errors.Is(err, domain.ErrNoSession) {
		respondMessage(c, http.StatusUnauthorized, "No active session.")
		return
	}

	log.Printf("Error handling %s %s: %v", c.Request.Method, c.FullPath(), err)
	respondMessage(c, http.StatusInternalServerError, msgInternalError)
}
