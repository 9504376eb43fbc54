package handler

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srgjo27/quincho_booking/internal/core/domain"
	"github.com/srgjo27/quincho_booking/internal/core/services"
)

// CookieConfig controls the admin session cookie.
type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AdminHandler struct {
	auth     *services.AuthService
	bookings *services.BookingService
	cookie   CookieConfig
}

func NewAdminHandler(auth *services.AuthService, bookings *services.BookingService, cookie CookieConfig) *AdminHandler {
	return &AdminHandler{
		auth:     auth,
		bookings: bookings,
		cookie:   cookie,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.cookie.Secure {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	token, session, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.cookie.TTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful.",
		"user":    session,
	})
}

func (h *AdminHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		respondMessage(c, http.StatusInternalServerError, "Could not log out, please try again.")
		return
	}

	h.setSessionCookie(c, "", -1)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout successful.",
	})
}

func (h *AdminHandler) Session(c *gin.Context) {
	token, _ := c.Cookie(h.cookie.Name)

	session, err := h.auth.Session(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"admin":   session,
	})
}

// ListBookings serves GET /api/admin/bookings?search=&status=.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.bookings.ListBookings(c.Request.Context(), c.Query("search"), c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	booking, err := h.bookings.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := sessionFromContext(c); ok {
		log.Printf("Admin %s set booking %d to %s", admin.Username, id, booking.Status)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking status updated.",
		"booking": toBookingResponse(booking),
	})
}

func (h *AdminHandler) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.bookings.DeleteBooking(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	if admin, ok := sessionFromContext(c); ok {
		log.Printf("Admin %s deleted booking %d", admin.Username, id)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Booking deleted successfully.",
	})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondMessage(c, http.StatusBadRequest, "Booking id must be a positive integer.")
		return 0, false
	}
	return id, true
}

// sessionFromContext returns the admin set by RequireAdmin, if any.
func sessionFromContext(c *gin.Context) (*domain.Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	return session, ok
}
