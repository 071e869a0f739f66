// Package admin exposes the admin panel API.
package admin

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	commonhandler "github.com/Ulvounth/casa-sueno-backend/internal/common/handler"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	"github.com/Ulvounth/casa-sueno-backend/internal/middleware"
	adminsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/admin"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
)

// Handler serves admin login and booking management.
type Handler struct {
	admins   *adminsvc.Service
	bookings *bookingsvc.Service
	jwtCfg   *config.JWTConfig
}

// NewHandler creates an admin handler.
func NewHandler(admins *adminsvc.Service, bookings *bookingsvc.Service, jwtCfg *config.JWTConfig) *Handler {
	return &Handler{
		admins:   admins,
		bookings: bookings,
		jwtCfg:   jwtCfg,
	}
}

// RegisterRoutes mounts the admin routes. Everything except login sits
// behind the session middleware; login carries its own rate limit.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminAuth, loginLimit gin.HandlerFunc) {
	r.POST("/login", loginLimit, h.Login)

	authed := r.Group("", adminAuth)
	authed.GET("/verify", h.Verify)
	authed.POST("/logout", h.Logout)
	authed.GET("/bookings", h.ListBookings)
	authed.PUT("/bookings/:id/confirm", h.ConfirmBooking)
	authed.PUT("/bookings/:id/cancel", h.CancelBooking)
	authed.DELETE("/bookings/:id", h.DeleteBooking)
}

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login verifies the admin password and sets the session cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "password is required")
		return
	}

	result, err := h.admins.Login(c.Request.Context(), req.Password, c.ClientIP())
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}

	maxAge := int(time.Until(time.Unix(result.ExpiresAt, 0)).Seconds())
	c.SetCookie(h.jwtCfg.CookieName, result.Token, maxAge, "/", h.jwtCfg.CookieDomain, h.jwtCfg.CookieSecure, true)

	response.Success(c, gin.H{
		"role":       result.Role,
		"expires_at": result.ExpiresAt,
	})
}

// Verify confirms the current session is valid.
func (h *Handler) Verify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}
	response.Success(c, gin.H{
		"role":       claims.Role,
		"expires_at": claims.ExpiresAt.Unix(),
	})
}

// Logout clears the session cookie.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.jwtCfg.CookieName, "", -1, "/", h.jwtCfg.CookieDomain, h.jwtCfg.CookieSecure, true)
	response.SuccessWithMessage(c, "logged out", nil)
}

// ListBookings returns bookings with filters and paging.
func (h *Handler) ListBookings(c *gin.Context) {
	page := commonhandler.BindPagination(c)

	filters := bookingsvc.ListFilters{
		Status:     c.Query("status"),
		GuestEmail: c.Query("email"),
		Reference:  c.Query("reference"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := commonhandler.ParseDate(v); err == nil {
			filters.From = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := commonhandler.ParseDate(v); err == nil {
			filters.To = &t
		}
	}

	bookings, total, err := h.bookings.List(c.Request.Context(), filters, page)
	commonhandler.MustSucceedPage(c, bookings, total, page.Page, page.PageSize, err)
}

func bookingID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ErrInvalidParams.WithMessage("invalid booking id")
	}
	return id, nil
}

// ConfirmBooking marks a booking's payment as received.
func (h *Handler) ConfirmBooking(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	booking, err := h.bookings.ConfirmPayment(c.Request.Context(), id)
	commonhandler.MustSucceed(c, booking, err)
}

// CancelBooking cancels a booking.
func (h *Handler) CancelBooking(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	booking, err := h.bookings.Cancel(c.Request.Context(), id)
	commonhandler.MustSucceed(c, booking, err)
}

// DeleteBooking removes a booking.
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := bookingID(c)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	if err := h.bookings.Delete(c.Request.Context(), id); err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	response.SuccessWithMessage(c, "deleted", nil)
}
