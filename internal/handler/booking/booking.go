// Package booking exposes the guest booking endpoints.
package booking

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	commonhandler "github.com/Ulvounth/casa-sueno-backend/internal/common/handler"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
)

// Handler serves booking submission and availability.
type Handler struct {
	bookings *bookingsvc.Service
}

// NewHandler creates a booking handler.
func NewHandler(bookings *bookingsvc.Service) *Handler {
	return &Handler{bookings: bookings}
}

// RegisterRoutes mounts the guest booking routes. The confirm route sits
// behind the admin session middleware.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, adminAuth gin.HandlerFunc) {
	r.GET("/availability", h.Availability)
	r.POST("/booking", h.Create)
	r.POST("/booking/confirm", adminAuth, h.Confirm)
}

// createRequest is the booking submission body. The price fields the form
// echoes back are accepted but ignored; totals are recomputed server-side.
type createRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Email    string  `json:"email" binding:"required,email"`
	Phone    string  `json:"phone"`
	Checkin  string  `json:"checkin" binding:"required"`
	Checkout string  `json:"checkout" binding:"required"`
	Guests   int     `json:"guests" binding:"required,min=1"`
	Message  string  `json:"message"`
	Subtotal float64 `json:"subtotal"`
	Total    float64 `json:"totalPrice"`
}

// Create submits a booking.
func (h *Handler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	checkin, err := commonhandler.ParseDate(req.Checkin)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	checkout, err := commonhandler.ParseDate(req.Checkout)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}

	result, err := h.bookings.Create(c.Request.Context(), &bookingsvc.CreateRequest{
		GuestName:  req.Name,
		GuestEmail: req.Email,
		GuestPhone: req.Phone,
		Checkin:    checkin,
		Checkout:   checkout,
		Guests:     req.Guests,
		Message:    req.Message,
	})
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}

	// A stale quote is accepted, not rejected: pricing may legitimately
	// change between quote and submit. The recomputed total wins.
	if req.Total != 0 && req.Total != result.Booking.TotalPrice {
		logger.Warn("client total differs from recomputed total",
			logger.BookingRef(result.Booking.Reference),
			logger.Float64("client_total", req.Total),
			logger.Float64("server_total", result.Booking.TotalPrice),
		)
	}

	response.Success(c, result)
}

// Availability returns the blocked date ranges for the date picker.
func (h *Handler) Availability(c *gin.Context) {
	ranges, err := h.bookings.UnavailableDates(c.Request.Context())
	commonhandler.MustSucceed(c, gin.H{"unavailable": ranges}, err)
}

type confirmRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// Confirm marks a booking's payment as received.
func (h *Handler) Confirm(c *gin.Context) {
	var req confirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonhandler.HandleError(c, apperrors.ErrInvalidParams)
		return
	}
	booking, err := h.bookings.ConfirmPayment(c.Request.Context(), req.BookingID)
	commonhandler.MustSucceed(c, booking, err)
}
