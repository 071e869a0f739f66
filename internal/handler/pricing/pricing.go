// Package pricing exposes the quote endpoint.
package pricing

import (
	"github.com/gin-gonic/gin"

	commonhandler "github.com/Ulvounth/casa-sueno-backend/internal/common/handler"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
)

// Handler serves pricing quotes.
type Handler struct {
	bookings *bookingsvc.Service
}

// NewHandler creates a pricing handler.
func NewHandler(bookings *bookingsvc.Service) *Handler {
	return &Handler{bookings: bookings}
}

// RegisterRoutes mounts the pricing routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/pricing/quote", h.Quote)
}

// Quote returns the full price breakdown plus the minimum-stay check for a
// checkin/checkout pair.
func (h *Handler) Quote(c *gin.Context) {
	checkin, err := commonhandler.ParseDate(c.Query("checkin"))
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	checkout, err := commonhandler.ParseDate(c.Query("checkout"))
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}

	quote, err := h.bookings.Quote(c.Request.Context(), checkin, checkout)
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	response.Success(c, quote)
}
