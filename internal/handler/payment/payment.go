// Package payment exposes the card checkout endpoints.
package payment

import (
	"io"

	"github.com/gin-gonic/gin"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	commonhandler "github.com/Ulvounth/casa-sueno-backend/internal/common/handler"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	paymentsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/payment"
)

// Handler serves the checkout session and webhook routes.
type Handler struct {
	payments *paymentsvc.Service
}

// NewHandler creates a payment handler.
func NewHandler(payments *paymentsvc.Service) *Handler {
	return &Handler{payments: payments}
}

// RegisterRoutes mounts the payment routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/payment/checkout-session", h.CreateCheckoutSession)
	r.POST("/payment/stripe-webhook", h.Webhook)
}

type checkoutRequest struct {
	BookingID int64 `json:"booking_id" binding:"required"`
}

// CreateCheckoutSession opens a hosted checkout for a pending booking.
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		commonhandler.HandleError(c, apperrors.ErrInvalidParams)
		return
	}
	result, err := h.payments.CreateCheckoutSession(c.Request.Context(), req.BookingID)
	commonhandler.MustSucceed(c, result, err)
}

// Webhook ingests provider events. The raw body is needed for signature
// verification, so no binding here.
func (h *Handler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		response.BadRequest(c, "unreadable payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.payments.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"received": true})
}
