// Package contact exposes the contact-form endpoint.
package contact

import (
	"github.com/gin-gonic/gin"

	commonhandler "github.com/Ulvounth/casa-sueno-backend/internal/common/handler"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/response"
	contactsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/contact"
)

// Handler serves the contact form.
type Handler struct {
	contacts *contactsvc.Service
}

// NewHandler creates a contact handler.
func NewHandler(contacts *contactsvc.Service) *Handler {
	return &Handler{contacts: contacts}
}

// RegisterRoutes mounts the contact route.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/contact", h.Submit)
}

type submitRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required,max=5000"`
}

// Submit relays a contact-form message to the owner.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	msg, err := h.contacts.Submit(c.Request.Context(), &contactsvc.SubmitRequest{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		commonhandler.HandleError(c, err)
		return
	}
	response.Success(c, gin.H{"id": msg.ID, "relayed": msg.RelayedAt != nil})
}
