// Package contact relays contact-form submissions to the owner.
package contact

import (
	"context"
	"time"

	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/metrics"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/utils"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	"github.com/Ulvounth/casa-sueno-backend/pkg/mailer"
)

// Service stores contact messages and forwards them by email.
type Service struct {
	repo       *repository.ContactRepository
	sender     mailer.Sender
	ownerEmail string
}

// NewService creates a contact service.
func NewService(repo *repository.ContactRepository, sender mailer.Sender, ownerEmail string) *Service {
	return &Service{
		repo:       repo,
		sender:     sender,
		ownerEmail: ownerEmail,
	}
}

// SubmitRequest is a parsed contact-form submission.
type SubmitRequest struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit stores the message and relays it to the owner. The relay failure
// is logged, the stored message keeps an empty relayed_at for a later retry.
func (s *Service) Submit(ctx context.Context, req *SubmitRequest) (*models.ContactMessage, error) {
	if !utils.ValidateEmail(req.Email) {
		return nil, apperrors.ErrInvalidParams.WithMessage("invalid email address")
	}

	msg := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if req.Subject != "" {
		msg.Subject = utils.StringPtr(req.Subject)
	}

	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}

	relay := mailer.ContactRelay(s.ownerEmail, req.Name, req.Email, req.Subject, req.Message)
	if err := s.sender.Send(ctx, relay); err != nil {
		metrics.Get().RecordEmail(relay.Template, "failure")
		logger.Error("contact relay failed",
			logger.Module("contact"),
			logger.Int64("message_id", msg.ID),
			logger.Err(err),
		)
		return msg, nil
	}
	metrics.Get().RecordEmail(relay.Template, "success")

	now := time.Now()
	if err := s.repo.MarkRelayed(ctx, msg.ID, now); err == nil {
		msg.RelayedAt = &now
	}
	return msg, nil
}
