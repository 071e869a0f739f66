// Package payment implements the card checkout flow. It is the superseded
// alternative to the bank-transfer flow and only active when configured.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
)

// Service creates checkout sessions and processes webhook events.
type Service struct {
	repo     *repository.BookingRepository
	bookings *bookingsvc.Service
	cfg      *config.PaymentConfig
}

// NewService creates a payment service.
func NewService(repo *repository.BookingRepository, bookings *bookingsvc.Service, cfg *config.PaymentConfig) *Service {
	if cfg.StripeKey != "" {
		stripe.Key = cfg.StripeKey
	}
	return &Service{
		repo:     repo,
		bookings: bookings,
		cfg:      cfg,
	}
}

// Enabled reports whether the card flow is configured as active.
func (s *Service) Enabled() bool {
	return s.cfg.Flow == "stripe" && s.cfg.StripeKey != ""
}

// CheckoutResult carries the hosted checkout redirect.
type CheckoutResult struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckoutSession opens a hosted checkout session for a pending
// booking and stores the session ID on the booking.
func (s *Service) CreateCheckoutSession(ctx context.Context, bookingID int64) (*CheckoutResult, error) {
	if !s.Enabled() {
		return nil, apperrors.ErrPaymentFlowDisabled
	}

	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, apperrors.ErrBookingNotFound
	}
	if booking.Status != models.BookingStatusPending {
		return nil, apperrors.ErrBookingStatusError
	}

	amount := int64(math.Round(booking.TotalPrice * 100))
	name := fmt.Sprintf("Casa Sueño, %s to %s (%d nights)",
		booking.StartDate.Format("2006-01-02"),
		booking.EndDate.Format("2006-01-02"),
		booking.Nights,
	)

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(booking.Currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(name),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		CustomerEmail:     stripe.String(booking.GuestEmail),
		ClientReferenceID: stripe.String(booking.Reference),
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, apperrors.ErrCheckoutSessionError.WithError(err)
	}

	if err := s.repo.UpdateFields(ctx, booking.ID, map[string]interface{}{
		"stripe_session_id": sess.ID,
	}); err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}

	logger.Info("checkout session created",
		logger.Module("payment"),
		logger.BookingRef(booking.Reference),
		logger.String("session_id", sess.ID),
	)
	return &CheckoutResult{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleWebhook verifies and processes one webhook payload. Completed
// checkout sessions confirm their booking; other event types are ignored.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhook)
	if err != nil {
		return apperrors.ErrWebhookSignature.WithError(err)
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return apperrors.ErrInvalidParams.WithError(err)
		}
		return s.completeCheckout(ctx, &sess)
	default:
		logger.Debug("webhook event ignored",
			logger.Module("payment"),
			logger.String("type", string(event.Type)),
		)
		return nil
	}
}

func (s *Service) completeCheckout(ctx context.Context, sess *stripe.CheckoutSession) error {
	booking, err := s.repo.GetByStripeSession(ctx, sess.ID)
	if err != nil {
		logger.Warn("webhook for unknown session",
			logger.Module("payment"),
			logger.String("session_id", sess.ID),
		)
		return apperrors.ErrBookingNotFound
	}

	// Replays of an already confirmed session are acknowledged, not errors.
	if booking.Status == models.BookingStatusConfirmed {
		return nil
	}

	if _, err := s.bookings.ConfirmPayment(ctx, booking.ID); err != nil {
		return err
	}

	logger.Info("checkout completed",
		logger.Module("payment"),
		logger.BookingRef(booking.Reference),
		logger.String("session_id", sess.ID),
	)
	return nil
}
