// Package booking implements the booking funnel: quotes, submissions,
// payment confirmation, cancellation and the availability calendar.
package booking

import (
	"context"
	"time"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/logger"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/metrics"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/qrcode"
	"github.com/Ulvounth/casa-sueno-backend/internal/common/utils"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	"github.com/Ulvounth/casa-sueno-backend/internal/service/pricing"
	"github.com/Ulvounth/casa-sueno-backend/pkg/mailer"
)

// referencePrefix starts every booking reference.
const referencePrefix = "CS"

// Service is the booking service.
type Service struct {
	repo   *repository.BookingRepository
	engine *pricing.Engine
	source pricing.ConfigSource
	sender mailer.Sender
	qr     *qrcode.Generator
	cfg    *config.Config
}

// NewService creates a booking service.
func NewService(repo *repository.BookingRepository, source pricing.ConfigSource, sender mailer.Sender, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		engine: pricing.NewEngine(source),
		source: source,
		sender: sender,
		qr:     qrcode.NewGenerator(),
		cfg:    cfg,
	}
}

// CreateRequest is a parsed booking submission. Client-supplied totals are
// accepted in the payload for compatibility but always recomputed here.
type CreateRequest struct {
	GuestName  string
	GuestEmail string
	GuestPhone string
	Checkin    time.Time
	Checkout   time.Time
	Guests     int
	Message    string
}

// BankTransferDetails are the payment instructions returned with a pending
// booking and repeated in the guest email.
type BankTransferDetails struct {
	Holder           string  `json:"holder"`
	IBAN             string  `json:"iban"`
	BIC              string  `json:"bic,omitempty"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
	PaymentReference string  `json:"payment_reference"`
	QRDataURL        string  `json:"qr_data_url,omitempty"`
}

// CreateResult is the outcome of a successful submission.
type CreateResult struct {
	Booking      *models.Booking           `json:"booking"`
	Breakdown    *pricing.PricingBreakdown `json:"breakdown"`
	GapWarning   string                    `json:"gap_warning,omitempty"`
	BankTransfer *BankTransferDetails      `json:"bank_transfer,omitempty"`
}

// Quote returns the price breakdown and minimum-stay check for a range.
func (s *Service) Quote(ctx context.Context, checkin, checkout time.Time) (*pricing.Quote, error) {
	return s.engine.Quote(ctx, checkin, checkout)
}

// Create validates and persists a booking. The conflict check and the insert
// are separate statements with no transactional isolation, so two concurrent
// submissions for overlapping dates can both pass. Email failures are logged
// and never fail the booking.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*CreateResult, error) {
	if !req.Checkout.After(req.Checkin) {
		return nil, apperrors.ErrInvalidDateRange
	}
	today := truncateToDay(time.Now().UTC())
	if req.Checkin.Before(today) {
		return nil, apperrors.ErrBookingInPast
	}
	if req.Guests < 1 || req.Guests > s.cfg.Booking.MaxGuests {
		return nil, apperrors.ErrTooManyGuests
	}
	if !utils.ValidateEmail(req.GuestEmail) {
		return nil, apperrors.ErrInvalidParams.WithMessage("invalid email address")
	}

	conflict, err := s.repo.ExistsOverlapping(ctx, req.Checkin, req.Checkout)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	if conflict {
		return nil, apperrors.ErrBookingConflict
	}

	pricingCfg, err := s.source.Pricing(ctx)
	if err != nil {
		return nil, apperrors.ErrPricingNotFound.WithError(err)
	}
	rules, err := s.source.SeasonRules(ctx)
	if err != nil {
		return nil, apperrors.ErrSeasonsNotFound.WithError(err)
	}

	stay, err := pricing.ValidateMinimumStay(req.Checkin, req.Checkout, pricingCfg, rules)
	if err != nil {
		return nil, err
	}
	if !stay.IsValid {
		return nil, apperrors.ErrMinimumStay.WithMessage(stay.Message)
	}

	// Advisory only: a stranded short gap is surfaced as a warning, it does
	// not reject the submission.
	var gapWarning string
	neighbours, err := s.repo.ListActive(ctx, today)
	if err == nil {
		if gap, gapErr := pricing.WouldCreateIsolatedGap(req.Checkin, req.Checkout, neighbours, pricingCfg, rules); gapErr == nil && gap.HasGap {
			gapWarning = gap.Message
		}
	}

	breakdown, err := pricing.Calculate(req.Checkin, req.Checkout, pricingCfg, rules)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:           utils.GenerateBookingRef(referencePrefix),
		GuestName:           req.GuestName,
		GuestEmail:          req.GuestEmail,
		StartDate:           req.Checkin,
		EndDate:             req.Checkout,
		Guests:              req.Guests,
		Nights:              breakdown.Nights,
		PricePerNight:       breakdown.AveragePricePerNight(),
		CleaningFee:         breakdown.CleaningFee,
		Subtotal:            breakdown.BaseTotal,
		LongStayDiscount:    breakdown.LongStayDiscount,
		HasLongStayDiscount: breakdown.HasLongStayDiscount,
		TotalPrice:          breakdown.TotalAmount,
		Currency:            breakdown.Currency,
		Status:              models.BookingStatusPending,
		PaymentMethod:       s.paymentMethod(),
		PaymentReference:    utils.GeneratePaymentReference(),
	}
	if req.GuestPhone != "" {
		booking.GuestPhone = utils.StringPtr(req.GuestPhone)
	}
	if req.Message != "" {
		booking.Message = utils.StringPtr(req.Message)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	metrics.Get().RecordBooking(models.BookingStatusPending)

	result := &CreateResult{
		Booking:    booking,
		Breakdown:  breakdown,
		GapWarning: gapWarning,
	}
	if booking.PaymentMethod == models.PaymentMethodBankTransfer {
		result.BankTransfer = s.bankTransferDetails(booking)
	}

	s.sendBookingEmails(ctx, booking, result.BankTransfer)

	logger.Info("booking created",
		logger.Module("booking"),
		logger.BookingID(booking.ID),
		logger.BookingRef(booking.Reference),
		logger.Int("nights", booking.Nights),
		logger.Float64("total", booking.TotalPrice),
	)

	return result, nil
}

func (s *Service) paymentMethod() string {
	if s.cfg.Payment.Flow == "stripe" {
		return models.PaymentMethodStripe
	}
	return models.PaymentMethodBankTransfer
}

func (s *Service) bankTransferDetails(booking *models.Booking) *BankTransferDetails {
	details := &BankTransferDetails{
		Holder:           s.cfg.Payment.BankHolder,
		IBAN:             s.cfg.Payment.BankIBAN,
		BIC:              s.cfg.Payment.BankBIC,
		Amount:           booking.TotalPrice,
		Currency:         booking.Currency,
		PaymentReference: booking.PaymentReference,
	}

	if details.IBAN != "" {
		payload := qrcode.EPCPayload(qrcode.EPCPayment{
			BIC:        details.BIC,
			Name:       details.Holder,
			IBAN:       details.IBAN,
			Currency:   details.Currency,
			Amount:     details.Amount,
			Remittance: details.PaymentReference,
		})
		if dataURL, err := s.qr.GenerateDataURL(payload); err == nil {
			details.QRDataURL = dataURL
		} else {
			logger.Warn("payment qr generation failed",
				logger.Module("booking"),
				logger.BookingRef(booking.Reference),
				logger.Err(err),
			)
		}
	}

	return details
}

func (s *Service) sendBookingEmails(ctx context.Context, booking *models.Booking, bank *BankTransferDetails) {
	details := s.mailDetails(booking)
	if bank != nil {
		details.PaymentReference = bank.PaymentReference
		details.BankHolder = bank.Holder
		details.BankIBAN = bank.IBAN
		details.BankBIC = bank.BIC
		details.QRDataURL = bank.QRDataURL
	}

	s.sendMail(ctx, mailer.GuestBookingReceived(details), booking)
	s.sendMail(ctx, mailer.OwnerBookingNotice(s.cfg.Mail.OwnerEmail, details), booking)
}

func (s *Service) mailDetails(booking *models.Booking) *mailer.BookingDetails {
	return &mailer.BookingDetails{
		Reference:  booking.Reference,
		GuestName:  booking.GuestName,
		GuestEmail: booking.GuestEmail,
		Checkin:    booking.StartDate.Format("2006-01-02"),
		Checkout:   booking.EndDate.Format("2006-01-02"),
		Nights:     booking.Nights,
		Guests:     booking.Guests,
		TotalPrice: booking.TotalPrice,
		Currency:   booking.Currency,
		Message:    utils.SafeString(booking.Message),
	}
}

// sendMail delivers one message, logging and counting failures without
// propagating them.
func (s *Service) sendMail(ctx context.Context, msg *mailer.Message, booking *models.Booking) {
	if err := s.sender.Send(ctx, msg); err != nil {
		metrics.Get().RecordEmail(msg.Template, "failure")
		logger.Error("email send failed",
			logger.Module("booking"),
			logger.BookingRef(booking.Reference),
			logger.String("template", msg.Template),
			logger.Err(err),
		)
		return
	}
	metrics.Get().RecordEmail(msg.Template, "success")
}

// ConfirmPayment marks a pending booking paid and confirmed.
func (s *Service) ConfirmPayment(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrBookingNotFound
	}
	if booking.Status != models.BookingStatusPending {
		return nil, apperrors.ErrBookingStatusError
	}

	if err := s.repo.Confirm(ctx, id); err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	metrics.Get().RecordBooking(models.BookingStatusConfirmed)

	booking.Status = models.BookingStatusConfirmed
	now := time.Now()
	booking.PaidAt = &now

	s.sendMail(ctx, mailer.GuestPaymentConfirmed(s.mailDetails(booking)), booking)

	logger.Info("booking confirmed",
		logger.Module("booking"),
		logger.BookingID(booking.ID),
		logger.BookingRef(booking.Reference),
	)
	return booking, nil
}

// Cancel cancels an active booking.
func (s *Service) Cancel(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.ErrBookingNotFound
	}
	if !booking.IsActive() {
		return nil, apperrors.ErrBookingStatusError
	}

	if err := s.repo.Cancel(ctx, id); err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}
	metrics.Get().RecordBooking(models.BookingStatusCancelled)

	booking.Status = models.BookingStatusCancelled
	now := time.Now()
	booking.CancelledAt = &now

	s.sendMail(ctx, mailer.GuestBookingCancelled(s.mailDetails(booking)), booking)

	logger.Info("booking cancelled",
		logger.Module("booking"),
		logger.BookingID(booking.ID),
		logger.BookingRef(booking.Reference),
	)
	return booking, nil
}

// Delete removes a booking outright.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return apperrors.ErrBookingNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return apperrors.ErrDatabaseError.WithError(err)
	}
	return nil
}

// ListFilters narrows the admin booking list.
type ListFilters struct {
	Status     string
	GuestEmail string
	Reference  string
	From       *time.Time
	To         *time.Time
}

// List returns bookings for the admin panel, newest first.
func (s *Service) List(ctx context.Context, filters ListFilters, page utils.Pagination) ([]*models.Booking, int64, error) {
	f := map[string]interface{}{}
	if filters.Status != "" {
		f["status"] = filters.Status
	}
	if filters.GuestEmail != "" {
		f["guest_email"] = filters.GuestEmail
	}
	if filters.Reference != "" {
		f["reference"] = filters.Reference
	}
	if filters.From != nil {
		f["from"] = *filters.From
	}
	if filters.To != nil {
		f["to"] = *filters.To
	}

	bookings, total, err := s.repo.List(ctx, page.GetOffset(), page.GetLimit(), f)
	if err != nil {
		return nil, 0, apperrors.ErrDatabaseError.WithError(err)
	}
	return bookings, total, nil
}

// DateRange is one blocked span for the date picker.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// UnavailableDates returns the blocked date ranges from today onward.
func (s *Service) UnavailableDates(ctx context.Context) ([]DateRange, error) {
	today := truncateToDay(time.Now().UTC())
	bookings, err := s.repo.ListActive(ctx, today)
	if err != nil {
		return nil, apperrors.ErrDatabaseError.WithError(err)
	}

	ranges := make([]DateRange, 0, len(bookings))
	for _, b := range bookings {
		ranges = append(ranges, DateRange{
			Start: b.StartDate.Format("2006-01-02"),
			End:   b.EndDate.Format("2006-01-02"),
		})
	}
	return ranges, nil
}

// ExpirePending cancels unpaid bank-transfer bookings older than the
// configured holding period. Returns the number cancelled.
func (s *Service) ExpirePending(ctx context.Context) (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.Booking.PendingExpiryDays)
	stale, err := s.repo.ListExpiredPending(ctx, cutoff, 100)
	if err != nil {
		return 0, apperrors.ErrDatabaseError.WithError(err)
	}

	expired := 0
	for _, booking := range stale {
		if err := s.repo.Cancel(ctx, booking.ID); err != nil {
			logger.Error("pending booking expiry failed",
				logger.Module("booking"),
				logger.BookingID(booking.ID),
				logger.Err(err),
			)
			continue
		}
		metrics.Get().RecordBooking(models.BookingStatusCancelled)
		s.sendMail(ctx, mailer.GuestBookingCancelled(s.mailDetails(booking)), booking)
		expired++
	}

	if expired > 0 {
		logger.Info("expired stale pending bookings",
			logger.Module("booking"),
			logger.Int("count", expired),
		)
	}
	return expired, nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
