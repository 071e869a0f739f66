package booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	apperrors "github.com/Ulvounth/casa-sueno-backend/internal/common/errors"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	"github.com/Ulvounth/casa-sueno-backend/internal/service/pricing"
	"github.com/Ulvounth/casa-sueno-backend/pkg/mailer"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	svc    *Service
	repo   *repository.BookingRepository
	sender *mailer.MockSender
	db     *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}))

	repo := repository.NewBookingRepository(db)
	sender := mailer.NewMockSender()
	cfg := &config.Config{
		Booking: config.BookingConfig{MaxGuests: 6, PendingExpiryDays: 5},
		Payment: config.PaymentConfig{
			Flow:       "bank_transfer",
			BankHolder: "Casa Sueño",
			BankIBAN:   "ES9121000418450200051332",
			BankBIC:    "CAIXESBBXXX",
		},
		Mail: config.MailConfig{OwnerEmail: "owner@example.com"},
	}

	return &fixture{
		svc:    NewService(repo, pricing.NewStaticSource(), sender, cfg),
		repo:   repo,
		sender: sender,
		db:     db,
	}
}

func validRequest() *CreateRequest {
	// A week in April: middle season, satisfies the four-night minimum.
	return &CreateRequest{
		GuestName:  "Ana Guest",
		GuestEmail: "ana@example.com",
		GuestPhone: "+34 600 000 000",
		Checkin:    day(2030, time.April, 10),
		Checkout:   day(2030, time.April, 17),
		Guests:     2,
		Message:    "Looking forward to it!",
	}
}

func TestCreateBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	b := result.Booking
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentMethodBankTransfer, b.PaymentMethod)
	assert.True(t, strings.HasPrefix(b.Reference, "CS"))
	assert.True(t, strings.HasPrefix(b.PaymentReference, "CS-"))
	assert.Equal(t, 7, b.Nights)
	assert.Greater(t, b.Subtotal, 0.0)
	assert.InDelta(t, b.Subtotal-b.LongStayDiscount+b.CleaningFee, b.TotalPrice, 0.005)
	assert.Equal(t, "EUR", b.Currency)
	assert.Empty(t, result.GapWarning)

	require.NotNil(t, result.BankTransfer)
	assert.Equal(t, "ES9121000418450200051332", result.BankTransfer.IBAN)
	assert.Equal(t, b.TotalPrice, result.BankTransfer.Amount)
	assert.True(t, strings.HasPrefix(result.BankTransfer.QRDataURL, "data:image/png;base64,"))

	// Guest acknowledgement plus owner notification.
	msgs := f.sender.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{"ana@example.com"}, msgs[0].To)
	assert.Equal(t, []string{"owner@example.com"}, msgs[1].To)

	stored, err := f.repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.Reference, stored.Reference)
}

func TestCreateBookingConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	req := validRequest()
	req.Checkin = day(2030, time.April, 12)
	req.Checkout = day(2030, time.April, 20)
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBookingConflict)
}

func TestCreateBookingMinimumStay(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.Checkout = day(2030, time.April, 12) // 2 nights, middle needs 4
	_, err := f.svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrMinimumStay.Code, apperrors.GetAppError(err).Code)
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRequest()
	req.Checkout = req.Checkin
	_, err := f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	req = validRequest()
	req.Checkin = day(2020, time.April, 10)
	req.Checkout = day(2020, time.April, 17)
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrBookingInPast)

	req = validRequest()
	req.Guests = 9
	_, err = f.svc.Create(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrTooManyGuests)

	req = validRequest()
	req.GuestEmail = "not-an-email"
	_, err = f.svc.Create(ctx, req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrInvalidParams.Code, apperrors.GetAppError(err).Code)
}

func TestCreateBookingEmailFailureIsNonFatal(t *testing.T) {
	f := newFixture(t)
	f.sender.FailWith(errors.New("smtp down"))

	result, err := f.svc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, result.Booking.Status)
}

func TestCreateBookingGapWarning(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	// Checking in two nights after the existing checkout leaves a gap
	// shorter than the middle-season minimum. Advisory only: the booking
	// still goes through.
	req := validRequest()
	req.Checkin = day(2030, time.April, 19)
	req.Checkout = day(2030, time.April, 25)
	result, err := f.svc.Create(ctx, req)
	require.NoError(t, err)
	assert.NotEmpty(t, result.GapWarning)
	assert.Equal(t, models.BookingStatusPending, result.Booking.Status)
}

func TestConfirmPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)
	f.sender.Reset()

	confirmed, err := f.svc.ConfirmPayment(ctx, result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, confirmed.Status)
	assert.NotNil(t, confirmed.PaidAt)

	msgs := f.sender.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, mailer.TemplatePaymentConfirm, msgs[0].Template)

	// Confirming twice is a status error.
	_, err = f.svc.ConfirmPayment(ctx, result.Booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingStatusError)
}

func TestCancelBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	cancelled, err := f.svc.Cancel(ctx, result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)

	_, err = f.svc.Cancel(ctx, result.Booking.ID)
	assert.ErrorIs(t, err, apperrors.ErrBookingStatusError)

	// Cancelled dates are free again.
	_, err = f.svc.Create(ctx, validRequest())
	assert.NoError(t, err)
}

func TestUnavailableDates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	ranges, err := f.svc.UnavailableDates(ctx)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, "2030-04-10", ranges[0].Start)
	assert.Equal(t, "2030-04-17", ranges[0].End)
}

func TestExpirePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	result, err := f.svc.Create(ctx, validRequest())
	require.NoError(t, err)

	// Age the booking past the holding period.
	old := time.Now().AddDate(0, 0, -10)
	require.NoError(t, f.db.Model(&models.Booking{}).
		Where("id = ?", result.Booking.ID).
		Update("created_at", old).Error)

	expired, err := f.svc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, expired)

	stored, err := f.repo.GetByID(ctx, result.Booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, stored.Status)

	// Second pass finds nothing.
	expired, err = f.svc.ExpirePending(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, expired)
}
