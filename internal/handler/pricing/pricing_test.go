package pricing

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ulvounth/casa-sueno-backend/internal/common/config"
	"github.com/Ulvounth/casa-sueno-backend/internal/models"
	"github.com/Ulvounth/casa-sueno-backend/internal/repository"
	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
	pricingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/pricing"
	"github.com/Ulvounth/casa-sueno-backend/pkg/mailer"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Booking{}))

	cfg := &config.Config{
		Booking: config.BookingConfig{MaxGuests: 6, PendingExpiryDays: 5},
		Payment: config.PaymentConfig{Flow: "bank_transfer"},
	}
	bookings := bookingsvc.NewService(
		repository.NewBookingRepository(db),
		pricingsvc.NewStaticSource(),
		mailer.NewMockSender(),
		cfg,
	)

	r := gin.New()
	api := r.Group("/api/v1")
	NewHandler(bookings).RegisterRoutes(api)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestQuoteEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/quote?checkin=2030-01-10&checkout=2030-01-13", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 0, env.Code)

	var quote pricingsvc.Quote
	require.NoError(t, json.Unmarshal(env.Data, &quote))
	assert.Equal(t, 3, quote.Breakdown.Nights)
	assert.Equal(t, 180.03, quote.Breakdown.BaseTotal)
	assert.Equal(t, 270.03, quote.Breakdown.TotalAmount)
	assert.True(t, quote.MinimumStay.IsValid)
}

func TestQuoteEndpointBadDates(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/quote?checkin=nope&checkout=2030-01-13", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.NotEqual(t, 0, env.Code)
}

func TestQuoteEndpointInvalidRange(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pricing/quote?checkin=2030-01-13&checkout=2030-01-13", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.NotEqual(t, 0, env.Code)
}
