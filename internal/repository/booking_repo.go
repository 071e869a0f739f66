// Package repository provides the data access layer.
package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Ulvounth/casa-sueno-backend/internal/models"
)

// BookingRepository is the booking store.
type BookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a booking repository.
func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts a booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

// GetByID fetches a booking by ID.
func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).First(&booking, id).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByReference fetches a booking by its reference.
func (r *BookingRepository) GetByReference(ctx context.Context, reference string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// GetByStripeSession fetches a booking by its checkout session ID.
func (r *BookingRepository) GetByStripeSession(ctx context.Context, sessionID string) (*models.Booking, error) {
	var booking models.Booking
	err := r.db.WithContext(ctx).
		Where("stripe_session_id = ?", sessionID).
		First(&booking).Error
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// Update saves a booking.
func (r *BookingRepository) Update(ctx context.Context, booking *models.Booking) error {
	return r.db.WithContext(ctx).Save(booking).Error
}

// UpdateFields updates selected columns.
func (r *BookingRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(fields).Error
}

// Confirm marks a booking paid and confirmed.
func (r *BookingRepository) Confirm(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  models.BookingStatusConfirmed,
			"paid_at": now,
		}).Error
}

// Cancel marks a booking cancelled.
func (r *BookingRepository) Cancel(ctx context.Context, id int64) error {
	now := time.Now()
	return r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
		}).Error
}

// Delete removes a booking.
func (r *BookingRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// activeStatuses are the statuses that block a date range.
var activeStatuses = []string{
	models.BookingStatusPending,
	models.BookingStatusConfirmed,
}

// ListActiveInRange returns active bookings overlapping [start, end).
func (r *BookingRepository) ListActiveInRange(ctx context.Context, start, end time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", activeStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Order("start_date ASC").
		Find(&bookings).Error
	return bookings, err
}

// ListActive returns every active booking from the given date onward.
func (r *BookingRepository) ListActive(ctx context.Context, from time.Time) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status IN ?", activeStatuses).
		Where("end_date >= ?", from).
		Order("start_date ASC").
		Find(&bookings).Error
	return bookings, err
}

// ExistsOverlapping reports whether an active booking overlaps [start, end).
// This is the read half of a check-then-insert sequence with no transactional
// isolation against concurrent submissions.
func (r *BookingRepository) ExistsOverlapping(ctx context.Context, start, end time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).
		Where("status IN ?", activeStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).Error
	return count > 0, err
}

// List returns bookings matching the filters, newest first.
func (r *BookingRepository) List(ctx context.Context, offset, limit int, filters map[string]interface{}) ([]*models.Booking, int64, error) {
	var bookings []*models.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Booking{})

	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if email, ok := filters["guest_email"].(string); ok && email != "" {
		query = query.Where("guest_email = ?", email)
	}
	if reference, ok := filters["reference"].(string); ok && reference != "" {
		query = query.Where("reference LIKE ?", "%"+reference+"%")
	}
	if from, ok := filters["from"].(time.Time); ok {
		query = query.Where("start_date >= ?", from)
	}
	if to, ok := filters["to"].(time.Time); ok {
		query = query.Where("start_date <= ?", to)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&bookings).Error; err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// ListExpiredPending returns pending bank-transfer bookings created before
// the cutoff, for the expiry task.
func (r *BookingRepository) ListExpiredPending(ctx context.Context, cutoff time.Time, limit int) ([]*models.Booking, error) {
	var bookings []*models.Booking
	err := r.db.WithContext(ctx).
		Where("status = ?", models.BookingStatusPending).
		Where("payment_method = ?", models.PaymentMethodBankTransfer).
		Where("created_at < ?", cutoff).
		Limit(limit).
		Find(&bookings).Error
	return bookings, err
}
