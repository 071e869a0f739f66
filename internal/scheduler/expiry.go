package scheduler

import (
	"context"
	"time"

	bookingsvc "github.com/Ulvounth/casa-sueno-backend/internal/service/booking"
)

// ExpiryTask cancels stale unpaid bank-transfer bookings.
type ExpiryTask struct {
	bookings *bookingsvc.Service
	interval time.Duration
}

// NewExpiryTask creates the pending-booking expiry task.
func NewExpiryTask(bookings *bookingsvc.Service, interval time.Duration) *ExpiryTask {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpiryTask{bookings: bookings, interval: interval}
}

// Name implements Task.
func (t *ExpiryTask) Name() string { return "booking_expiry" }

// Interval implements Task.
func (t *ExpiryTask) Interval() time.Duration { return t.interval }

// Run implements Task.
func (t *ExpiryTask) Run(ctx context.Context) error {
	_, err := t.bookings.ExpirePending(ctx)
	return err
}
