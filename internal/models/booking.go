package models

import (
	"time"
)

// Booking is a guest reservation for the house.
type Booking struct {
	ID                  int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference           string     `gorm:"type:varchar(32);uniqueIndex;not null" json:"reference"`
	GuestName           string     `gorm:"type:varchar(100);not null" json:"guest_name"`
	GuestEmail          string     `gorm:"type:varchar(255);not null;index" json:"guest_email"`
	GuestPhone          *string    `gorm:"type:varchar(30)" json:"guest_phone,omitempty"`
	StartDate           time.Time  `gorm:"type:date;not null;index" json:"start_date"`
	EndDate             time.Time  `gorm:"type:date;not null;index" json:"end_date"`
	Guests              int        `gorm:"not null;default:2" json:"guests"`
	Message             *string    `gorm:"type:text" json:"message,omitempty"`
	Nights              int        `gorm:"not null" json:"nights"`
	PricePerNight       float64    `gorm:"type:decimal(10,2);not null" json:"price_per_night"`
	CleaningFee         float64    `gorm:"type:decimal(10,2);not null" json:"cleaning_fee"`
	Subtotal            float64    `gorm:"type:decimal(10,2);not null" json:"subtotal"`
	LongStayDiscount    float64    `gorm:"type:decimal(10,2);not null;default:0" json:"long_stay_discount"`
	HasLongStayDiscount bool       `gorm:"not null;default:false" json:"has_long_stay_discount"`
	TotalPrice          float64    `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Currency            string     `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	Status              string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	PaymentMethod       string     `gorm:"type:varchar(20);not null;default:'bank_transfer'" json:"payment_method"`
	PaymentReference    string     `gorm:"type:varchar(32);not null" json:"payment_reference"`
	StripeSessionID     *string    `gorm:"type:varchar(255)" json:"stripe_session_id,omitempty"`
	PaidAt              *time.Time `json:"paid_at,omitempty"`
	CancelledAt         *time.Time `json:"cancelled_at,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name.
func (Booking) TableName() string {
	return "bookings"
}

// Booking statuses.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Payment methods.
const (
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodStripe       = "stripe"
)

// IsActive reports whether the booking blocks its date range.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// ContactMessage is a contact-form submission relayed to the owner.
type ContactMessage struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"type:varchar(100);not null" json:"name"`
	Email     string     `gorm:"type:varchar(255);not null" json:"email"`
	Subject   *string    `gorm:"type:varchar(200)" json:"subject,omitempty"`
	Message   string     `gorm:"type:text;not null" json:"message"`
	RelayedAt *time.Time `json:"relayed_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
