package mailer

import (
	"fmt"
	"html"
	"strings"
)

// Template names, used as the metric label on send attempts.
const (
	TemplateGuestReceived  = "booking_received"
	TemplateOwnerNotice    = "owner_notice"
	TemplatePaymentConfirm = "payment_confirmed"
	TemplateCancellation   = "booking_cancelled"
	TemplateContactRelay   = "contact_relay"
)

// BookingDetails carries the fields the booking templates render.
type BookingDetails struct {
	Reference        string
	GuestName        string
	GuestEmail       string
	Checkin          string
	Checkout         string
	Nights           int
	Guests           int
	TotalPrice       float64
	Currency         string
	PaymentReference string
	BankHolder       string
	BankIBAN         string
	BankBIC          string
	QRDataURL        string
	Message          string
}

// GuestBookingReceived builds the acknowledgement sent to the guest,
// including the bank-transfer instructions for the pending payment.
func GuestBookingReceived(d *BookingDetails) *Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Thank you, %s!</h2>", html.EscapeString(d.GuestName))
	fmt.Fprintf(&b, "<p>We received your booking request for Casa Sue&ntilde;o.</p>")
	fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s<br>", html.EscapeString(d.Reference))
	fmt.Fprintf(&b, "<strong>Check-in:</strong> %s<br><strong>Check-out:</strong> %s<br>", d.Checkin, d.Checkout)
	fmt.Fprintf(&b, "<strong>Nights:</strong> %d &middot; <strong>Guests:</strong> %d<br>", d.Nights, d.Guests)
	fmt.Fprintf(&b, "<strong>Total:</strong> %.2f %s</p>", d.TotalPrice, d.Currency)

	if d.PaymentReference != "" {
		fmt.Fprintf(&b, "<h3>Payment by bank transfer</h3>")
		fmt.Fprintf(&b, "<p>Your booking is held for 5 days pending payment.</p>")
		fmt.Fprintf(&b, "<p><strong>Holder:</strong> %s<br>", html.EscapeString(d.BankHolder))
		fmt.Fprintf(&b, "<strong>IBAN:</strong> %s<br>", html.EscapeString(d.BankIBAN))
		if d.BankBIC != "" {
			fmt.Fprintf(&b, "<strong>BIC:</strong> %s<br>", html.EscapeString(d.BankBIC))
		}
		fmt.Fprintf(&b, "<strong>Amount:</strong> %.2f %s<br>", d.TotalPrice, d.Currency)
		fmt.Fprintf(&b, "<strong>Payment reference:</strong> %s</p>", html.EscapeString(d.PaymentReference))
		if d.QRDataURL != "" {
			fmt.Fprintf(&b, `<p>Scan with your banking app:</p><img src="%s" alt="payment QR" width="200" height="200">`, d.QRDataURL)
		}
	}

	return &Message{
		To:       []string{d.GuestEmail},
		Subject:  fmt.Sprintf("Booking request received - %s", d.Reference),
		HTML:     b.String(),
		Template: TemplateGuestReceived,
	}
}

// OwnerBookingNotice builds the notification sent to the owner.
func OwnerBookingNotice(ownerEmail string, d *BookingDetails) *Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>New booking request</h2>")
	fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s<br>", html.EscapeString(d.Reference))
	fmt.Fprintf(&b, "<strong>Guest:</strong> %s (%s)<br>", html.EscapeString(d.GuestName), html.EscapeString(d.GuestEmail))
	fmt.Fprintf(&b, "<strong>Dates:</strong> %s to %s (%d nights, %d guests)<br>", d.Checkin, d.Checkout, d.Nights, d.Guests)
	fmt.Fprintf(&b, "<strong>Total:</strong> %.2f %s<br>", d.TotalPrice, d.Currency)
	fmt.Fprintf(&b, "<strong>Payment reference:</strong> %s</p>", html.EscapeString(d.PaymentReference))
	if d.Message != "" {
		fmt.Fprintf(&b, "<p><strong>Guest message:</strong><br>%s</p>", html.EscapeString(d.Message))
	}

	return &Message{
		To:       []string{ownerEmail},
		Subject:  fmt.Sprintf("New booking request - %s", d.Reference),
		HTML:     b.String(),
		ReplyTo:  d.GuestEmail,
		Template: TemplateOwnerNotice,
	}
}

// GuestPaymentConfirmed builds the confirmation sent when payment lands.
func GuestPaymentConfirmed(d *BookingDetails) *Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Your booking is confirmed!</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, we received your payment. See you at Casa Sue&ntilde;o.</p>", html.EscapeString(d.GuestName))
	fmt.Fprintf(&b, "<p><strong>Reference:</strong> %s<br>", html.EscapeString(d.Reference))
	fmt.Fprintf(&b, "<strong>Check-in:</strong> %s<br><strong>Check-out:</strong> %s</p>", d.Checkin, d.Checkout)

	return &Message{
		To:       []string{d.GuestEmail},
		Subject:  fmt.Sprintf("Booking confirmed - %s", d.Reference),
		HTML:     b.String(),
		Template: TemplatePaymentConfirm,
	}
}

// GuestBookingCancelled builds the cancellation notice.
func GuestBookingCancelled(d *BookingDetails) *Message {
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Booking cancelled</h2>")
	fmt.Fprintf(&b, "<p>Hi %s, your booking %s for %s to %s has been cancelled.</p>",
		html.EscapeString(d.GuestName), html.EscapeString(d.Reference), d.Checkin, d.Checkout)

	return &Message{
		To:       []string{d.GuestEmail},
		Subject:  fmt.Sprintf("Booking cancelled - %s", d.Reference),
		HTML:     b.String(),
		Template: TemplateCancellation,
	}
}

// ContactRelay builds the contact-form relay to the owner.
func ContactRelay(ownerEmail, name, email, subject, message string) *Message {
	if subject == "" {
		subject = "Contact form message"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "<h2>Contact form</h2>")
	fmt.Fprintf(&b, "<p><strong>From:</strong> %s (%s)</p>", html.EscapeString(name), html.EscapeString(email))
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(message))

	return &Message{
		To:       []string{ownerEmail},
		Subject:  subject,
		HTML:     b.String(),
		ReplyTo:  email,
		Template: TemplateContactRelay,
	}
}
