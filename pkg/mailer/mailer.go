// Package mailer sends transactional email.
package mailer

import (
	"context"
	"fmt"
)

// Message is one outbound email.
type Message struct {
	To       []string
	Subject  string
	HTML     string
	ReplyTo  string
	Template string
}

// Sender delivers messages.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Config holds sender settings.
type Config struct {
	Provider   string
	APIKey     string
	FromName   string
	FromEmail  string
	OwnerEmail string
	ReplyTo    string
}

// From returns the formatted sender address.
func (c *Config) From() string {
	if c.FromName == "" {
		return c.FromEmail
	}
	return fmt.Sprintf("%s <%s>", c.FromName, c.FromEmail)
}

// NewSender builds a sender for the configured provider. Unknown providers
// fall back to the mock sender so a missing API key never breaks bookings.
func NewSender(cfg *Config) Sender {
	switch cfg.Provider {
	case "resend":
		return NewResendSender(cfg)
	default:
		return NewMockSender()
	}
}
