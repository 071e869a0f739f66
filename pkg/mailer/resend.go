package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
)

// ResendSender delivers mail through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a Resend-backed sender.
func NewResendSender(cfg *Config) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(cfg.APIKey),
		from:   cfg.From(),
	}
}

// Send delivers one message.
func (s *ResendSender) Send(ctx context.Context, msg *Message) error {
	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	}
	if msg.ReplyTo != "" {
		params.ReplyTo = msg.ReplyTo
	}

	_, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("resend send failed: %w", err)
	}
	return nil
}
