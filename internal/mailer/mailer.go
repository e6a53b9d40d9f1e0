package mailer

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends transactional email to users
type Mailer interface {
	SendWelcome(ctx context.Context, email, username string) error
}

// Noop is a mailer that does nothing, for tests and local development
type Noop struct{}

func (Noop) SendWelcome(ctx context.Context, email, username string) error {
	return nil
}

// SendGrid sends mail through the SendGrid API
type SendGrid struct {
	client    *sendgrid.Client
	fromName  string
	fromEmail string
}

// NewSendGrid creates a SendGrid-backed mailer
func NewSendGrid(apiKey, fromName, fromEmail string) *SendGrid {
	return &SendGrid{
		client:    sendgrid.NewSendClient(apiKey),
		fromName:  fromName,
		fromEmail: fromEmail,
	}
}

// SendWelcome sends the post-registration welcome email
func (s *SendGrid) SendWelcome(ctx context.Context, email, username string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(username, email)
	subject := "Welcome to Guessing Game"
	plain := fmt.Sprintf("Hi %s,\n\nYour account is ready. Log in and try your luck at the number guessing game.\n", username)
	html := fmt.Sprintf("<p>Hi %s,</p><p>Your account is ready. Log in and try your luck at the number guessing game.</p>", username)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid rejected welcome email: status %d", resp.StatusCode)
	}
	return nil
}
