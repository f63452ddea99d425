// Package sendgrid wraps the SendGrid client for transactional mail.
package sendgrid

import (
	"context"
	"fmt"

	"github.com/R-Agile/epetshop-backend/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type EmailService interface {
	SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error
	GetSendGridClient() *sendgrid.Client
}

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(cfg *config.SendGrid) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(cfg.APIKey),
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
	}
}

// GetSendGridClient exposes the underlying client so tests can redirect it.
func (e *emailService) GetSendGridClient() *sendgrid.Client {
	return e.client
}

func (e *emailService) SendPasswordReset(ctx context.Context, toEmail, toName, resetLink string) error {
	from := mail.NewEmail(e.fromName, e.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	plain := fmt.Sprintf("We received a request to reset your password.\n\nOpen the link below to choose a new one. The link expires in 24 hours.\n\n%s\n\nIf you did not request this, you can ignore this email.", resetLink)
	html := fmt.Sprintf(`<p>We received a request to reset your password.</p><p><a href="%s">Reset your password</a></p><p>The link expires in 24 hours. If you did not request this, you can ignore this email.</p>`, resetLink)

	message := mail.NewSingleEmail(from, "Reset your password", to, plain, html)

	response, err := e.client.SendWithContext(ctx, message)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email, status code: %d", response.StatusCode)
	}

	return nil
}
