package mailer

import (
	"context"
	"fmt"

	"github.com/brazucaphish/console/pkg/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender sends emails via SendGrid API
type SendGridSender struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

// NewSendGridSender creates a new SendGrid email sender
func NewSendGridSender(cfg config.SendGridConfig, from, fromName string) *SendGridSender {
	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.EndpointURL != "" {
		client.BaseURL = cfg.EndpointURL
	}
	return &SendGridSender{client: client, from: from, fromName: fromName}
}

// SendHTML sends an HTML email with plain text fallback via SendGrid API
func (s *SendGridSender) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	message := mail.NewSingleEmail(mail.NewEmail(s.fromName, s.from), subject, mail.NewEmail("", to), textBody, htmlBody)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("SendGrid returned error status: %d %s", response.StatusCode, response.Body)
	}
	return nil
}
