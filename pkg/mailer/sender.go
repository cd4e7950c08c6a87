// Package mailer sends the link digest of new campaigns to the operator.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/brazucaphish/console/pkg/config"
)

// Sender delivers an HTML email with a plain text alternative.
type Sender interface {
	SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error
}

const (
	smtpDialTimeout = 10 * time.Second
	mimeBoundary    = "----=_Part_BrazucaPhishDigest"
)

// SMTPSender sends emails via SMTP, optionally over implicit TLS or STARTTLS.
type SMTPSender struct {
	config   config.SMTPConfig
	from     string
	fromName string
}

// NewSMTPSender creates a new SMTP email sender
func NewSMTPSender(cfg config.SMTPConfig, from, fromName string) *SMTPSender {
	return &SMTPSender{config: cfg, from: from, fromName: fromName}
}

// SendHTML sends a multipart/alternative message.
func (s *SMTPSender) SendHTML(ctx context.Context, to, subject, htmlBody, textBody string) error {
	msg := buildMessage(formatAddress(s.fromName, s.from), to, subject, htmlBody, textBody)
	return s.deliver(ctx, to, []byte(msg))
}

func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}

func buildMessage(from, to, subject, htmlBody, textBody string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", mimeBoundary)

	for _, part := range []struct{ contentType, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		fmt.Fprintf(&b, "--%s\r\n", mimeBoundary)
		fmt.Fprintf(&b, "Content-Type: %s; charset=UTF-8\r\n", part.contentType)
		b.WriteString("Content-Transfer-Encoding: 8bit\r\n\r\n")
		b.WriteString(part.body)
		b.WriteString("\r\n\r\n")
	}

	fmt.Fprintf(&b, "--%s--\r\n", mimeBoundary)
	return b.String()
}

func (s *SMTPSender) deliver(ctx context.Context, to string, msg []byte) error {
	addr := net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
	tlsConfig := &tls.Config{ServerName: s.config.Host}

	dialCtx, cancel := context.WithTimeout(ctx, smtpDialTimeout)
	defer cancel()

	var (
		conn net.Conn
		err  error
	)
	if s.config.TLS {
		conn, err = (&tls.Dialer{Config: tlsConfig}).DialContext(dialCtx, "tcp", addr)
	} else {
		conn, err = (&net.Dialer{}).DialContext(dialCtx, "tcp", addr)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	defer func() { _ = conn.Close() }()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = client.Close() }()

	if s.config.StartTLS {
		if ok, _ := client.Extension("STARTTLS"); !ok {
			return fmt.Errorf("SMTP server %s does not support STARTTLS", addr)
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("STARTTLS failed: %w", err)
		}
	}

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(s.from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to create data writer: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}
