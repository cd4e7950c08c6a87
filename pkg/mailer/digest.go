package mailer

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/brazucaphish/console/pkg/apiclient"
	"github.com/brazucaphish/console/pkg/config"
	"github.com/brazucaphish/console/pkg/dashboard"
	"github.com/brazucaphish/console/pkg/i18n"
	"github.com/brazucaphish/console/pkg/shared/logging"
	hermes "github.com/ideamans/hermes"
)

// Replaced after hermes renders, so the link list keeps its own markup.
const linksPlaceholder = "{{DIGEST_LINKS_PLACEHOLDER}}"

// DigestTemplate renders the link digest with hermes.
type DigestTemplate struct {
	serviceName  string
	dashboardURL string
	now          func() time.Time
}

// NewDigestTemplate creates a template. dashboardURL, when set, adds an "open dashboard" button.
func NewDigestTemplate(serviceName, dashboardURL string) *DigestTemplate {
	return &DigestTemplate{serviceName: serviceName, dashboardURL: dashboardURL, now: time.Now}
}

// Render returns the subject, HTML and plain text bodies of a digest.
func (t *DigestTemplate) Render(lang i18n.Language, translator *i18n.Translator, d dashboard.Digest) (subject, htmlBody, textBody string, err error) {
	name := d.CampaignName
	if name == "" {
		name = translator.T(lang, "mail.digest.untitled")
	}
	subject = translator.Tf(lang, "mail.digest.subject", name)

	h := hermes.Hermes{
		Product: hermes.Product{
			Name:          t.serviceName,
			Link:          t.dashboardURL,
			Copyright:     fmt.Sprintf("© %d %s", t.now().Year(), t.serviceName),
			HideSignature: true,
			HideGreeting:  true,
		},
	}

	outros := []string{linksPlaceholder}
	if d.ExpiresAt != "" {
		outros = append(outros, translator.Tf(lang, "mail.digest.expires", d.ExpiresAt))
	}
	outros = append(outros, translator.T(lang, "mail.digest.outro"))

	email := hermes.Email{
		Body: hermes.Body{
			Intros: []string{
				translator.T(lang, "mail.digest.greeting"),
				translator.Tf(lang, "mail.digest.intro", name, len(d.Links)),
			},
			Outros: outros,
		},
	}
	if t.dashboardURL != "" {
		email.Body.Actions = []hermes.Action{{
			Button: hermes.Button{
				Color: "#2563EB",
				Text:  translator.T(lang, "mail.digest.button"),
				Link:  t.dashboardURL,
			},
		}}
	}

	htmlBody, err = h.GenerateHTML(email)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to generate HTML email: %w", err)
	}
	htmlBody = strings.ReplaceAll(htmlBody, linksPlaceholder, linksHTML(d.Links))

	textBody, err = h.GeneratePlainText(email)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to generate plain text email: %w", err)
	}
	textBody = strings.ReplaceAll(textBody, linksPlaceholder, linksText(d.Links))

	return subject, htmlBody, textBody, nil
}

func linksHTML(links []apiclient.GeneratedLink) string {
	var b strings.Builder
	b.WriteString(`<ul style="list-style: none; padding: 0; margin: 16px 0; font-size: 14px;">`)
	for _, l := range links {
		fmt.Fprintf(&b, `<li style="margin-bottom: 6px;"><code>%s</code> › <a href="%s">%s</a></li>`,
			html.EscapeString(l.Email), html.EscapeString(l.Link), html.EscapeString(l.Link))
	}
	b.WriteString(`</ul>`)
	return b.String()
}

func linksText(links []apiclient.GeneratedLink) string {
	lines := make([]string, 0, len(links))
	for _, l := range links {
		lines = append(lines, l.Email+" › "+l.Link)
	}
	return strings.Join(lines, "\n") + "\n"
}

// DigestNotifier mails the links of every new campaign to a fixed recipient.
type DigestNotifier struct {
	sender     Sender
	template   *DigestTemplate
	to         string
	translator *i18n.Translator
	logger     logging.Logger
}

// NewDigestNotifier creates a notifier sending to "to".
func NewDigestNotifier(sender Sender, template *DigestTemplate, to string, translator *i18n.Translator, logger logging.Logger) *DigestNotifier {
	return &DigestNotifier{
		sender:     sender,
		template:   template,
		to:         to,
		translator: translator,
		logger:     logger.WithModule("mailer"),
	}
}

// NotifyLinks renders and sends the digest.
func (n *DigestNotifier) NotifyLinks(ctx context.Context, lang i18n.Language, d dashboard.Digest) error {
	subject, htmlBody, textBody, err := n.template.Render(lang, n.translator, d)
	if err != nil {
		return err
	}
	if err := n.sender.SendHTML(ctx, n.to, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send link digest to %s: %w", n.to, err)
	}
	n.logger.Info("Link digest sent", "to", n.to, "campaign_id", d.CampaignID, "links", len(d.Links))
	return nil
}

// NewSender builds the sender selected by cfg.SenderType.
func NewSender(cfg config.MailConfig) (Sender, error) {
	switch cfg.SenderType {
	case "", "smtp":
		return NewSMTPSender(cfg.SMTP, cfg.From, cfg.FromName), nil
	case "sendgrid":
		return NewSendGridSender(cfg.SendGrid, cfg.From, cfg.FromName), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrInvalidSenderType, cfg.SenderType)
}

// NewNotifier returns the digest notifier for cfg, or nil when mail is disabled.
func NewNotifier(cfg *config.Config, dashboardURL string, translator *i18n.Translator, logger logging.Logger) (dashboard.Notifier, error) {
	if !cfg.Mail.Enabled {
		return nil, nil
	}
	sender, err := NewSender(cfg.Mail)
	if err != nil {
		return nil, err
	}
	template := NewDigestTemplate(cfg.Service.Name, dashboardURL)
	return NewDigestNotifier(sender, template, cfg.Mail.DigestTo, translator, logger), nil
}
