package email

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const defaultBrevoBaseURL = "https://api.brevo.com"

// BrevoConfig configures the transactional e-mail client.
type BrevoConfig struct {
	APIKey      string
	SenderName  string
	SenderEmail string
	BaseURL     string // defaults to the public Brevo API; overridable for tests
}

// Brevo delivers reminder e-mails through the Brevo transactional API.
// Without an API key it runs in mock mode: sends are logged and reported
// as successful, which keeps local development working.
type Brevo struct {
	client *resty.Client
	cfg    BrevoConfig
	log    zerolog.Logger
}

// NewBrevo constructs a Brevo notifier.
func NewBrevo(cfg BrevoConfig, log zerolog.Logger) *Brevo {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBrevoBaseURL
	}
	c := resty.New().
		SetBaseURL(base).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	if cfg.APIKey != "" {
		c.SetHeader("api-key", cfg.APIKey)
	}
	return &Brevo{client: c, cfg: cfg, log: log}
}

type sendEmailRequest struct {
	Sender      emailParty   `json:"sender"`
	To          []emailParty `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	TextContent string       `json:"textContent,omitempty"`
}

type emailParty struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Deliver sends one e-mail. A non-2xx response is a delivery failure.
func (b *Brevo) Deliver(ctx context.Context, recipient, subject, htmlBody, textBody string) error {
	if b.cfg.APIKey == "" {
		b.log.Info().Str("to", recipient).Str("subject", subject).Msg("mock email send (no API key configured)")
		return nil
	}

	req := sendEmailRequest{
		Sender:      emailParty{Name: b.cfg.SenderName, Email: b.cfg.SenderEmail},
		To:          []emailParty{{Email: recipient}},
		Subject:     subject,
		HTMLContent: htmlBody,
		TextContent: textBody,
	}

	resp, err := b.client.R().
		SetContext(ctx).
		SetBody(&req).
		Post("/v3/smtp/email")
	if err != nil {
		return fmt.Errorf("brevo request: %w", err)
	}
	if resp.StatusCode() != http.StatusCreated && resp.StatusCode() != http.StatusOK &&
		resp.StatusCode() != http.StatusAccepted {
		return fmt.Errorf("brevo status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
