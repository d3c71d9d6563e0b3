package contact

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
)

var ErrNotConfigured = errors.New("email service not configured")

const DefaultEmailJSURL = "https://api.emailjs.com"

type EmailJSConfig struct {
	ServiceID  string
	TemplateID string
	PublicKey  string
	// PrivateKey is sent as accessToken when the account requires it.
	PrivateKey string
	BaseURL    string
}

// EmailJSSender delivers submissions through the EmailJS REST API.
type EmailJSSender struct {
	client *resty.Client
	cfg    EmailJSConfig
}

var _ Sender = (*EmailJSSender)(nil)

func NewEmailJSSender(cfg EmailJSConfig) *EmailJSSender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultEmailJSURL
	}
	c := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json")
	return &EmailJSSender{client: c, cfg: cfg}
}

func (s *EmailJSSender) Name() string { return "emailjs" }

type emailJSRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	AccessToken    string            `json:"accessToken,omitempty"`
	TemplateParams map[string]string `json:"template_params"`
}

// TemplateParams maps a submission onto the template variables the email
// template expects.
func TemplateParams(sub Submission) map[string]string {
	return map[string]string{
		"from_name":  sub.Name,
		"name":       sub.Name,
		"from_email": sub.Email,
		"email":      sub.Email,
		"message":    sub.Message,
	}
}

func (s *EmailJSSender) Send(ctx context.Context, sub Submission) error {
	if s.cfg.ServiceID == "" || s.cfg.TemplateID == "" || s.cfg.PublicKey == "" {
		return ErrNotConfigured
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(&emailJSRequest{
			ServiceID:      s.cfg.ServiceID,
			TemplateID:     s.cfg.TemplateID,
			UserID:         s.cfg.PublicKey,
			AccessToken:    s.cfg.PrivateKey,
			TemplateParams: TemplateParams(sub),
		}).
		Post("/api/v1.0/email/send")
	if err != nil {
		return fmt.Errorf("emailjs request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("emailjs status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
