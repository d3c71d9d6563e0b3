package cmd

import (
	"fmt"

	"github.com/AdityaD28/portfolio/internal/chat"
	"github.com/AdityaD28/portfolio/internal/config"
	"github.com/AdityaD28/portfolio/internal/contact"
	"github.com/AdityaD28/portfolio/internal/content"
	"github.com/AdityaD28/portfolio/internal/session"
)

func newResolver(cfg *config.Config, p *content.Portfolio) (chat.Resolver, error) {
	switch cfg.Resolver {
	case config.ResolverRemote:
		r, err := chat.NewRemoteResolver(p, chat.RemoteConfig{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			Timeout: cfg.ChatTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("remote resolver: %w", err)
		}
		return r, nil
	case config.ResolverKeyword:
		return chat.NewKeywordResolver(p), nil
	default:
		return nil, fmt.Errorf("unsupported resolver %q", cfg.Resolver)
	}
}

// newSender picks the contact transport. SMTP mail goes to the owner's
// public address unless TO_EMAIL says otherwise.
func newSender(cfg *config.Config, p *content.Portfolio) contact.Sender {
	if cfg.ContactTransport == config.TransportSMTP {
		to := cfg.SMTPTo
		if to == "" {
			to = p.Contact.Email
		}
		return contact.NewSMTPSender(contact.SMTPConfig{
			Host: cfg.SMTPHost,
			Port: cfg.SMTPPort,
			User: cfg.SMTPUser,
			Pass: cfg.SMTPPass,
			To:   to,
		})
	}
	return contact.NewEmailJSSender(contact.EmailJSConfig{
		ServiceID:  cfg.EmailJSServiceID,
		TemplateID: cfg.EmailJSTemplateID,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
		BaseURL:    cfg.EmailJSBaseURL,
	})
}

func newBuilders(cfg *config.Config, p *content.Portfolio, r chat.Resolver, s contact.Sender) session.Builders {
	return session.Builders{
		Widget: func(l chat.Locker) *chat.Widget {
			return chat.NewWidget(r, p, chat.WithLocker(l), chat.WithReplyDelay(cfg.ChatReplyDelay))
		},
		Form: func() *contact.Form {
			return contact.NewForm(s, p.Contact.Email, cfg.ContactTimeout)
		},
	}
}
