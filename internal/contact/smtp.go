package contact

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

type SMTPConfig struct {
	Host string // e.g. "smtp.gmail.com"
	Port string // e.g. "587"
	User string
	Pass string
	To   string // where submissions are delivered
}

// SMTPSender mails submissions directly through an SMTP relay.
type SMTPSender struct {
	cfg SMTPConfig
	// send is smtp.SendMail; tests replace it.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

var _ Sender = (*SMTPSender)(nil)

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	return &SMTPSender{cfg: cfg, send: smtp.SendMail}
}

func (s *SMTPSender) Name() string { return "smtp" }

func (s *SMTPSender) Send(ctx context.Context, sub Submission) error {
	if s.cfg.User == "" || s.cfg.Pass == "" || s.cfg.To == "" {
		return ErrNotConfigured
	}

	msg := composeMessage(s.cfg.User, s.cfg.To, sub)
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	addr := net.JoinHostPort(s.cfg.Host, s.cfg.Port)

	// smtp.SendMail takes no context; run it aside so the caller's deadline
	// still bounds the wait.
	done := make(chan error, 1)
	go func() { done <- s.send(addr, auth, s.cfg.User, []string{s.cfg.To}, msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

func composeMessage(from, to string, sub Submission) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe.Replace(sub.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Message)

	return []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + headerSafe.Replace(sub.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}
