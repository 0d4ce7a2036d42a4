package email

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/md-rashed-zaman/fuelstation/services/notification-service/internal/alerts"
)

// SMTPSender mails alerts to one address via unauthenticated SMTP (Mailpit-compatible).
type SMTPSender struct {
	addr string
	from string
	to   string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(host, port, from, to string) (*SMTPSender, error) {
	host = strings.TrimSpace(host)
	to = strings.TrimSpace(to)
	if host == "" || to == "" {
		return nil, errors.New("smtp host and recipient are required")
	}
	from = strings.TrimSpace(from)
	if from == "" {
		from = "no-reply@fuelstation.local"
	}
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%s", host, strings.TrimSpace(port)),
		from: from,
		to:   to,
		send: smtp.SendMail,
	}, nil
}

func (s *SMTPSender) Name() string { return "email" }

func (s *SMTPSender) Recipient() string { return s.to }

func (s *SMTPSender) Send(ctx context.Context, alert alerts.Alert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := buildMessage(s.from, s.to, alert.Subject, alert.Body)
	return s.send(s.addr, nil, s.from, []string{s.to}, []byte(msg))
}

func buildMessage(from, to, subject, body string) string {
	// Minimal RFC 5322 message; enough for Mailpit and most SMTP relays.
	return fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s\r\n",
		from,
		to,
		sanitizeHeader(subject),
		strings.ReplaceAll(body, "\n", "\r\n"),
	)
}

func sanitizeHeader(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}
