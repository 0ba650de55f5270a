package notify

import (
	"context"
	"strings"

	"booking-platform/internal/pkg/config"
	"booking-platform/internal/pkg/errs"
	"booking-platform/internal/usecase/shared"

	"gopkg.in/gomail.v2"
)

// SMTPMailer sends plain-text mail through one SMTP dial per message.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(cfg config.SMTPConfig) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg shared.EmailMessage) error {
	if strings.TrimSpace(msg.To) == "" {
		return errs.Mark(errs.New("no recipient address"), shared.ErrDeliverySkipped)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To)
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	if err := m.dialer.DialAndSend(gm); err != nil {
		return errs.Wrap(err, "failed to send email")
	}
	return nil
}

// NoopMailer is used when SMTP is disabled; every message is recorded as skipped.
type NoopMailer struct{}

func (NoopMailer) Send(context.Context, shared.EmailMessage) error {
	return shared.ErrDeliverySkipped
}
