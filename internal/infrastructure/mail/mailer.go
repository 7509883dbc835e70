package mail

import (
	"context"
	"fmt"

	"github.com/vastrado/vastrado-api/internal/config"
	"gopkg.in/gomail.v2"
)

// Mailer sends emails. The context bounds the whole dial-and-send; a
// provider that hangs past the deadline is reported as a delivery failure.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(cfg *config.Config) Mailer {
	return &mailer{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:   cfg.SMTPFrom,
	}
}

func (m *mailer) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail has no context support, so the send runs in its own goroutine
	// and the deadline is enforced here. An abandoned send finishes (or
	// fails) on its own; only the result is discarded.
	done := make(chan error, 1)
	go func() {
		done <- m.dialer.DialAndSend(msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("send mail to %s: %w", to, err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("send mail to %s: %w", to, ctx.Err())
	}
}
