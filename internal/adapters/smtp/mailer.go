package smtp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ratewatch/rate-notifier/internal/core/ports"
	"github.com/ratewatch/rate-notifier/internal/models"
	mail "gopkg.in/mail.v2"
)

const notificationBodyTemplate = `Hello,

Here is the latest exchange rate information:

Currency: %s (%s)
Rate: %s UAH
Date: %s

Best regards,
Exchange Rate Notifier
`

// Mailer delivers exchange-rate notifications over SMTP.
type Mailer struct {
	dialer *mail.Dialer
	from   string
	logger *slog.Logger
}

// NewMailer creates a new Mailer. Each delivery attempt is bounded by timeout.
func NewMailer(host string, port int, username, password, from string, timeout time.Duration, logger *slog.Logger) *Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = timeout
	return &Mailer{
		dialer: dialer,
		from:   from,
		logger: logger,
	}
}

var _ ports.Notifier = (*Mailer)(nil)

// Deliver sends one formatted rate notification to one recipient.
func (m *Mailer) Deliver(ctx context.Context, recipientEmail string, rate models.ExchangeRate) error {
	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipientEmail)
	msg.SetHeader("Subject", "Exchange Rate Update: "+rate.CurrencyCode)
	msg.SetBody("text/plain", buildNotificationBody(rate))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send notification to %s: %w", recipientEmail, err)
	}

	m.logger.Info("Notification email sent",
		slog.String("recipient", recipientEmail),
		slog.String("currency_code", rate.CurrencyCode),
	)
	return nil
}

func buildNotificationBody(rate models.ExchangeRate) string {
	return fmt.Sprintf(notificationBodyTemplate,
		rate.CurrencyName,
		rate.CurrencyCode,
		rate.Rate.String(),
		rate.ExchangeDate.Format(time.DateOnly),
	)
}
