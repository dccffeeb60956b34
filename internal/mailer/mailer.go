package mailer

import (
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/modderpro/site/config"
	"github.com/modderpro/site/internal/domain"
)

// Mailer sends contact notifications to the site operator. It is a no-op
// when no SMTP host is configured; contact submissions are persisted either
// way and delivery failures never fail the request.
type Mailer struct {
	cfg config.SmtpConfig
}

func NewMailer(cfg config.SmtpConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// Enabled reports whether outbound mail is configured.
func (m *Mailer) Enabled() bool {
	return m.cfg.Host != "" && m.cfg.To != ""
}

// NotifyContact sends a best-effort notification for a contact submission.
func (m *Mailer) NotifyContact(msg *domain.ContactMessage) {
	if !m.Enabled() {
		return
	}

	mail := gomail.NewMessage()
	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}
	mail.SetHeader("From", from)
	mail.SetHeader("To", m.cfg.To)
	mail.SetHeader("Subject", fmt.Sprintf("New contact message from %s", msg.Name))
	mail.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\nService: %s\n\n%s\n", msg.Name, msg.Email, msg.Service, msg.Message))

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(mail); err != nil {
		zap.L().Warn("contact notification delivery failed", zap.Error(err))
		return
	}
	zap.L().Info("contact notification sent", zap.String("from", msg.Email))
}
