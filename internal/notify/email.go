// Package notify delivers next-donation reminders by e-mail and calendar file.
package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/agenthands/zomra/internal/config"
)

const (
	ReminderSubject = "تذكير زمرة: موعد تبرعك القادم"
	reminderBody    = "أهلاً بك\n\nتذكير زمرة: موعد تبرعك المقترح بتاريخ %s.\nسنكون سعداء بزيارتك في أقرب بنك دم.\n\nمع التحية."

	implicitTLSPort = 465
)

var (
	ErrNotConfigured = errors.New("smtp not configured")
	ErrNoRecipient   = errors.New("recipient address required")
)

type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Mailer struct {
	cfg       config.SMTPConfig
	newSender func(cfg config.SMTPConfig) (sender, error)
}

func NewMailer(cfg config.SMTPConfig) *Mailer {
	if cfg.From == "" {
		cfg.From = cfg.User
	}
	return &Mailer{cfg: cfg, newSender: dialer}
}

func (m *Mailer) Ready() bool {
	return m.cfg.Ready() && m.cfg.From != ""
}

// SendReminder mails the suggested next donation date (YYYY-MM-DD).
func (m *Mailer) SendReminder(ctx context.Context, to, nextDate string) error {
	if to == "" {
		return ErrNoRecipient
	}
	if !m.Ready() {
		return ErrNotConfigured
	}

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(ReminderSubject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(reminderBody, nextDate))

	client, err := m.newSender(m.cfg)
	if err != nil {
		return fmt.Errorf("failed to create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	return nil
}

// dialer uses implicit TLS on 465 and mandatory STARTTLS elsewhere.
func dialer(cfg config.SMTPConfig) (sender, error) {
	port := cfg.Port
	if port == 0 {
		port = implicitTLSPort
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	}
	if port == implicitTLSPort {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	}
	return mail.NewClient(cfg.Host, opts...)
}
