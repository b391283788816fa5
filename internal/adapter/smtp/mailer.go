// Package smtp implements the outbound admin notification mail over an
// implicit-TLS SMTP connection.
package smtp

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/config"
)

// Mailer sends the "new user to approve" notice to the configured admin
// address.
type Mailer struct {
	client *mail.Client
	cfg    config.MailConfig
}

// New creates a Mailer from the given mail configuration. The connection is
// established lazily on each send, so construction never touches the network.
func New(cfg config.MailConfig) (*Mailer, error) {
	client, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &Mailer{client: client, cfg: cfg}, nil
}

// SendNewUserNotice emails the admin that a user requested access.
func (m *Mailer) SendNewUserNotice(ctx context.Context, telegramID int64, name string) error {
	subject, body := buildNotice(telegramID, name)

	msg := mail.NewMsg()
	if err := msg.From(m.cfg.Username); err != nil {
		return fmt.Errorf("set sender %q: %w", m.cfg.Username, err)
	}
	if err := msg.To(m.cfg.AdminEmail); err != nil {
		return fmt.Errorf("set recipient %q: %w", m.cfg.AdminEmail, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send admin notice: %w", err)
	}

	return nil
}

func buildNotice(telegramID int64, name string) (subject, body string) {
	subject = "Nuovo utente da approvare"
	body = fmt.Sprintf(
		"L'utente %s (%d) ha richiesto accesso al bot.\nApprovalo con /confermaUtenti %d oppure aggiorna il campo 'active' nel DB.",
		name, telegramID, telegramID,
	)
	return subject, body
}
