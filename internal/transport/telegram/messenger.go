package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger delivers unsolicited messages to known identities. It is the
// delivery collaborator of the notifier loop.
type Messenger struct {
	api sender
}

// NewMessenger creates a Messenger on top of the bot API client.
func NewMessenger(api sender) *Messenger {
	return &Messenger{api: api}
}

// SendWelcome tells a freshly approved user that the bot is now open to them.
// The Bot API client has no context support; ctx is accepted for interface
// symmetry with the rest of the notifier's collaborators.
func (m *Messenger) SendWelcome(_ context.Context, telegramID int64, name string) error {
	msg := tgbotapi.NewMessage(telegramID, fmt.Sprintf("Ciao %s! Ora sei autorizzato a usare il bot 🎉", name))
	if _, err := m.api.Send(msg); err != nil {
		return fmt.Errorf("send welcome to %d: %w", telegramID, err)
	}
	return nil
}
