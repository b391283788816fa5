// Package telegram implements the bot's command surface: a long-polling
// update dispatcher, the registration/admin commands, and the guarded inline
// address search.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/service/registration"
)

// HandlerFunc processes one Telegram update. Errors are logged by the
// dispatcher; one handler's failure never affects other updates.
type HandlerFunc func(ctx context.Context, upd tgbotapi.Update) error

// sender is the subset of *tgbotapi.BotAPI used to reply to updates.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// authChecker looks up the caller's approval state for the access guard.
type authChecker interface {
	GetByID(ctx context.Context, telegramID int64) (*domain.User, error)
}

// registrationService is the registration workflow consumed by /register.
type registrationService interface {
	Register(ctx context.Context, telegramID int64, name string) (registration.Status, error)
}

// adminService holds the operations behind the admin-only commands.
type adminService interface {
	ListPending(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, telegramID int64) error
}

// addressSearcher answers inline queries.
type addressSearcher interface {
	Search(ctx context.Context, query string) ([]domain.Address, error)
}

// Bot routes incoming updates to command and inline-query handlers.
type Bot struct {
	log      *slog.Logger
	api      sender
	username string
	adminID  int64

	users        authChecker
	registration registrationService
	admin        adminService
	addresses    addressSearcher
}

// New creates the update dispatcher. username is the bot's own @-name,
// shown to users as the inline-mode prefix; adminID is the only identity
// allowed to run the admin commands.
func New(
	logger *slog.Logger,
	api sender,
	username string,
	adminID int64,
	users authChecker,
	reg registrationService,
	adm adminService,
	addresses addressSearcher,
) *Bot {
	return &Bot{
		log:          logger.With("transport", "telegram"),
		api:          api,
		username:     username,
		adminID:      adminID,
		users:        users,
		registration: reg,
		admin:        adm,
		addresses:    addresses,
	}
}

// Run consumes updates until ctx is cancelled or the channel closes.
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	b.log.Info("dispatcher started")

	for {
		select {
		case <-ctx.Done():
			b.log.Info("dispatcher stopped")
			return
		case upd, ok := <-updates:
			if !ok {
				b.log.Info("update channel closed")
				return
			}
			b.dispatch(ctx, upd)
		}
	}
}

// routes maps lowercased command names (without the leading slash) to their
// handlers. Commands match case-insensitively: /listaUtenti and /listautenti
// are the same command.
func (b *Bot) routes() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		"start":          b.handleStart,
		"id":             b.handleID,
		"register":       b.handleRegister,
		"indirizzi":      b.requireApproved(b.handleIndirizzi),
		"listautenti":    b.requireAdmin(b.handleListUsers),
		"confermautenti": b.requireAdmin(b.handleConfirmUser),
	}
}

func (b *Bot) dispatch(ctx context.Context, upd tgbotapi.Update) {
	var (
		handler HandlerFunc
		kind    string
	)

	switch {
	case upd.InlineQuery != nil:
		handler = b.requireApproved(b.handleInlineQuery)
		kind = "inline_query"
	case upd.Message != nil && upd.Message.IsCommand():
		handler = b.routes()[strings.ToLower(upd.Message.Command())]
		kind = "/" + upd.Message.Command()
	}

	if handler == nil {
		return
	}

	if err := handler(ctx, upd); err != nil {
		b.log.Error("handler failed",
			slog.String("update", kind),
			slog.String("error", err.Error()),
		)
	}
}

// reply sends a plain text message to the chat the update came from.
func (b *Bot) reply(upd tgbotapi.Update, text string) error {
	msg := tgbotapi.NewMessage(upd.Message.Chat.ID, text)
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
