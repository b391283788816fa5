package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/service/registration"
)

const (
	greetingReply = "Ciao! Per utilizzare gli altri comandi devi registrarti e attendere l'approvazione dell'admin :)"

	registerSubmittedReply = "📨 Richiesta inviata all'amministratore. Riceverai un messaggio quando sarai autorizzato."
	registerPendingReply   = "⏳ Attendi che l'admin approvi la tua registrazione."
	registerApprovedReply  = "✅ Sei già registrato e approvato."

	noPendingReply       = "✅ Tutti gli utenti sono già approvati."
	listUsersFailedReply = "❌ Errore durante il recupero della lista utenti."

	approveNotNumericReply = "❗ L'ID deve essere un numero."
	approveNotFoundReply   = "⚠️ Nessun utente trovato con questo ID."
	approveFailedReply     = "❌ Errore durante l'approvazione dell'utente."
)

func (b *Bot) handleStart(ctx context.Context, upd tgbotapi.Update) error {
	return b.reply(upd, greetingReply)
}

func (b *Bot) handleID(ctx context.Context, upd tgbotapi.Update) error {
	return b.reply(upd, fmt.Sprintf("Il tuo user ID è: %d", upd.SentFrom().ID))
}

func (b *Bot) handleRegister(ctx context.Context, upd tgbotapi.Update) error {
	from := upd.SentFrom()

	status, err := b.registration.Register(ctx, from.ID, from.UserName)
	if err != nil {
		return fmt.Errorf("register user %d: %w", from.ID, err)
	}

	switch status {
	case registration.StatusPending:
		return b.reply(upd, registerPendingReply)
	case registration.StatusAlreadyApproved:
		return b.reply(upd, registerApprovedReply)
	default:
		return b.reply(upd, registerSubmittedReply)
	}
}

// handleIndirizzi explains how to use inline mode; a message already starting
// with the bot mention gets its query echoed back.
func (b *Bot) handleIndirizzi(ctx context.Context, upd tgbotapi.Update) error {
	mention := "@" + b.username

	text := strings.TrimSpace(upd.Message.Text)
	if !strings.HasPrefix(text, mention) {
		return b.reply(upd, fmt.Sprintf("Per cercare indirizzi in tempo reale, scrivi iniziando con %s", mention))
	}

	query := strings.TrimSpace(strings.TrimPrefix(text, mention))
	return b.reply(upd, fmt.Sprintf("Hai cercato: %s", query))
}

func (b *Bot) handleListUsers(ctx context.Context, upd tgbotapi.Update) error {
	pending, err := b.admin.ListPending(ctx)
	if err != nil {
		b.log.Error("list pending users failed", slog.String("error", err.Error()))
		return b.reply(upd, listUsersFailedReply)
	}

	if len(pending) == 0 {
		return b.reply(upd, noPendingReply)
	}

	var sb strings.Builder
	sb.WriteString("👥 *Utenti in attesa di approvazione:*\n\n")
	for _, u := range pending {
		fmt.Fprintf(&sb, "• `%d` — %s\n", u.TelegramID, u.Name)
	}

	msg := tgbotapi.NewMessage(upd.Message.Chat.ID, sb.String())
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send pending list: %w", err)
	}
	return nil
}

func (b *Bot) handleConfirmUser(ctx context.Context, upd tgbotapi.Update) error {
	arg := strings.TrimSpace(upd.Message.CommandArguments())

	telegramID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return b.reply(upd, approveNotNumericReply)
	}

	if err := b.admin.Approve(ctx, telegramID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return b.reply(upd, approveNotFoundReply)
		}
		b.log.Error("approve user failed",
			slog.Int64("telegram_id", telegramID),
			slog.String("error", err.Error()),
		)
		return b.reply(upd, approveFailedReply)
	}

	return b.reply(upd, fmt.Sprintf("✅ Utente %d approvato correttamente.", telegramID))
}
