package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

const (
	deniedReply      = "⛔ Non sei autorizzato. Registrati prima."
	deniedAdminReply = "⛔ Non sei autorizzato a usare questo comando."
)

// denyCacheTime is the cache time, in seconds, for the empty denial answer.
// Telegram drops a zero cache_time from the request and applies its 300s
// server default, so 1 is the shortest value the wire can carry.
const denyCacheTime = 1

// requireApproved wraps a handler so it only runs for callers whose record is
// active. Everyone else gets the fixed denial: a reply for message updates,
// an empty answer for inline queries. Denial is a normal branch, not an
// error; a store failure during the check is logged and treated as denial.
func (b *Bot) requireApproved(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, upd tgbotapi.Update) error {
		from := upd.SentFrom()
		if from == nil {
			return nil
		}

		u, err := b.users.GetByID(ctx, from.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			b.log.Error("authorization lookup failed",
				slog.Int64("telegram_id", from.ID),
				slog.String("error", err.Error()),
			)
		}

		if err != nil || !u.Active {
			return b.deny(upd)
		}

		return next(ctx, upd)
	}
}

// requireAdmin wraps a handler so only the configured administrator can run
// it; any other caller gets the fixed denial reply and nothing else happens.
func (b *Bot) requireAdmin(next HandlerFunc) HandlerFunc {
	return func(ctx context.Context, upd tgbotapi.Update) error {
		from := upd.SentFrom()
		if from == nil {
			return nil
		}

		if from.ID != b.adminID {
			return b.reply(upd, deniedAdminReply)
		}

		return next(ctx, upd)
	}
}

func (b *Bot) deny(upd tgbotapi.Update) error {
	switch {
	case upd.Message != nil:
		return b.reply(upd, deniedReply)
	case upd.InlineQuery != nil:
		// IsPersonal keeps one caller's empty answer out of other
		// callers' caches for the same query text.
		answer := tgbotapi.InlineConfig{
			InlineQueryID: upd.InlineQuery.ID,
			Results:       []interface{}{},
			CacheTime:     denyCacheTime,
			IsPersonal:    true,
		}
		if _, err := b.api.Request(answer); err != nil {
			return fmt.Errorf("answer inline query: %w", err)
		}
	}
	return nil
}
