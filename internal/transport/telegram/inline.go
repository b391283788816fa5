package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

// inlineCacheTime is how long Telegram may cache an inline answer, in
// seconds. Kept short so newly added addresses show up quickly.
const inlineCacheTime = 1

// handleInlineQuery answers an inline query with up to the service's result
// cap of matching addresses. A blank query yields an empty answer.
func (b *Bot) handleInlineQuery(ctx context.Context, upd tgbotapi.Update) error {
	query := upd.InlineQuery.Query

	addresses, err := b.addresses.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("inline search %q: %w", query, err)
	}

	results := make([]interface{}, 0, len(addresses))
	for _, a := range addresses {
		article := tgbotapi.NewInlineQueryResultArticle(
			uuid.NewString(),
			a.Label,
			fmt.Sprintf("%s\n%s", a.Label, a.MapsLink),
		)
		article.Description = a.MapsLink
		results = append(results, article)
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: upd.InlineQuery.ID,
		Results:       results,
		CacheTime:     inlineCacheTime,
		IsPersonal:    true,
	}
	if _, err := b.api.Request(answer); err != nil {
		return fmt.Errorf("answer inline query: %w", err)
	}

	return nil
}
