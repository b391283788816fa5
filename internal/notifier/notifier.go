// Package notifier implements the background loop that welcomes users once
// an administrator has approved them.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

// userRepo defines the user repository interface needed by the notifier.
type userRepo interface {
	ListUnnotified(ctx context.Context) ([]domain.User, error)
	MarkNotified(ctx context.Context, telegramID int64) error
}

// messenger delivers the welcome message to a Telegram identity.
type messenger interface {
	SendWelcome(ctx context.Context, telegramID int64, name string) error
}

// txManager defines the transaction manager interface needed by the notifier.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Loop polls for approved-but-unnotified users on a fixed interval and
// delivers each of them a one-time welcome message.
type Loop struct {
	log       *slog.Logger
	users     userRepo
	messenger messenger
	tx        txManager
	interval  time.Duration
}

// New creates a notifier loop. interval is the fixed delay between the end of
// one cycle and the start of the next.
func New(logger *slog.Logger, users userRepo, m messenger, tx txManager, interval time.Duration) *Loop {
	return &Loop{
		log:       logger.With("service", "notifier"),
		users:     users,
		messenger: m,
		tx:        tx,
		interval:  interval,
	}
}

// Run executes cycles until ctx is cancelled. A failed cycle is logged and
// retried on the next tick; nothing short of cancellation stops the loop.
func (l *Loop) Run(ctx context.Context) {
	l.log.Info("notifier started", slog.Duration("interval", l.interval))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("notifier stopped")
			return
		case <-time.After(l.interval):
		}

		if err := l.cycle(ctx); err != nil {
			l.log.Error("notifier cycle failed", slog.String("error", err.Error()))
		}
	}
}

// cycle processes one candidate snapshot inside a single transaction: every
// successful delivery stages notified=true, and all stages commit together.
// A user whose delivery fails stays unnotified and is retried next cycle;
// there is no backoff and no attempt cap.
func (l *Loop) cycle(ctx context.Context) error {
	return l.tx.RunInTx(ctx, func(txCtx context.Context) error {
		users, err := l.users.ListUnnotified(txCtx)
		if err != nil {
			return fmt.Errorf("list candidates: %w", err)
		}

		for _, u := range users {
			// A welcome only ever goes to an active, unnotified user.
			if !u.NeedsWelcome() {
				continue
			}

			if err := l.messenger.SendWelcome(txCtx, u.TelegramID, u.Name); err != nil {
				l.log.Warn("welcome delivery failed",
					slog.Int64("telegram_id", u.TelegramID),
					slog.String("error", err.Error()),
				)
				continue
			}

			if err := l.users.MarkNotified(txCtx, u.TelegramID); err != nil {
				return fmt.Errorf("mark notified %d: %w", u.TelegramID, err)
			}
		}

		return nil
	})
}
