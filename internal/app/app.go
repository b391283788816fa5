// Package app wires configuration, storage, services, and transports
// together and runs the bot until shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/postgres"
	addressrepo "github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/postgres/address"
	userrepo "github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/postgres/user"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/smtp"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/config"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/notifier"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/service/addressbook"
	adminsvc "github.com/lorenzotiziani/BotPizzaStyle/internal/service/admin"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/service/registration"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/transport/telegram"
)

// Run is the application entry point. It loads configuration, connects the
// collaborators, starts the update dispatcher and the notifier loop, and
// blocks until SIGINT/SIGTERM.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	users := userrepo.New(pool)
	addresses := addressrepo.New(pool)
	tx := postgres.NewTxManager(pool)

	mailer, err := smtp.New(cfg.Mail)
	if err != nil {
		return fmt.Errorf("create mailer: %w", err)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return fmt.Errorf("create bot API client: %w", err)
	}

	bot := telegram.New(
		logger,
		api,
		api.Self.UserName,
		cfg.Telegram.AdminID,
		users,
		registration.NewService(logger, users, mailer),
		adminsvc.NewService(logger, users),
		addressbook.NewService(addresses),
	)
	loop := notifier.New(logger, users, telegram.NewMessenger(api), tx, cfg.Notifier.Interval)

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = cfg.Telegram.UpdateTimeout
	updates := api.GetUpdatesChan(updateCfg)

	logger.Info("bot running",
		slog.String("username", api.Self.UserName),
		slog.Int64("admin_id", cfg.Telegram.AdminID),
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		bot.Run(ctx, updates)
	}()

	<-ctx.Done()
	api.StopReceivingUpdates()
	wg.Wait()

	logger.Info("shutdown complete")
	return nil
}
