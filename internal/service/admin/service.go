// Package admin implements the console operations reserved to the configured
// administrator: listing pending users and approving them.
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

// userRepo defines the user repository interface needed by the admin service.
type userRepo interface {
	ListPending(ctx context.Context) ([]domain.User, error)
	Approve(ctx context.Context, telegramID int64) error
}

// Service implements the admin console operations. Caller identity checks
// belong to the transport; by the time a method here runs the caller has
// already been verified as the administrator.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new admin service.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "admin"),
		users: users,
	}
}

// ListPending returns all users awaiting approval, oldest request first.
func (s *Service) ListPending(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending users: %w", err)
	}
	return users, nil
}

// Approve activates the given user and re-arms their welcome notification,
// so the notifier loop picks them up on its next cycle even if they had been
// approved and notified before.
// Returns domain.ErrNotFound if no such user registered.
func (s *Service) Approve(ctx context.Context, telegramID int64) error {
	if err := s.users.Approve(ctx, telegramID); err != nil {
		return fmt.Errorf("approve user %d: %w", telegramID, err)
	}

	s.log.Info("user approved", slog.Int64("telegram_id", telegramID))
	return nil
}
