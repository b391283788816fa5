// Package registration implements the self-registration workflow: it creates
// pending user records and alerts the administrator by email.
package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

// Status is the outcome of a registration request, used by the transport to
// pick the reply message.
type Status int

const (
	// StatusSubmitted means a new pending record was created and the admin
	// was alerted.
	StatusSubmitted Status = iota
	// StatusPending means the caller already registered and is still waiting
	// for approval.
	StatusPending
	// StatusAlreadyApproved means the caller is already active.
	StatusAlreadyApproved
)

// placeholderName is stored when Telegram exposes no username for the caller.
const placeholderName = "Utente"

// userRepo defines the user repository interface needed by the registration service.
type userRepo interface {
	GetByID(ctx context.Context, telegramID int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
}

// adminMailer defines the outbound mail interface needed by the registration service.
type adminMailer interface {
	SendNewUserNotice(ctx context.Context, telegramID int64, name string) error
}

// Service implements the registration workflow.
type Service struct {
	log    *slog.Logger
	users  userRepo
	mailer adminMailer
}

// NewService creates a new registration service.
func NewService(logger *slog.Logger, users userRepo, mailer adminMailer) *Service {
	return &Service{
		log:    logger.With("service", "registration"),
		users:  users,
		mailer: mailer,
	}
}

// Register records a registration request for the given Telegram identity.
//
// A repeated request never mutates the store: the returned Status tells the
// caller whether they are still pending or already approved. A first request
// persists the pending record and then alerts the admin by email. The email
// is a best-effort secondary effect: if persistence fails no mail is sent,
// and a mail failure after a successful insert is logged but not returned —
// the registration itself already succeeded.
func (s *Service) Register(ctx context.Context, telegramID int64, name string) (Status, error) {
	existing, err := s.users.GetByID(ctx, telegramID)
	switch {
	case err == nil:
		if existing.Active {
			return StatusAlreadyApproved, nil
		}
		return StatusPending, nil
	case errors.Is(err, domain.ErrNotFound):
		// fall through to creation
	default:
		return 0, fmt.Errorf("look up user %d: %w", telegramID, err)
	}

	if name == "" {
		name = placeholderName
	}

	u := &domain.User{TelegramID: telegramID, Name: name}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Lost a race with a concurrent request from the same identity.
			return StatusPending, nil
		}
		return 0, fmt.Errorf("create user %d: %w", telegramID, err)
	}

	if err := s.mailer.SendNewUserNotice(ctx, telegramID, name); err != nil {
		s.log.Warn("admin notification mail failed",
			slog.Int64("telegram_id", telegramID),
			slog.String("error", err.Error()),
		)
	}

	return StatusSubmitted, nil
}
