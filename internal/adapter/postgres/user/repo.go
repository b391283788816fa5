// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/postgres"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

const table = "users"

var columns = []string{"telegram_id", "name", "active", "notified", "created_at", "updated_at"}

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository. db is normally the pgx pool; calls made
// inside TxManager.RunInTx are routed to the transaction automatically.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

func (r *Repo) q(ctx context.Context) postgres.Querier {
	return postgres.QuerierFromCtx(ctx, r.db)
}

// GetByID returns a user by Telegram ID.
// Returns domain.ErrNotFound if no such user exists.
func (r *Repo) GetByID(ctx context.Context, telegramID int64) (*domain.User, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"telegram_id": telegramID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var u domain.User
	if err := pgxscan.Get(ctx, r.q(ctx), &u, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", telegramID)
	}

	return &u, nil
}

// Create inserts a new user row. The approval flags are written explicitly so
// a freshly created user is always pending and unnotified.
// Returns domain.ErrAlreadyExists on a duplicate Telegram ID.
func (r *Repo) Create(ctx context.Context, u *domain.User) error {
	query := postgres.Builder().
		Insert(table).
		Columns("telegram_id", "name", "active", "notified").
		Values(u.TelegramID, u.Name, u.Active, u.Notified)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.q(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "user", u.TelegramID)
	}

	return nil
}

// ListPending returns all users awaiting admin approval, oldest first.
func (r *Repo) ListPending(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"active": false})
}

// ListUnnotified returns the notifier candidate set: users that have been
// approved but not yet welcomed.
func (r *Repo) ListUnnotified(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"active": true, "notified": false})
}

func (r *Repo) list(ctx context.Context, where squirrel.Eq) ([]domain.User, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("created_at ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var users []domain.User
	if err := pgxscan.Select(ctx, r.q(ctx), &users, sql, args...); err != nil {
		return nil, postgres.MapError(err, "user", 0)
	}

	return users, nil
}

// Approve marks the user as active and re-arms the welcome notification in a
// single statement, so an approval can never leave a stale notified flag.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) Approve(ctx context.Context, telegramID int64) error {
	query := postgres.Builder().
		Update(table).
		Set("active", true).
		Set("notified", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"telegram_id": telegramID})

	return r.exec(ctx, query, telegramID)
}

// MarkNotified records that the welcome message has been delivered.
// Returns domain.ErrNotFound if the user does not exist.
func (r *Repo) MarkNotified(ctx context.Context, telegramID int64) error {
	query := postgres.Builder().
		Update(table).
		Set("notified", true).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"telegram_id": telegramID})

	return r.exec(ctx, query, telegramID)
}

func (r *Repo) exec(ctx context.Context, query squirrel.UpdateBuilder, telegramID int64) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := r.q(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "user", telegramID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", telegramID, domain.ErrNotFound)
	}

	return nil
}
