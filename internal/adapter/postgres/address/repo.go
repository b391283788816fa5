// Package address implements the read-only address book repository.
package address

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/adapter/postgres"
	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

const table = "addresses"

var columns = []string{"id", "label", "maps_link"}

// Repo provides address lookups backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new address repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Search returns addresses whose label contains the given text,
// case-insensitively, capped at limit rows.
func (r *Repo) Search(ctx context.Context, text string, limit uint64) ([]domain.Address, error) {
	query := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.ILike{"label": "%" + text + "%"}).
		OrderBy("label ASC").
		Limit(limit)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var addresses []domain.Address
	q := postgres.QuerierFromCtx(ctx, r.db)
	if err := pgxscan.Select(ctx, q, &addresses, sql, args...); err != nil {
		return nil, postgres.MapError(err, "address", 0)
	}

	return addresses, nil
}
