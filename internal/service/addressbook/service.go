// Package addressbook implements the inline address search.
package addressbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/lorenzotiziani/BotPizzaStyle/internal/domain"
)

// MaxResults caps how many addresses a single search returns.
const MaxResults = 10

// addressRepo defines the address repository interface needed by the service.
type addressRepo interface {
	Search(ctx context.Context, text string, limit uint64) ([]domain.Address, error)
}

// Service implements address lookups.
type Service struct {
	addresses addressRepo
}

// NewService creates a new address book service.
func NewService(addresses addressRepo) *Service {
	return &Service{addresses: addresses}
}

// Search returns up to MaxResults addresses whose label contains the trimmed
// query text, case-insensitively. A blank query returns no results without
// touching the store.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Address, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	addresses, err := s.addresses.Search(ctx, query, MaxResults)
	if err != nil {
		return nil, fmt.Errorf("search addresses: %w", err)
	}

	return addresses, nil
}
