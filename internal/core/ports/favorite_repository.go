package ports

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// FavoriteRepository persists per-account vehicle favorites. Add is
// idempotent: inserting an existing (account, vehicle) pair is not an error.
type FavoriteRepository interface {
	Add(ctx context.Context, accountID, vehicleID string) error
	Remove(ctx context.Context, accountID, vehicleID string) error
	ListByAccount(ctx context.Context, accountID string) ([]domain.Favorite, error)
}
