package ports

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

type FavoriteService interface {
	Add(ctx context.Context, accountID, vehicleID string) error
	Remove(ctx context.Context, accountID, vehicleID string) error
	List(ctx context.Context, accountID string) ([]domain.Favorite, error)
}
