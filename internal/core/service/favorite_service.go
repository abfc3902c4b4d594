package service

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/ports"
)

// FavoriteServiceImpl manages per-account vehicle favorites. The vehicle
// reference is validated through the catalog reader before a write.
type FavoriteServiceImpl struct {
	favorites ports.FavoriteRepository
	catalog   ports.CatalogReader
}

func NewFavoriteService(favorites ports.FavoriteRepository, catalog ports.CatalogReader) *FavoriteServiceImpl {
	return &FavoriteServiceImpl{favorites: favorites, catalog: catalog}
}

func (s *FavoriteServiceImpl) Add(ctx context.Context, accountID, vehicleID string) error {
	exists, err := s.catalog.VehicleExists(ctx, vehicleID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrVehicleNotFound
	}
	return s.favorites.Add(ctx, accountID, vehicleID)
}

func (s *FavoriteServiceImpl) Remove(ctx context.Context, accountID, vehicleID string) error {
	return s.favorites.Remove(ctx, accountID, vehicleID)
}

func (s *FavoriteServiceImpl) List(ctx context.Context, accountID string) ([]domain.Favorite, error) {
	return s.favorites.ListByAccount(ctx, accountID)
}
