package service

import (
	"context"
	"testing"
	"time"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

type stubFavoriteRepo struct {
	added   map[string]bool
	removed []string
}

func newStubFavoriteRepo() *stubFavoriteRepo {
	return &stubFavoriteRepo{added: make(map[string]bool)}
}

func (r *stubFavoriteRepo) Add(_ context.Context, accountID, vehicleID string) error {
	r.added[accountID+"/"+vehicleID] = true
	return nil
}

func (r *stubFavoriteRepo) Remove(_ context.Context, accountID, vehicleID string) error {
	r.removed = append(r.removed, accountID+"/"+vehicleID)
	return nil
}

func (r *stubFavoriteRepo) ListByAccount(_ context.Context, accountID string) ([]domain.Favorite, error) {
	favs := make([]domain.Favorite, 0, len(r.added))
	for range r.added {
		favs = append(favs, domain.Favorite{AccountID: accountID, CreatedAt: time.Now()})
	}
	return favs, nil
}

type stubCatalog struct {
	vehicles map[string]bool
}

func (c *stubCatalog) VehicleExists(_ context.Context, vehicleID string) (bool, error) {
	return c.vehicles[vehicleID], nil
}

func (c *stubCatalog) ClassificationExists(_ context.Context, _ string) (bool, error) {
	return true, nil
}

func TestFavoriteService_Add_ValidatesVehicle(t *testing.T) {
	repo := newStubFavoriteRepo()
	svc := NewFavoriteService(repo, &stubCatalog{vehicles: map[string]bool{"veh_1": true}})

	if err := svc.Add(context.Background(), "acc_1", "veh_1"); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !repo.added["acc_1/veh_1"] {
		t.Fatalf("favorite not persisted")
	}

	if err := svc.Add(context.Background(), "acc_1", "veh_missing"); err != domain.ErrVehicleNotFound {
		t.Fatalf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestFavoriteService_Remove(t *testing.T) {
	repo := newStubFavoriteRepo()
	svc := NewFavoriteService(repo, &stubCatalog{vehicles: map[string]bool{}})

	if err := svc.Remove(context.Background(), "acc_1", "veh_1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(repo.removed) != 1 || repo.removed[0] != "acc_1/veh_1" {
		t.Fatalf("remove not forwarded: %v", repo.removed)
	}
}
