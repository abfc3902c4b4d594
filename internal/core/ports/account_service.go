package ports

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// AccountService orchestrates the auth flows: registration, login, logout,
// profile update, and password update.
type AccountService interface {
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, domain.ClaimSet, error)
	Logout(ctx context.Context, accountID string)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	UpdateProfile(ctx context.Context, caller domain.ClaimSet, id, firstName, lastName, email string) (string, domain.ClaimSet, error)
	UpdatePassword(ctx context.Context, id, password string) error
	MirroredClaims(ctx context.Context, caller domain.ClaimSet) domain.ClaimSet
}
