package ports

import (
	"context"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// AccountRepository defines the interface for account persistence. The
// storage layer enforces email uniqueness; Insert and UpdateProfile surface a
// constraint violation as domain.ErrEmailTaken.
type AccountRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)
	UpdateProfile(ctx context.Context, id, firstName, lastName, email string) (*domain.Account, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}
