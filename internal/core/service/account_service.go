package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/ports"
)

// AccountService implements the auth flows: registration, login, logout,
// profile update, and password update. The session mirror is written in the
// same operation as every token issue so the two can never diverge; a mirror
// failure is logged and otherwise ignored because the mirror is not
// authoritative.
type AccountService struct {
	accounts ports.AccountRepository
	hasher   *PasswordHasher
	tokens   ports.TokenService
	mirror   ports.SessionMirror
	log      zerolog.Logger
}

func NewAccountService(accounts ports.AccountRepository, hasher *PasswordHasher, tokens ports.TokenService, mirror ports.SessionMirror, log zerolog.Logger) *AccountService {
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		mirror:   mirror,
		log:      log,
	}
}

// Register creates a Client account. It does not log the caller in; the
// handler sends them to the login surface. The repository's unique email
// constraint is the last line of defense against a concurrent registration
// with the same address; the loser comes back as domain.ErrEmailTaken.
func (s *AccountService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        domain.NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleClient,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.accounts.Insert(ctx, account)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Login verifies credentials and issues a fresh token plus session mirror.
// A missing account and a wrong password both return
// domain.ErrInvalidCredentials so the response never reveals which was wrong.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, domain.ClaimSet, error) {
	account, err := s.accounts.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if err == domain.ErrAccountNotFound {
			return "", domain.ClaimSet{}, domain.ErrInvalidCredentials
		}
		return "", domain.ClaimSet{}, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		return "", domain.ClaimSet{}, domain.ErrInvalidCredentials
	}

	claims := domain.ClaimsFor(account)
	token, err := s.tokens.Issue(claims)
	if err != nil {
		return "", domain.ClaimSet{}, err
	}
	s.putMirror(ctx, claims)

	return token, claims, nil
}

// Logout clears the session mirror. The token itself is stateless; the
// handler clears the cookie. Logout always succeeds.
func (s *AccountService) Logout(ctx context.Context, accountID string) {
	if err := s.mirror.Clear(ctx, accountID); err != nil {
		s.log.Warn().Err(err).Str("account_id", accountID).Msg("session mirror clear failed")
	}
}

// GetAccount loads an account by id for the update form prefill.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// UpdateProfile changes names/email and reissues the token. The role in the
// fresh claims is always the caller's prior role; a role field in the
// submitted payload never reaches this far. A write-time uniqueness conflict
// surfaces as domain.ErrEmailTaken for the pipeline to translate.
func (s *AccountService) UpdateProfile(ctx context.Context, caller domain.ClaimSet, id, firstName, lastName, email string) (string, domain.ClaimSet, error) {
	if !caller.CanActOn(id) {
		return "", domain.ClaimSet{}, domain.ErrForbidden
	}

	updated, err := s.accounts.UpdateProfile(ctx, id, firstName, lastName, domain.NormalizeEmail(email))
	if err != nil {
		return "", domain.ClaimSet{}, err
	}

	claims := domain.ClaimsFor(updated)
	claims.Role = caller.Role
	if caller.AccountID != id {
		// An admin editing someone else keeps their own token; only the
		// subject's mirror is refreshed.
		fresh := domain.ClaimsFor(updated)
		s.putMirror(ctx, fresh)
		return "", domain.ClaimSet{}, nil
	}

	token, err := s.tokens.Issue(claims)
	if err != nil {
		return "", domain.ClaimSet{}, err
	}
	s.putMirror(ctx, claims)

	return token, claims, nil
}

// UpdatePassword replaces the stored hash only. The outstanding token and
// the caller's role are untouched; no re-login is forced.
func (s *AccountService) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	return s.accounts.UpdatePasswordHash(ctx, id, hash)
}

// MirroredClaims returns the session-mirror record for the caller when one
// exists, falling back to the token claims. The mirror is convenience data
// for rendering, never an authorization input.
func (s *AccountService) MirroredClaims(ctx context.Context, caller domain.ClaimSet) domain.ClaimSet {
	mirrored, err := s.mirror.Get(ctx, caller.AccountID)
	if err != nil {
		return caller
	}
	return mirrored
}

func (s *AccountService) putMirror(ctx context.Context, claims domain.ClaimSet) {
	if err := s.mirror.Put(ctx, claims); err != nil {
		s.log.Warn().Err(err).Str("account_id", claims.AccountID).Msg("session mirror write failed")
	}
}
