package ports

import "github.com/cse-motors/dealership-api/internal/core/domain"

// TokenService issues and verifies the stateless bearer tokens. Verify fails
// with domain.ErrTokenExpired, domain.ErrTokenMalformed, or
// domain.ErrTokenUnknown; no revocation exists besides expiry.
type TokenService interface {
	Issue(claims domain.ClaimSet) (string, error)
	Verify(token string) (domain.ClaimSet, error)
}
