package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

const defaultTokenTTL = time.Hour

// accessClaims is the wire shape of a token: the claim set plus the
// registered expiry/issued-at fields. The password hash is never part of it.
type accessClaims struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens with a process-wide
// secret. It keeps no registry of outstanding tokens; expiry is the only
// invalidation path besides the client dropping its cookie.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL returns the configured token lifetime, which is also the cookie and
// session-mirror lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token carrying exactly the given claim set.
func (s *TokenService) Issue(claims domain.ClaimSet) (string, error) {
	now := s.now().UTC()
	ac := accessClaims{
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Email:     claims.Email,
		Role:      claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, ac)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning its claim set. Failures are
// domain.ErrTokenExpired past the ttl, domain.ErrTokenMalformed for a bad
// signature or structure, and domain.ErrTokenUnknown for anything else.
func (s *TokenService) Verify(token string) (domain.ClaimSet, error) {
	var ac accessClaims
	parsed, err := jwt.ParseWithClaims(token, &ac, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.ClaimSet{}, domain.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return domain.ClaimSet{}, domain.ErrTokenMalformed
		default:
			return domain.ClaimSet{}, domain.ErrTokenUnknown
		}
	}
	if !parsed.Valid {
		return domain.ClaimSet{}, domain.ErrTokenUnknown
	}

	return domain.ClaimSet{
		AccountID: ac.Subject,
		FirstName: ac.FirstName,
		LastName:  ac.LastName,
		Email:     ac.Email,
		Role:      ac.Role,
	}, nil
}
