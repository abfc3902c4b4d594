package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/api/metrics"
	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/ports"
)

// TokenCookie is the transport for the bearer token.
const TokenCookie = "jwt"

// Context keys populated by ResolveIdentity.
const (
	ClaimsKey        = "claims"
	AuthenticatedKey = "authenticated"
)

// ResolveIdentity runs on every request before route logic. An absent token
// is not an error; the request proceeds anonymous. An invalid or expired
// token is cleared from the transport so a stale cookie self-heals, and the
// request still proceeds anonymous. Verification failure never aborts the
// pipeline.
func ResolveIdentity(tokens ports.TokenService, secure bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AuthenticatedKey, false)

			cookie, err := c.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			claims, err := tokens.Verify(cookie.Value)
			if err != nil {
				metrics.TokenVerifyFailures.WithLabelValues(verifyFailureReason(err)).Inc()
				ClearTokenCookie(c, secure)
				return next(c)
			}

			c.Set(ClaimsKey, claims)
			c.Set(AuthenticatedKey, true)
			return next(c)
		}
	}
}

// CallerClaims returns the authenticated caller's claim set, if any.
func CallerClaims(c echo.Context) (domain.ClaimSet, bool) {
	authed, _ := c.Get(AuthenticatedKey).(bool)
	if !authed {
		return domain.ClaimSet{}, false
	}
	claims, ok := c.Get(ClaimsKey).(domain.ClaimSet)
	return claims, ok
}

// SetTokenCookie attaches a freshly issued token to the response.
// Attributes per the transport contract: httpOnly, sameSite=lax, path=/,
// maxAge = ttl, secure only in production.
func SetTokenCookie(c echo.Context, token string, ttl time.Duration, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearTokenCookie expires the token cookie on the client.
func ClearTokenCookie(c echo.Context, secure bool) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func verifyFailureReason(err error) string {
	switch err {
	case domain.ErrTokenExpired:
		return "expired"
	case domain.ErrTokenMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}
