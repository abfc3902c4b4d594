package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const loginPath = "/account/login"

// RequireAuthenticated sends anonymous callers to the login entry point.
func RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := CallerClaims(c); !ok {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			return next(c)
		}
	}
}

// RequireRole enforces role gating: anonymous callers and callers whose role
// is outside the allowed set get a forbidden response rendering the login
// surface with an explanatory notice.
func RequireRole(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CallerClaims(c)
			if !ok {
				return forbiddenLogin(c)
			}
			if _, ok := allowed[claims.Role]; !ok {
				return forbiddenLogin(c)
			}
			return next(c)
		}
	}
}

// RequireSelfOrAdmin gates self-service routes carrying the target account id
// in the given path parameter. A mismatch redirects to the account home
// rather than returning 403; that softer outcome is deliberate for these
// user-facing forms.
func RequireSelfOrAdmin(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := CallerClaims(c)
			if !ok {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}
			if !claims.CanActOn(c.Param(param)) {
				return c.Redirect(http.StatusSeeOther, "/account")
			}
			return next(c)
		}
	}
}

func forbiddenLogin(c echo.Context) error {
	return c.JSON(http.StatusForbidden, map[string]string{
		"view":   "account/login",
		"notice": "You are not authorized to view that page. Please log in with an Employee or Admin account.",
	})
}
