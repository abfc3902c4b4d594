package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/api/middleware"
	"github.com/cse-motors/dealership-api/internal/core/domain"
)

// ctxClaims extracts the caller's claims injected by the identity middleware.
// The guards in front of protected routes make absence a programming error,
// not a user condition, so the fallback is a plain 401.
func ctxClaims(c echo.Context) (domain.ClaimSet, error) {
	claims, ok := middleware.CallerClaims(c)
	if !ok {
		return domain.ClaimSet{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
