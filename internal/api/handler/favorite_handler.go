package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/ports"
)

const favoritesView = "account/favorites"

// FavoriteHandler manages the caller's vehicle favorites. All routes sit
// behind RequireAuthenticated; favorites always belong to the caller.
type FavoriteHandler struct {
	favorites ports.FavoriteService
}

func NewFavoriteHandler(favorites ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites}
}

// List returns the caller's favorites, newest first.
func (h *FavoriteHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	items, err := h.favorites.List(c.Request().Context(), claims.AccountID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOutcome{View: favoritesView, Data: items})
}

// Add marks a vehicle as a favorite. Adding an existing favorite is a no-op.
func (h *FavoriteHandler) Add(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	vehicleID := c.Param("vehicleId")
	if err := h.favorites.Add(c.Request().Context(), claims.AccountID, vehicleID); err != nil {
		if errors.Is(err, domain.ErrVehicleNotFound) {
			return echo.NewHTTPError(http.StatusBadRequest, "unknown vehicle")
		}
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/detail/"+vehicleID)
}

// Remove drops a vehicle from the caller's favorites.
func (h *FavoriteHandler) Remove(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	vehicleID := c.Param("vehicleId")
	if err := h.favorites.Remove(c.Request().Context(), claims.AccountID, vehicleID); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/inv/detail/"+vehicleID)
}
