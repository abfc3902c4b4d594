package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// InventoryHandler covers the slice of the inventory surface this service
// owns: the Employee/Admin-gated management entry point. Inventory CRUD
// itself belongs to the catalog collaborator.
type InventoryHandler struct{}

func NewInventoryHandler() *InventoryHandler {
	return &InventoryHandler{}
}

// Management delivers the inventory management view. RequireRole(Employee,
// Admin) runs in front of this route.
func (h *InventoryHandler) Management(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOutcome{View: "inventory/management", Data: claimsResponse(claims)})
}
