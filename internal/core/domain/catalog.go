package domain

import (
	"errors"
	"time"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Classification is a vehicle category. Only the reference read lives in this
// service; classification CRUD belongs to the catalog collaborator.
type Classification struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Vehicle is the slice of the inventory record favorites need.
type Vehicle struct {
	ID               string  `json:"id"`
	Make             string  `json:"make"`
	Model            string  `json:"model"`
	Year             int     `json:"year"`
	Price            float64 `json:"price"`
	Color            string  `json:"color"`
	ClassificationID string  `json:"classification_id"`
}

// Favorite links an account to a vehicle. The (AccountID, VehicleID) pair is
// unique; a repeated add is a no-op.
type Favorite struct {
	AccountID string    `json:"account_id"`
	VehicleID string    `json:"vehicle_id"`
	CreatedAt time.Time `json:"created_at"`
}
