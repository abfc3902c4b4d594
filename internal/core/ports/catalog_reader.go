package ports

import "context"

// CatalogReader is the minimal read surface this service needs from the
// inventory collaborator: just enough to validate a reference before a
// favorite is written. Catalog CRUD lives elsewhere.
type CatalogReader interface {
	VehicleExists(ctx context.Context, vehicleID string) (bool, error)
	ClassificationExists(ctx context.Context, classificationID string) (bool, error)
}
