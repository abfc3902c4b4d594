package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	inventoryCollection      = "inventory"
	classificationCollection = "classifications"
)

// MongoCatalogReader is the minimal read into the catalog collaborator's
// collections: existence checks only. Catalog CRUD is owned elsewhere.
type MongoCatalogReader struct {
	inventory       *mongo.Collection
	classifications *mongo.Collection
}

func NewCatalogReader(db *mongo.Database) *MongoCatalogReader {
	return &MongoCatalogReader{
		inventory:       db.Collection(inventoryCollection),
		classifications: db.Collection(classificationCollection),
	}
}

func (r *MongoCatalogReader) VehicleExists(ctx context.Context, vehicleID string) (bool, error) {
	return r.exists(ctx, r.inventory, vehicleID)
}

func (r *MongoCatalogReader) ClassificationExists(ctx context.Context, classificationID string) (bool, error) {
	return r.exists(ctx, r.classifications, classificationID)
}

func (r *MongoCatalogReader) exists(ctx context.Context, coll *mongo.Collection, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	n, err := coll.CountDocuments(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("existence check: %w", err)
	}
	return n > 0, nil
}
