package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/cse-motors/dealership-api/internal/core/domain"
)

const favoriteCollection = "favorites"

// MongoFavoriteRepository stores per-account vehicle favorites with a unique
// (account_id, vehicle_id) compound index, making Add idempotent.
type MongoFavoriteRepository struct {
	coll *mongo.Collection
}

func NewFavoriteRepository(db *mongo.Database) *MongoFavoriteRepository {
	return &MongoFavoriteRepository{coll: db.Collection(favoriteCollection)}
}

func (r *MongoFavoriteRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "account_id", Value: 1}, {Key: "vehicle_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create favorite index: %w", err)
	}
	return nil
}

type mongoFavorite struct {
	AccountID string `bson:"account_id"`
	VehicleID string `bson:"vehicle_id"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *MongoFavoriteRepository) Add(ctx context.Context, accountID, vehicleID string) error {
	doc := mongoFavorite{
		AccountID: accountID,
		VehicleID: vehicleID,
		CreatedAt: time.Now().UTC().Unix(),
	}
	_, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Already a favorite; adding twice is fine.
			return nil
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

func (r *MongoFavoriteRepository) Remove(ctx context.Context, accountID, vehicleID string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"account_id": accountID, "vehicle_id": vehicleID})
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	return nil
}

func (r *MongoFavoriteRepository) ListByAccount(ctx context.Context, accountID string) ([]domain.Favorite, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.M{"account_id": accountID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer cur.Close(ctx)

	var out []domain.Favorite
	for cur.Next(ctx) {
		var mf mongoFavorite
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode favorite: %w", err)
		}
		out = append(out, domain.Favorite{
			AccountID: mf.AccountID,
			VehicleID: mf.VehicleID,
			CreatedAt: unixToTime(mf.CreatedAt),
		})
	}
	return out, cur.Err()
}
