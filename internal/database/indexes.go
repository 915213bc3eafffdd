package database

import (
	"context"

	"field-sales-ops-api-server/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the uniqueness guards the request handlers rely on:
// one open punch-in per staff, one active assignment per staff, unique
// tracking ids and unique user emails. The partial indexes make the
// check-then-create guards atomic under concurrent requests.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// At most one open trip per staff member.
	_, err = db.Collection("marketing_staff_activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "staffId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.ActivityPunchedIn}),
	})
	if err != nil {
		return err
	}

	// At most one active assignment per staff member.
	_, err = db.Collection("staff_distributor_assignments").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "staffId", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"isActive": true}),
	})
	if err != nil {
		return err
	}

	// Tracking codes are random; the index turns a collision into an
	// insert error the handler retries once.
	_, err = db.Collection("damage_claims").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "trackingId", Value: 1}},
		Options: options.Index().SetUnique(true).SetSparse(true),
	})
	if err != nil {
		return err
	}

	// One visit record per (staff, distributor, shop, trip).
	_, err = db.Collection("retailer_shop_activities").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "staffId", Value: 1},
			{Key: "distributorId", Value: 1},
			{Key: "activityId", Value: 1},
			{Key: "shopName", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
