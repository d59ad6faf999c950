package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes the booking and tracking collections rely
// on. Safe to call on every startup; Mongo treats existing indexes as no-ops.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	bookingIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "booking_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "contact_email", Value: 1}, {Key: "created_at", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "pickup_datetime", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "driver_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	if _, err := m.Collection("bookings").Indexes().CreateMany(ctx, bookingIndexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	trackingIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
		{
			Keys:    bson.D{{Key: "timestamp", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32((30 * 24 * time.Hour).Seconds())),
		},
	}

	if _, err := m.Collection("tracking").Indexes().CreateMany(ctx, trackingIndexes); err != nil {
		return fmt.Errorf("failed to create tracking indexes: %w", err)
	}

	return nil
}
