package mongodb

import (
	"context"
	"fmt"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const latestLocationCacheTTL = 2 * time.Minute

type trackingRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

func NewTrackingRepository(db *mongo.Database, redisCache *cache.RedisCache) interfaces.TrackingRepository {
	return &trackingRepository{
		collection: db.Collection("tracking"),
		cache:      redisCache,
	}
}

func (r *trackingRepository) Append(ctx context.Context, data *models.TrackingData) error {
	data.ID = primitive.NewObjectID()
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, data)
	if err != nil {
		return fmt.Errorf("failed to append tracking data: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, latestLocationCacheKey(data.BookingID.Hex()), data, latestLocationCacheTTL)
	}

	return nil
}

func (r *trackingRepository) GetLatest(ctx context.Context, bookingID primitive.ObjectID) (*models.TrackingData, error) {
	if r.cache != nil {
		var cached models.TrackingData
		if err := r.cache.Get(ctx, latestLocationCacheKey(bookingID.Hex()), &cached); err == nil {
			return &cached, nil
		}
	}

	opts := options.FindOne().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	var data models.TrackingData
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID}, opts).Decode(&data)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest location: %w", err)
	}

	return &data, nil
}

func (r *trackingRepository) GetHistory(ctx context.Context, bookingID primitive.ObjectID, limit int64) ([]*models.TrackingData, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get tracking history: %w", err)
	}
	defer cursor.Close(ctx)

	var history []*models.TrackingData
	if err := cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("failed to decode tracking history: %w", err)
	}

	return history, nil
}

func latestLocationCacheKey(bookingID string) string {
	return "tracking:latest:" + bookingID
}
