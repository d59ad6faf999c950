package interfaces

import (
	"context"

	"recharge-transfers/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrackingRepository interface {
	Append(ctx context.Context, data *models.TrackingData) error
	GetLatest(ctx context.Context, bookingID primitive.ObjectID) (*models.TrackingData, error)
	GetHistory(ctx context.Context, bookingID primitive.ObjectID, limit int64) ([]*models.TrackingData, error)
}
