package interfaces

import (
	"context"
	"errors"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrCorruptRecord marks a stored document that fails the mapping
	// boundary: required fields missing or unparseable.
	ErrCorruptRecord = errors.New("stored record failed validation")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error)
	Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error

	GetByContactEmail(ctx context.Context, email string, params *utils.PaginationParams) ([]*models.Booking, int64, error)
	GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error)
}
