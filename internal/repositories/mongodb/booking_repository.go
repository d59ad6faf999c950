package mongodb

import (
	"context"
	"fmt"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const activeBookingCacheTTL = 15 * time.Minute

type bookingRepository struct {
	collection *mongo.Collection
	cache      *cache.RedisCache
}

func NewBookingRepository(db *mongo.Database, redisCache *cache.RedisCache) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("bookings"),
		cache:      redisCache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	booking.ID = primitive.NewObjectID()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	r.cacheBooking(ctx, booking)

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if booking := r.getBookingFromCache(ctx, id.Hex()); booking != nil {
		return booking, nil
	}

	var raw bson.M
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	booking, err := decodeBooking(raw)
	if err != nil {
		return nil, err
	}

	if !booking.Status.IsTerminal() {
		r.cacheBooking(ctx, booking)
	}

	return booking, nil
}

func (r *bookingRepository) GetByBookingNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	var raw bson.M
	err := r.collection.FindOne(ctx, bson.M{"booking_number": bookingNumber}).Decode(&raw)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}

	return decodeBooking(raw)
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": updates},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateBookingCache(ctx, id.Hex())

	return nil
}

func (r *bookingRepository) GetByContactEmail(ctx context.Context, email string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookings(ctx, bson.M{"contact_email": email}, params)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, status models.BookingStatus, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return r.findBookings(ctx, bson.M{"status": status}, params)
}

func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	sortOrder := 1
	if params.SortDesc {
		sortOrder = -1
	}

	opts := options.Find().
		SetSort(bson.D{{Key: params.SortBy, Value: sortOrder}}).
		SetSkip(params.Skip()).
		SetLimit(params.Limit())

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.Booking
	for cursor.Next(ctx) {
		var raw bson.M
		if err := cursor.Decode(&raw); err != nil {
			return nil, 0, fmt.Errorf("failed to decode booking: %w", err)
		}

		booking, err := decodeBooking(raw)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, booking)
	}

	if err := cursor.Err(); err != nil {
		return nil, 0, fmt.Errorf("cursor error: %w", err)
	}

	return bookings, total, nil
}

// decodeBooking is the mapping boundary between stored documents and domain
// objects. Malformed records surface as ErrCorruptRecord instead of leaking
// zero values into the rest of the system.
func decodeBooking(raw bson.M) (*models.Booking, error) {
	data, err := bson.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrCorruptRecord, err)
	}

	var booking models.Booking
	if err := bson.Unmarshal(data, &booking); err != nil {
		return nil, fmt.Errorf("%w: %v", interfaces.ErrCorruptRecord, err)
	}

	if booking.Status == "" {
		return nil, fmt.Errorf("%w: missing status on booking %s",
			interfaces.ErrCorruptRecord, booking.ID.Hex())
	}
	if err := utils.ValidateStruct(&booking); err != nil {
		return nil, fmt.Errorf("%w: booking %s: %v",
			interfaces.ErrCorruptRecord, booking.ID.Hex(), err)
	}

	return &booking, nil
}

func (r *bookingRepository) cacheBooking(ctx context.Context, booking *models.Booking) {
	if r.cache == nil {
		return
	}
	r.cache.Set(ctx, bookingCacheKey(booking.ID.Hex()), booking, activeBookingCacheTTL)
}

func (r *bookingRepository) getBookingFromCache(ctx context.Context, id string) *models.Booking {
	if r.cache == nil {
		return nil
	}

	var booking models.Booking
	if err := r.cache.Get(ctx, bookingCacheKey(id), &booking); err != nil {
		return nil
	}
	return &booking
}

func (r *bookingRepository) invalidateBookingCache(ctx context.Context, id string) {
	if r.cache == nil {
		return
	}
	r.cache.Delete(ctx, bookingCacheKey(id))
}

func bookingCacheKey(id string) string {
	return "booking:" + id
}
