package services

import (
	"context"
	"errors"
	"sync"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/pkg/logger"
	"recharge-transfers/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LocationCallback receives each new tracking point for a subscribed booking.
type LocationCallback func(*models.TrackingData)

// TrackingService relays driver location streams: it persists every point,
// fans out to in-process subscribers in arrival order, and pushes to
// websocket watchers.
type TrackingService struct {
	repo   interfaces.TrackingRepository
	ws     *websocket.Handler
	logger *logger.Logger

	mu          sync.Mutex
	subscribers map[string]map[int64]LocationCallback
	nextSubID   int64
}

func NewTrackingService(repo interfaces.TrackingRepository, ws *websocket.Handler, log *logger.Logger) *TrackingService {
	return &TrackingService{
		repo:        repo,
		ws:          ws,
		logger:      log,
		subscribers: make(map[string]map[int64]LocationCallback),
	}
}

// Publish appends a location record and delivers it to subscribers. Delivery
// happens synchronously under the per-feed lock, which is what guarantees
// arrival order within a booking; no ordering holds across bookings.
func (s *TrackingService) Publish(ctx context.Context, data *models.TrackingData) error {
	if err := s.repo.Append(ctx, data); err != nil {
		return err
	}

	s.mu.Lock()
	for _, callback := range s.subscribers[data.BookingID.Hex()] {
		callback(data)
	}
	s.mu.Unlock()

	if s.ws != nil {
		s.ws.SendLocationUpdate(data.BookingID, map[string]interface{}{
			"latitude":  data.Latitude,
			"longitude": data.Longitude,
			"heading":   data.Heading,
			"speed":     data.Speed,
			"timestamp": data.Timestamp,
		})
	}

	return nil
}

// GetLatestLocation returns the most recent point for a booking, or nil when
// the driver is not yet en route. Absence is not an error.
func (s *TrackingService) GetLatestLocation(ctx context.Context, bookingID primitive.ObjectID) (*models.TrackingData, error) {
	data, err := s.repo.GetLatest(ctx, bookingID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// GetHistory returns recent points for a booking, newest first.
func (s *TrackingService) GetHistory(ctx context.Context, bookingID primitive.ObjectID, limit int64) ([]*models.TrackingData, error) {
	return s.repo.GetHistory(ctx, bookingID, limit)
}

// Subscribe registers a callback for every new point on a booking's feed and
// returns an idempotent unsubscribe function.
func (s *TrackingService) Subscribe(bookingID primitive.ObjectID, callback LocationCallback) func() {
	key := bookingID.Hex()

	s.mu.Lock()
	s.nextSubID++
	id := s.nextSubID
	if s.subscribers[key] == nil {
		s.subscribers[key] = make(map[int64]LocationCallback)
	}
	s.subscribers[key][id] = callback
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.subscribers[key], id)
			if len(s.subscribers[key]) == 0 {
				delete(s.subscribers, key)
			}
		})
	}
}
