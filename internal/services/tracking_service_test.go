package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeTrackingRepo struct {
	mu     sync.Mutex
	points map[primitive.ObjectID][]*models.TrackingData
}

func newFakeTrackingRepo() *fakeTrackingRepo {
	return &fakeTrackingRepo{points: make(map[primitive.ObjectID][]*models.TrackingData)}
}

func (r *fakeTrackingRepo) Append(_ context.Context, data *models.TrackingData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if data.ID.IsZero() {
		data.ID = primitive.NewObjectID()
	}
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}
	stored := *data
	r.points[data.BookingID] = append(r.points[data.BookingID], &stored)
	return nil
}

func (r *fakeTrackingRepo) GetLatest(_ context.Context, bookingID primitive.ObjectID) (*models.TrackingData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	points := r.points[bookingID]
	if len(points) == 0 {
		return nil, interfaces.ErrNotFound
	}
	copied := *points[len(points)-1]
	return &copied, nil
}

func (r *fakeTrackingRepo) GetHistory(_ context.Context, bookingID primitive.ObjectID, limit int64) ([]*models.TrackingData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	points := r.points[bookingID]
	var results []*models.TrackingData
	for i := len(points) - 1; i >= 0 && int64(len(results)) < limit; i-- {
		copied := *points[i]
		results = append(results, &copied)
	}
	return results, nil
}

func newTestTrackingService(t *testing.T) *TrackingService {
	t.Helper()
	return NewTrackingService(newFakeTrackingRepo(), nil, testLogger(t))
}

func point(bookingID primitive.ObjectID, lat, lng float64) *models.TrackingData {
	return &models.TrackingData{
		BookingID: bookingID,
		DriverID:  primitive.NewObjectID(),
		Latitude:  lat,
		Longitude: lng,
	}
}

func TestGetLatestLocationAbsence(t *testing.T) {
	svc := newTestTrackingService(t)

	data, err := svc.GetLatestLocation(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestPublishAndGetLatest(t *testing.T) {
	svc := newTestTrackingService(t)
	ctx := context.Background()
	bookingID := primitive.NewObjectID()

	require.NoError(t, svc.Publish(ctx, point(bookingID, 7.18, 79.88)))
	require.NoError(t, svc.Publish(ctx, point(bookingID, 7.10, 79.87)))

	latest, err := svc.GetLatestLocation(ctx, bookingID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 7.10, latest.Latitude)
}

func TestSubscribeReceivesPointsInOrder(t *testing.T) {
	svc := newTestTrackingService(t)
	ctx := context.Background()
	bookingID := primitive.NewObjectID()

	var received []float64
	unsubscribe := svc.Subscribe(bookingID, func(data *models.TrackingData) {
		received = append(received, data.Latitude)
	})
	defer unsubscribe()

	for _, lat := range []float64{7.18, 7.15, 7.12, 7.10} {
		require.NoError(t, svc.Publish(ctx, point(bookingID, lat, 79.88)))
	}

	assert.Equal(t, []float64{7.18, 7.15, 7.12, 7.10}, received)
}

func TestSubscribeScopedToBooking(t *testing.T) {
	svc := newTestTrackingService(t)
	ctx := context.Background()
	watched := primitive.NewObjectID()
	other := primitive.NewObjectID()

	var count int
	unsubscribe := svc.Subscribe(watched, func(*models.TrackingData) { count++ })
	defer unsubscribe()

	require.NoError(t, svc.Publish(ctx, point(other, 6.93, 79.85)))
	require.NoError(t, svc.Publish(ctx, point(watched, 7.18, 79.88)))

	assert.Equal(t, 1, count)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	svc := newTestTrackingService(t)
	ctx := context.Background()
	bookingID := primitive.NewObjectID()

	var count int
	unsubscribe := svc.Subscribe(bookingID, func(*models.TrackingData) { count++ })

	require.NoError(t, svc.Publish(ctx, point(bookingID, 7.18, 79.88)))
	unsubscribe()
	unsubscribe()
	require.NoError(t, svc.Publish(ctx, point(bookingID, 7.10, 79.87)))

	assert.Equal(t, 1, count)
}

func TestGetHistoryNewestFirst(t *testing.T) {
	svc := newTestTrackingService(t)
	ctx := context.Background()
	bookingID := primitive.NewObjectID()

	for _, lat := range []float64{7.18, 7.15, 7.10} {
		require.NoError(t, svc.Publish(ctx, point(bookingID, lat, 79.88)))
	}

	history, err := svc.GetHistory(ctx, bookingID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 7.10, history[0].Latitude)
	assert.Equal(t, 7.15, history[1].Latitude)
}
