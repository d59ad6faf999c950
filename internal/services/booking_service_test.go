package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"recharge-transfers/internal/config"
	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBookingRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	stored := *booking
	r.byID[booking.ID] = &stored
	return nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.byID[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	copied := *booking
	return &copied, nil
}

func (r *fakeBookingRepo) GetByBookingNumber(_ context.Context, bookingNumber string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, booking := range r.byID {
		if booking.BookingNumber == bookingNumber {
			copied := *booking
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeBookingRepo) Update(_ context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking, ok := r.byID[id]
	if !ok {
		return interfaces.ErrNotFound
	}
	if status, ok := updates["status"]; ok {
		booking.Status = status.(models.BookingStatus)
	}
	if reqs, ok := updates["special_requirements"]; ok {
		booking.SpecialRequirements = reqs.(string)
	}
	if driverID, ok := updates["driver_id"]; ok {
		id := driverID.(primitive.ObjectID)
		booking.DriverID = &id
	}
	return nil
}

func (r *fakeBookingRepo) GetByContactEmail(_ context.Context, email string, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*models.Booking
	for _, booking := range r.byID {
		if strings.EqualFold(booking.ContactEmail, email) {
			copied := *booking
			results = append(results, &copied)
		}
	}
	return results, int64(len(results)), nil
}

func (r *fakeBookingRepo) GetByStatus(_ context.Context, status models.BookingStatus, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var results []*models.Booking
	for _, booking := range r.byID {
		if booking.Status == status {
			copied := *booking
			results = append(results, &copied)
		}
	}
	return results, int64(len(results)), nil
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	require.NoError(t, err)
	return log
}

func newTestBookingService(t *testing.T) (*BookingService, *fakeBookingRepo) {
	t.Helper()
	log := testLogger(t)
	repo := newFakeBookingRepo()
	pricing := NewPricingService(log)
	notifier := NewNotificationService(nil, &config.SMSConfig{Enabled: false}, log)
	return NewBookingService(repo, pricing, notifier, nil, log), repo
}

func validForm() *models.BookingFormData {
	form := models.NewBookingFormData()
	form.PickupLocation = bandaranaikeAirport()
	form.DropoffLocation = galleFace()
	form.PickupDate = "2099-06-15"
	form.PickupTime = "10:00"
	form.PassengerCount = 2
	form.LuggageCount = 2
	form.VehicleType = models.VehicleTypeSedan
	form.FlightNumber = "UL504"
	form.ContactName = "Anna Perera"
	form.ContactEmail = "anna@example.com"
	form.ContactPhone = "+94 77 123 4567"
	return form
}

func TestCreateBooking(t *testing.T) {
	svc, _ := newTestBookingService(t)

	booking, err := svc.CreateBooking(context.Background(), validForm())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(booking.BookingNumber, "SLT"))
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, models.VehicleTypeSedan, booking.VehicleType)
	assert.Equal(t, "UL504", booking.FlightNumber)
	require.NotNil(t, booking.Price)
	assert.Equal(t, booking.Price.Total, booking.TotalPrice)
	assert.Greater(t, booking.TotalPrice, 0.0)
	assert.Greater(t, booking.Distance, 0.0)
	assert.Greater(t, booking.Duration, 0)
	assert.Nil(t, booking.ReturnDatetime)

	// The stored record round-trips.
	stored, err := svc.GetBookingByNumber(context.Background(), booking.BookingNumber)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, stored.ID)
	assert.Equal(t, booking.ContactEmail, stored.ContactEmail)
	assert.Equal(t, booking.PickupLocation.Address, stored.PickupLocation.Address)
}

func TestCreateBookingRejectsInvalidForm(t *testing.T) {
	svc, _ := newTestBookingService(t)

	form := validForm()
	form.DropoffLocation = nil
	form.ContactEmail = "not-an-email"

	_, err := svc.CreateBooking(context.Background(), form)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Messages, "Drop-off location is required")
	assert.Contains(t, validationErr.Messages, "Email address is not valid")
}

func TestCreateBookingDropsFlightNumberForCityJourneys(t *testing.T) {
	svc, _ := newTestBookingService(t)

	form := validForm()
	form.PickupLocation = colomboFort()
	form.DropoffLocation = galleFace()

	booking, err := svc.CreateBooking(context.Background(), form)
	require.NoError(t, err)
	assert.Empty(t, booking.FlightNumber)
}

func TestCreateBookingReturnTrip(t *testing.T) {
	svc, _ := newTestBookingService(t)

	form := validForm()
	form.ReturnTrip = true
	form.ReturnDate = "2099-06-20"
	form.ReturnTime = "14:00"

	booking, err := svc.CreateBooking(context.Background(), form)
	require.NoError(t, err)
	require.NotNil(t, booking.ReturnDatetime)
	assert.True(t, booking.ReturnDatetime.After(booking.PickupDatetime))
}

func TestUpdateStatusFollowsLifecycle(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, validForm())
	require.NoError(t, err)

	// pending cannot skip to completed.
	_, err = svc.UpdateStatus(ctx, booking.ID, models.BookingStatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
	} {
		booking, err = svc.UpdateStatus(ctx, booking.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, booking.Status)
	}
}

func TestCancelCompletedBookingRejected(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, validForm())
	require.NoError(t, err)

	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusInProgress,
		models.BookingStatusCompleted,
	} {
		_, err = svc.UpdateStatus(ctx, booking.ID, status)
		require.NoError(t, err)
	}

	_, err = svc.CancelBooking(ctx, booking.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelPendingBooking(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, validForm())
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
}

func TestUpdateBookingMutableFields(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	booking, err := svc.CreateBooking(ctx, validForm())
	require.NoError(t, err)

	reqs := "Child seat, please"
	driverID := primitive.NewObjectID()
	updated, err := svc.UpdateBooking(ctx, booking.ID, &models.BookingUpdate{
		SpecialRequirements: &reqs,
		DriverID:            &driverID,
	})
	require.NoError(t, err)
	assert.Equal(t, reqs, updated.SpecialRequirements)
	require.NotNil(t, updated.DriverID)
	assert.Equal(t, driverID, *updated.DriverID)
	// Untouched fields are preserved.
	assert.Equal(t, booking.BookingNumber, updated.BookingNumber)
	assert.Equal(t, booking.TotalPrice, updated.TotalPrice)
}

func TestGetBookingNotFound(t *testing.T) {
	svc, _ := newTestBookingService(t)

	_, err := svc.GetBooking(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetBookingByNumber(context.Background(), "SLTDOESNOTEXIST")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestListBookingsByEmail(t *testing.T) {
	svc, _ := newTestBookingService(t)
	ctx := context.Background()

	_, err := svc.CreateBooking(ctx, validForm())
	require.NoError(t, err)

	other := validForm()
	other.ContactEmail = "someone.else@example.com"
	_, err = svc.CreateBooking(ctx, other)
	require.NoError(t, err)

	bookings, total, err := svc.ListBookingsByEmail(ctx, "Anna@Example.com", &utils.PaginationParams{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "anna@example.com", bookings[0].ContactEmail)
}
