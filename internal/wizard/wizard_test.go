package wizard

import (
	"context"
	"strings"
	"sync"
	"testing"

	"recharge-transfers/internal/config"
	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/internal/services"
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/logger"
	"recharge-transfers/pkg/maps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryBookingRepo struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]*models.Booking
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{byID: make(map[primitive.ObjectID]*models.Booking)}
}

func (r *memoryBookingRepo) Create(_ context.Context, booking *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	booking.ID = primitive.NewObjectID()
	stored := *booking
	r.byID[booking.ID] = &stored
	return nil
}

func (r *memoryBookingRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking, ok := r.byID[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, interfaces.ErrNotFound
}

func (r *memoryBookingRepo) GetByBookingNumber(_ context.Context, bookingNumber string) (*models.Booking, error) {
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

func (r *memoryBookingRepo) Update(_ context.Context, _ primitive.ObjectID, _ map[string]interface{}) error {
	return nil
}

func (r *memoryBookingRepo) GetByContactEmail(_ context.Context, _ string, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

func (r *memoryBookingRepo) GetByStatus(_ context.Context, _ models.BookingStatus, _ *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return nil, 0, nil
}

// blockingPlaces serves one result per query and can hold a request open
// until released, for exercising the stale-response guard.
type blockingPlaces struct {
	mu      sync.Mutex
	results map[string]maps.PlaceResult
	holds   map[string]chan struct{}
	entered map[string]chan struct{}
}

func newBlockingPlaces() *blockingPlaces {
	return &blockingPlaces{
		results: make(map[string]maps.PlaceResult),
		holds:   make(map[string]chan struct{}),
		entered: make(map[string]chan struct{}),
	}
}

func (p *blockingPlaces) add(query string, result maps.PlaceResult) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.results[query] = result
}

// hold makes the given query block until release is closed; entered is closed
// once the request has reached the provider.
func (p *blockingPlaces) hold(query string) (release, entered chan struct{}) {
	release = make(chan struct{})
	entered = make(chan struct{})
	p.mu.Lock()
	defer p.mu.Unlock()
	p.holds[query] = release
	p.entered[query] = entered
	return release, entered
}

func (p *blockingPlaces) SearchPlaces(_ context.Context, request *maps.PlaceSearchRequest) (*maps.PlaceSearchResponse, error) {
	p.mu.Lock()
	hold := p.holds[request.Query]
	entered := p.entered[request.Query]
	result, ok := p.results[request.Query]
	delete(p.entered, request.Query)
	p.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if hold != nil {
		<-hold
	}
	if !ok {
		return &maps.PlaceSearchResponse{}, nil
	}
	return &maps.PlaceSearchResponse{Results: []maps.PlaceResult{result}}, nil
}

func (p *blockingPlaces) Geocode(_ context.Context, _ string) (*maps.GeocodeResponse, error) {
	return &maps.GeocodeResponse{}, nil
}

func (p *blockingPlaces) ReverseGeocode(_ context.Context, _, _ float64) (*maps.GeocodeResponse, error) {
	return &maps.GeocodeResponse{}, nil
}

func newTestWizard(t *testing.T) (*Wizard, *blockingPlaces) {
	t.Helper()

	log, err := logger.NewLogger(&logger.Config{
		Level:  logger.ErrorLevel,
		Format: "text",
		Output: "stdout",
	})
	require.NoError(t, err)

	pricing := services.NewPricingService(log)
	notifier := services.NewNotificationService(nil, &config.SMSConfig{Enabled: false}, log)
	bookings := services.NewBookingService(newMemoryBookingRepo(), pricing, notifier, nil, log)
	places := newBlockingPlaces()

	return New(pricing, bookings, places, "lk"), places
}

func fillJourney(w *Wizard) {
	w.SetPickupLocation(models.NewLocation("Bandaranaike International Airport", 7.1807, 79.8841))
	w.SetDropoffLocation(models.NewLocation("Galle Face Green, Colombo", 6.9250, 79.8416))
	w.SetPickupDate("2099-06-15")
	w.SetPickupTime("10:00")
}

func fillContact(w *Wizard) {
	w.SetContactName("Anna Perera")
	w.SetContactEmail("anna@example.com")
	w.SetContactPhone("+94 77 123 4567")
}

func TestWizardStartsAtJourneyDetails(t *testing.T) {
	w, _ := newTestWizard(t)

	assert.Equal(t, StepJourneyDetails, w.CurrentStep())
	assert.Nil(t, w.Price())

	form := w.FormData()
	assert.Equal(t, 1, form.PassengerCount)
	assert.Equal(t, models.VehicleTypeSedan, form.VehicleType)
}

func TestNextGatedByValidation(t *testing.T) {
	w, _ := newTestWizard(t)

	w.SetPickupLocation(models.NewLocation("Colombo Fort", 6.9344, 79.8500))
	w.SetPickupDate("2099-06-15")
	w.SetPickupTime("10:00")

	messages := w.Next()
	assert.Contains(t, messages, "Drop-off location is required")
	assert.Equal(t, StepJourneyDetails, w.CurrentStep())

	w.SetDropoffLocation(models.NewLocation("Galle Face Green, Colombo", 6.9250, 79.8416))
	assert.Empty(t, w.Next())
	assert.Equal(t, StepVehiclePassengers, w.CurrentStep())
}

func TestCapacityGateNamesShortfall(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)
	require.Empty(t, w.Next())

	w.SetVehicleType(models.VehicleTypeSedan)
	w.SetPassengerCount(5)

	messages := w.Next()
	require.Len(t, messages, 1)
	assert.Contains(t, messages[0], "can only accommodate 4 passengers")
	assert.Contains(t, messages[0], "remove 1 passenger(s)")
	assert.Equal(t, StepVehiclePassengers, w.CurrentStep())

	w.SetVehicleType(models.VehicleTypeSUV)
	assert.Empty(t, w.Next())
	assert.Equal(t, StepContactInfo, w.CurrentStep())
}

func TestBackNavigationPreservesInput(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)
	require.Empty(t, w.Next())

	w.SetPassengerCount(3)
	w.Back()

	assert.Equal(t, StepJourneyDetails, w.CurrentStep())
	assert.Equal(t, 3, w.FormData().PassengerCount)

	// Moving forward again re-validates but keeps everything entered.
	assert.Empty(t, w.Next())
	assert.Equal(t, StepVehiclePassengers, w.CurrentStep())
}

func TestGoToStepOnlyBackward(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)
	require.Empty(t, w.Next())
	require.Empty(t, w.Next())

	require.NoError(t, w.GoToStep(StepJourneyDetails))
	assert.Equal(t, StepJourneyDetails, w.CurrentStep())

	assert.Error(t, w.GoToStep(StepReview))
	assert.Equal(t, StepJourneyDetails, w.CurrentStep())
}

func TestPriceRecomputedOnFieldChanges(t *testing.T) {
	w, _ := newTestWizard(t)

	w.SetPickupLocation(models.NewLocation("Colombo Fort", 6.9344, 79.8500))
	assert.Nil(t, w.Price())

	w.SetDropoffLocation(models.NewLocation("Galle Face Green, Colombo", 6.9250, 79.8416))
	sedanPrice := w.Price()
	require.NotNil(t, sedanPrice)

	w.SetVehicleType(models.VehicleTypeLuxury)
	luxuryPrice := w.Price()
	require.NotNil(t, luxuryPrice)
	assert.Greater(t, luxuryPrice.Total, sedanPrice.Total)
}

func TestFlightNumberVisibility(t *testing.T) {
	w, _ := newTestWizard(t)

	w.SetPickupLocation(models.NewLocation("Colombo Fort", 6.9344, 79.8500))
	w.SetDropoffLocation(models.NewLocation("Galle Face Green, Colombo", 6.9250, 79.8416))
	assert.False(t, w.FlightNumberVisible())

	w.SetPickupLocation(models.NewLocation("Bandaranaike International Airport", 7.1807, 79.8841))
	assert.True(t, w.FlightNumberVisible())
}

func TestSubmitOnlyFromReview(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)

	_, err := w.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "review step required")
}

func TestSubmitCreatesBookingAndResets(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)
	require.Empty(t, w.Next())
	require.Empty(t, w.Next())
	fillContact(w)
	require.Empty(t, w.Next())
	require.Equal(t, StepReview, w.CurrentStep())

	booking, err := w.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(booking.BookingNumber, "SLT"))
	assert.Equal(t, models.BookingStatusPending, booking.Status)

	// A fresh session after submission.
	assert.Equal(t, StepJourneyDetails, w.CurrentStep())
	assert.Nil(t, w.Price())
	assert.Empty(t, w.FormData().ContactName)
}

func TestSubmitFailurePreservesState(t *testing.T) {
	w, _ := newTestWizard(t)
	fillJourney(w)
	require.Empty(t, w.Next())
	require.Empty(t, w.Next())
	fillContact(w)
	require.Empty(t, w.Next())

	// Sabotage the form after passing the gates; submission re-validates.
	w.SetContactEmail("broken")

	_, err := w.Submit(context.Background())
	require.Error(t, err)

	var validationErr *services.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// Still on review with everything intact for a retry.
	assert.Equal(t, StepReview, w.CurrentStep())
	assert.Equal(t, "Anna Perera", w.FormData().ContactName)
}

func TestResolveAddressAppliesResult(t *testing.T) {
	w, places := newTestWizard(t)

	places.add("galle face", maps.PlaceResult{
		PlaceID: "place-gf",
		Name:    "Galle Face Green",
		Address: "Galle Face Green, Colombo",
		Location: maps.Location{
			Latitude:  6.9250,
			Longitude: 79.8416,
		},
	})

	require.NoError(t, w.ResolveDropoffAddress(context.Background(), "galle face"))

	form := w.FormData()
	require.NotNil(t, form.DropoffLocation)
	assert.Equal(t, "place-gf", form.DropoffLocation.PlaceID)
	assert.True(t, form.DropoffLocation.HasCoordinates())
}

func TestResolveAddressDropsStaleResponse(t *testing.T) {
	w, places := newTestWizard(t)

	places.add("first query", maps.PlaceResult{
		PlaceID:  "stale",
		Address:  "Old Result",
		Location: maps.Location{Latitude: 6.0, Longitude: 80.0},
	})
	places.add("second query", maps.PlaceResult{
		PlaceID:  "fresh",
		Address:  "New Result",
		Location: maps.Location{Latitude: 7.0, Longitude: 79.0},
	})

	release, entered := places.hold("first query")
	firstDone := make(chan error, 1)
	go func() {
		firstDone <- w.ResolvePickupAddress(context.Background(), "first query")
	}()
	<-entered

	// The second request starts after the first and finishes before it.
	require.NoError(t, w.ResolvePickupAddress(context.Background(), "second query"))

	close(release)
	require.NoError(t, <-firstDone)

	form := w.FormData()
	require.NotNil(t, form.PickupLocation)
	assert.Equal(t, "fresh", form.PickupLocation.PlaceID)
	assert.Equal(t, "New Result", form.PickupLocation.Address)
}
