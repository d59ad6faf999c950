package wizard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/services"
	"recharge-transfers/internal/validators"
	"recharge-transfers/pkg/maps"
)

// Step identifies a wizard page. Steps are linear: forward navigation is
// gated by validation, backward navigation is always allowed.
type Step int

const (
	StepJourneyDetails Step = iota + 1
	StepVehiclePassengers
	StepContactInfo
	StepReview
)

func (s Step) String() string {
	switch s {
	case StepJourneyDetails:
		return "journey_details"
	case StepVehiclePassengers:
		return "vehicle_passengers"
	case StepContactInfo:
		return "contact_info"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Wizard owns one booking session's form data exclusively. All methods are
// safe for concurrent use; the price always reflects the last settled inputs.
type Wizard struct {
	mu    sync.Mutex
	form  *models.BookingFormData
	step  Step
	price *models.PriceBreakdown

	pricing  *services.PricingService
	bookings *services.BookingService
	places   maps.PlacesProvider
	country  string

	// Monotonic request counters implementing the stale-response guard:
	// a geocode result is dropped unless it belongs to the newest request
	// for that field.
	pickupSeq  uint64
	dropoffSeq uint64

	now func() time.Time
}

func New(pricing *services.PricingService, bookings *services.BookingService, places maps.PlacesProvider, country string) *Wizard {
	return &Wizard{
		form:     models.NewBookingFormData(),
		step:     StepJourneyDetails,
		pricing:  pricing,
		bookings: bookings,
		places:   places,
		country:  country,
		now:      time.Now,
	}
}

func (w *Wizard) CurrentStep() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Price returns the latest breakdown, or nil while inputs are incomplete.
// Callers must render nil as "calculating", never as a zero price.
func (w *Wizard) Price() *models.PriceBreakdown {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.price
}

// FormData returns a snapshot copy so callers cannot mutate wizard state.
func (w *Wizard) FormData() models.BookingFormData {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.form
}

// FlightNumberVisible reports whether the conditional flight number field
// applies to the current journey.
func (w *Wizard) FlightNumberVisible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form.IsAirportTransfer()
}

// Next validates the current step and advances on success. On failure it
// returns every applicable message and the wizard stays where it is.
func (w *Wizard) Next() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step >= StepReview {
		return nil
	}

	if messages := w.validateStep(w.step); len(messages) > 0 {
		return messages
	}

	w.step++
	return nil
}

// Back moves one step backward; it never fails and never discards input.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step > StepJourneyDetails {
		w.step--
	}
}

// GoToStep jumps directly to an earlier (or the current) step. Forward jumps
// must go through Next so validation cannot be skipped.
func (w *Wizard) GoToStep(step Step) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if step < StepJourneyDetails || step > StepReview {
		return fmt.Errorf("unknown wizard step %d", step)
	}
	if step > w.step {
		return fmt.Errorf("cannot skip ahead to step %d from step %d", step, w.step)
	}

	w.step = step
	return nil
}

// Submit persists the booking. Only the review step can submit. On failure
// the form state is untouched so the user can retry without re-entering data;
// on success the session's form is discarded.
func (w *Wizard) Submit(ctx context.Context) (*models.Booking, error) {
	w.mu.Lock()
	if w.step != StepReview {
		step := w.step
		w.mu.Unlock()
		return nil, fmt.Errorf("cannot submit from step %d: review step required", step)
	}
	form := *w.form
	w.mu.Unlock()

	booking, err := w.bookings.CreateBooking(ctx, &form)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.form = models.NewBookingFormData()
	w.step = StepJourneyDetails
	w.price = nil
	w.mu.Unlock()

	return booking, nil
}

// ValidateCurrentStep reruns validation without navigating, for inline
// feedback as the user types.
func (w *Wizard) ValidateCurrentStep() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.validateStep(w.step)
}

func (w *Wizard) validateStep(step Step) []string {
	switch step {
	case StepJourneyDetails:
		return validators.ValidateJourneyDetails(w.form, w.now())
	case StepVehiclePassengers:
		return validators.ValidateVehiclePassengers(w.form)
	case StepContactInfo:
		return validators.ValidateContactInfo(w.form)
	default:
		return nil
	}
}

// recalculate must be called with the lock held. The engine is pure and fast
// enough to run on every field change.
func (w *Wizard) recalculate() {
	w.price = w.pricing.CalculatePrice(
		w.form.PickupLocation,
		w.form.DropoffLocation,
		w.form.VehicleType,
		w.form.PickupDatetime(),
	)
}
