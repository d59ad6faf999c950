package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/repositories/interfaces"
	"recharge-transfers/internal/utils"
	"recharge-transfers/internal/validators"
	"recharge-transfers/pkg/logger"
	"recharge-transfers/pkg/websocket"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidTransition = errors.New("invalid booking status transition")
)

// ValidationError carries the full list of human-readable messages for a
// rejected submission; the caller's form state is left untouched for retry.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "booking validation failed: " + strings.Join(e.Messages, "; ")
}

type BookingService struct {
	repo     interfaces.BookingRepository
	pricing  *PricingService
	notifier *NotificationService
	ws       *websocket.Handler
	logger   *logger.Logger
}

func NewBookingService(
	repo interfaces.BookingRepository,
	pricing *PricingService,
	notifier *NotificationService,
	ws *websocket.Handler,
	log *logger.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		pricing:  pricing,
		notifier: notifier,
		ws:       ws,
		logger:   log,
	}
}

// CreateBooking maps completed wizard output to a persisted booking. A store
// failure is returned as-is so the wizard can retry without losing input.
func (s *BookingService) CreateBooking(ctx context.Context, form *models.BookingFormData) (*models.Booking, error) {
	if messages := validators.ValidateBookingForm(form, time.Now()); len(messages) > 0 {
		return nil, &ValidationError{Messages: messages}
	}

	pickupAt := form.PickupDatetime()
	price := s.pricing.CalculatePrice(form.PickupLocation, form.DropoffLocation, form.VehicleType, pickupAt)
	if price == nil {
		// Unreachable after validation, but never persist a booking without a
		// price snapshot.
		return nil, &ValidationError{Messages: []string{"Price could not be computed for the journey"}}
	}

	distance, _, duration := s.pricing.EstimateJourney(form.PickupLocation, form.DropoffLocation, pickupAt)

	now := time.Now()
	booking := &models.Booking{
		BookingNumber:       utils.GenerateBookingNumber(),
		PickupLocation:      *form.PickupLocation,
		DropoffLocation:     *form.DropoffLocation,
		PickupDatetime:      pickupAt,
		PassengerCount:      form.PassengerCount,
		LuggageCount:        form.LuggageCount,
		VehicleType:         form.VehicleType,
		TotalPrice:          price.Total,
		Price:               price,
		Status:              models.BookingStatusPending,
		SpecialRequirements: utils.SanitizeString(form.SpecialRequirements),
		ContactName:         utils.SanitizeString(form.ContactName),
		ContactEmail:        form.ContactEmail,
		ContactPhone:        form.ContactPhone,
		ContactWhatsapp:     form.ContactWhatsapp,
		Distance:            distance,
		Duration:            duration,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if form.ReturnTrip {
		returnAt := form.ReturnDatetime()
		booking.ReturnDatetime = &returnAt
	}

	// Flight numbers only make sense on airport journeys.
	if form.IsAirportTransfer() {
		booking.FlightNumber = strings.TrimSpace(form.FlightNumber)
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to persist booking: %w", err)
	}

	s.logger.LogBookingEvent(booking.ID, "created", map[string]interface{}{
		"booking_number": booking.BookingNumber,
		"vehicle_type":   booking.VehicleType,
		"total_price":    booking.TotalPrice,
	})

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, booking); err != nil {
			s.logger.WithBookingID(booking.ID).WithError(err).Warn("Failed to send booking confirmation")
		}
	}

	return booking, nil
}

func (s *BookingService) GetBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	booking, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) GetBookingByNumber(ctx context.Context, bookingNumber string) (*models.Booking, error) {
	booking, err := s.repo.GetByBookingNumber(ctx, strings.ToUpper(strings.TrimSpace(bookingNumber)))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ListBookingsByEmail(ctx context.Context, email string, params *utils.PaginationParams) ([]*models.Booking, int64, error) {
	return s.repo.GetByContactEmail(ctx, strings.ToLower(strings.TrimSpace(email)), params)
}

// UpdateBooking mutates the only post-creation-mutable fields: status, special
// requirements, and driver assignment. Status changes go through the
// lifecycle guard.
func (s *BookingService) UpdateBooking(ctx context.Context, id primitive.ObjectID, update *models.BookingUpdate) (*models.Booking, error) {
	booking, err := s.GetBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})

	if update.Status != nil {
		if !booking.Status.CanTransitionTo(*update.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, *update.Status)
		}
		updates["status"] = *update.Status
	}
	if update.SpecialRequirements != nil {
		updates["special_requirements"] = utils.SanitizeString(*update.SpecialRequirements)
	}
	if update.DriverID != nil {
		updates["driver_id"] = *update.DriverID
	}

	if len(updates) == 0 {
		return booking, nil
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, err
	}

	if update.Status != nil {
		s.logger.LogBookingEvent(id, "status_changed", map[string]interface{}{
			"from": booking.Status,
			"to":   *update.Status,
		})
		s.broadcastStatus(id, *update.Status)
	}

	return s.GetBooking(ctx, id)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (*models.Booking, error) {
	return s.UpdateBooking(ctx, id, &models.BookingUpdate{Status: &status})
}

func (s *BookingService) AssignDriver(ctx context.Context, id, driverID primitive.ObjectID) (*models.Booking, error) {
	return s.UpdateBooking(ctx, id, &models.BookingUpdate{DriverID: &driverID})
}

// CancelBooking sets status to cancelled through the lifecycle guard, so a
// completed booking cannot be cancelled after the fact.
func (s *BookingService) CancelBooking(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	return s.UpdateStatus(ctx, id, models.BookingStatusCancelled)
}

func (s *BookingService) broadcastStatus(id primitive.ObjectID, status models.BookingStatus) {
	if s.ws == nil {
		return
	}
	s.ws.SendBookingUpdate(id, "status_update", map[string]interface{}{
		"status": status,
	})
}
