package validators

import (
	"fmt"
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/utils"
)

// Per-step validation for the booking wizard. Failures are human-readable
// messages, collected in full rather than stopping at the first problem, and
// they gate forward navigation without touching already-entered data.

// ValidateJourneyDetails covers step 1: locations, pickup date/time, and the
// conditional return-trip fields.
func ValidateJourneyDetails(form *models.BookingFormData, now time.Time) []string {
	var errors []string

	pickupSet := form.PickupLocation != nil && form.PickupLocation.Address != ""
	dropoffSet := form.DropoffLocation != nil && form.DropoffLocation.Address != ""

	if !pickupSet {
		errors = append(errors, "Pickup location is required")
	}
	if !dropoffSet {
		errors = append(errors, "Drop-off location is required")
	}
	if pickupSet && dropoffSet && form.PickupLocation.Address == form.DropoffLocation.Address {
		errors = append(errors, "Pickup and drop-off locations cannot be the same")
	}

	if form.PickupDate == "" {
		errors = append(errors, "Pickup date is required")
	} else if pickupDate, err := time.ParseInLocation("2006-01-02", form.PickupDate, now.Location()); err != nil {
		errors = append(errors, "Pickup date is not a valid date")
	} else if pickupDate.Before(utils.StartOfDay(now)) {
		errors = append(errors, "Pickup date cannot be in the past")
	}

	if form.PickupTime == "" {
		errors = append(errors, "Pickup time is required")
	} else if _, err := time.Parse("15:04", form.PickupTime); err != nil {
		errors = append(errors, "Pickup time is not a valid time")
	}

	if form.ReturnTrip {
		errors = append(errors, validateReturnTrip(form, now)...)
	}

	return errors
}

func validateReturnTrip(form *models.BookingFormData, now time.Time) []string {
	var errors []string

	if form.ReturnDate == "" {
		errors = append(errors, "Return date is required for a return trip")
		return errors
	}

	returnDate, err := time.ParseInLocation("2006-01-02", form.ReturnDate, now.Location())
	if err != nil {
		errors = append(errors, "Return date is not a valid date")
		return errors
	}

	pickupDate, err := time.ParseInLocation("2006-01-02", form.PickupDate, now.Location())
	if err == nil && returnDate.Before(pickupDate) {
		errors = append(errors, "Return date must be on or after the pickup date")
	}

	if form.ReturnTime == "" {
		errors = append(errors, "Return time is required for a return trip")
	} else if _, err := time.Parse("15:04", form.ReturnTime); err != nil {
		errors = append(errors, "Return time is not a valid time")
	} else if form.ReturnDate == form.PickupDate {
		// Same-day returns compare the combined datetimes.
		pickupAt := form.PickupDatetime()
		returnAt := form.ReturnDatetime()
		if !pickupAt.IsZero() && !returnAt.IsZero() && !returnAt.After(pickupAt) {
			errors = append(errors, "Return time must be after the pickup time")
		}
	}

	return errors
}

// ValidateVehiclePassengers covers step 2: counts against the selected
// vehicle's capacity, with messages naming the exact shortfall.
func ValidateVehiclePassengers(form *models.BookingFormData) []string {
	var errors []string

	if form.VehicleType == "" {
		errors = append(errors, "Please select a vehicle type")
		return errors
	}

	capacity := models.GetVehicleCapacity(form.VehicleType)

	if form.PassengerCount < 1 {
		errors = append(errors, "At least 1 passenger is required")
	} else if form.PassengerCount > capacity.Passengers {
		shortfall := form.PassengerCount - capacity.Passengers
		errors = append(errors, fmt.Sprintf(
			"Selected vehicle can only accommodate %d passengers; please remove %d passenger(s) or choose a larger vehicle",
			capacity.Passengers, shortfall))
	}

	if form.LuggageCount < 0 {
		errors = append(errors, "Luggage count cannot be negative")
	} else if form.LuggageCount > capacity.Luggage {
		excess := form.LuggageCount - capacity.Luggage
		errors = append(errors, fmt.Sprintf(
			"Selected vehicle can only carry %d pieces of luggage; please remove %d piece(s) or choose a larger vehicle",
			capacity.Luggage, excess))
	}

	return errors
}

// ValidateContactInfo covers step 3. Whatsapp is optional and unvalidated.
func ValidateContactInfo(form *models.BookingFormData) []string {
	var errors []string

	if form.ContactName == "" {
		errors = append(errors, "Contact name is required")
	}

	if form.ContactEmail == "" {
		errors = append(errors, "Email address is required")
	} else if !utils.IsValidEmail(form.ContactEmail) {
		errors = append(errors, "Email address is not valid")
	}

	if form.ContactPhone == "" {
		errors = append(errors, "Phone number is required")
	} else if !utils.IsValidPhone(form.ContactPhone) {
		errors = append(errors, "Phone number is not valid")
	}

	return errors
}

// ValidateBookingForm runs every step's validation, the gate applied at
// submission time regardless of how the payload reached the server.
func ValidateBookingForm(form *models.BookingFormData, now time.Time) []string {
	var errors []string
	errors = append(errors, ValidateJourneyDetails(form, now)...)
	errors = append(errors, ValidateVehiclePassengers(form)...)
	errors = append(errors, ValidateContactInfo(form)...)
	return errors
}
