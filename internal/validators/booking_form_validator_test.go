package validators

import (
	"testing"
	"time"

	"recharge-transfers/internal/models"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

func journeyForm() *models.BookingFormData {
	form := models.NewBookingFormData()
	form.PickupLocation = models.NewLocation("Bandaranaike International Airport", 7.1807, 79.8841)
	form.DropoffLocation = models.NewLocation("Galle Face Green, Colombo", 6.9250, 79.8416)
	form.PickupDate = "2026-09-10"
	form.PickupTime = "10:00"
	return form
}

func TestValidateJourneyDetails(t *testing.T) {
	t.Run("complete form passes", func(t *testing.T) {
		assert.Empty(t, ValidateJourneyDetails(journeyForm(), now))
	})

	t.Run("missing locations reported together", func(t *testing.T) {
		form := models.NewBookingFormData()
		form.PickupDate = "2026-09-10"
		form.PickupTime = "10:00"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Pickup location is required")
		assert.Contains(t, errs, "Drop-off location is required")
	})

	t.Run("identical locations rejected", func(t *testing.T) {
		form := journeyForm()
		form.DropoffLocation = form.PickupLocation

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Pickup and drop-off locations cannot be the same")
	})

	t.Run("past date rejected", func(t *testing.T) {
		form := journeyForm()
		form.PickupDate = "2026-08-31"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Pickup date cannot be in the past")
	})

	t.Run("today is allowed", func(t *testing.T) {
		form := journeyForm()
		form.PickupDate = "2026-09-01"

		assert.Empty(t, ValidateJourneyDetails(form, now))
	})

	t.Run("return trip requires return fields", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Return date is required for a return trip")
	})

	t.Run("return before pickup rejected", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true
		form.ReturnDate = "2026-09-09"
		form.ReturnTime = "10:00"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Return date must be on or after the pickup date")
	})

	t.Run("malformed return time rejected", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true
		form.ReturnDate = "2026-09-12"
		form.ReturnTime = "25:99"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Return time is not a valid time")
	})

	t.Run("malformed same-day return time rejected", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true
		form.ReturnDate = form.PickupDate
		form.ReturnTime = "9 pm"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Return time is not a valid time")
	})

	t.Run("same-day return must be after pickup time", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true
		form.ReturnDate = form.PickupDate
		form.ReturnTime = "09:00"

		errs := ValidateJourneyDetails(form, now)
		assert.Contains(t, errs, "Return time must be after the pickup time")
	})

	t.Run("same-day later return passes", func(t *testing.T) {
		form := journeyForm()
		form.ReturnTrip = true
		form.ReturnDate = form.PickupDate
		form.ReturnTime = "18:00"

		assert.Empty(t, ValidateJourneyDetails(form, now))
	})
}

func TestValidateVehiclePassengers(t *testing.T) {
	t.Run("within capacity passes", func(t *testing.T) {
		form := journeyForm()
		form.VehicleType = models.VehicleTypeSedan
		form.PassengerCount = 4
		form.LuggageCount = 3

		assert.Empty(t, ValidateVehiclePassengers(form))
	})

	t.Run("over capacity names the shortfall", func(t *testing.T) {
		form := journeyForm()
		form.VehicleType = models.VehicleTypeSedan
		form.PassengerCount = 5

		errs := ValidateVehiclePassengers(form)
		assert.Contains(t, errs,
			"Selected vehicle can only accommodate 4 passengers; please remove 1 passenger(s) or choose a larger vehicle")
	})

	t.Run("luggage over capacity", func(t *testing.T) {
		form := journeyForm()
		form.VehicleType = models.VehicleTypeSedan
		form.LuggageCount = 6

		errs := ValidateVehiclePassengers(form)
		assert.Contains(t, errs,
			"Selected vehicle can only carry 3 pieces of luggage; please remove 3 piece(s) or choose a larger vehicle")
	})

	t.Run("larger vehicle fits the same group", func(t *testing.T) {
		form := journeyForm()
		form.VehicleType = models.VehicleTypeVan
		form.PassengerCount = 5
		form.LuggageCount = 6

		assert.Empty(t, ValidateVehiclePassengers(form))
	})

	t.Run("zero passengers rejected", func(t *testing.T) {
		form := journeyForm()
		form.PassengerCount = 0

		errs := ValidateVehiclePassengers(form)
		assert.Contains(t, errs, "At least 1 passenger is required")
	})
}

func TestValidateContactInfo(t *testing.T) {
	t.Run("complete contact passes", func(t *testing.T) {
		form := journeyForm()
		form.ContactName = "Anna Perera"
		form.ContactEmail = "anna@example.com"
		form.ContactPhone = "+94 77 123 4567"

		assert.Empty(t, ValidateContactInfo(form))
	})

	t.Run("all problems reported at once", func(t *testing.T) {
		form := models.NewBookingFormData()
		form.ContactEmail = "nope"
		form.ContactPhone = "abc"

		errs := ValidateContactInfo(form)
		assert.Contains(t, errs, "Contact name is required")
		assert.Contains(t, errs, "Email address is not valid")
		assert.Contains(t, errs, "Phone number is not valid")
	})
}

func TestValidateBookingFormCombinesSteps(t *testing.T) {
	form := models.NewBookingFormData()
	form.PassengerCount = 0

	errs := ValidateBookingForm(form, now)
	assert.Contains(t, errs, "Pickup location is required")
	assert.Contains(t, errs, "At least 1 passenger is required")
	assert.Contains(t, errs, "Contact name is required")
}
