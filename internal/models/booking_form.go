package models

import (
	"strings"
	"time"
)

// BookingFormData accumulates wizard input field by field. It is owned by the
// active wizard session, never shared, and discarded after submission.
type BookingFormData struct {
	PickupLocation  *Location `json:"pickup_location"`
	DropoffLocation *Location `json:"dropoff_location"`

	PickupDate string `json:"pickup_date"` // 2006-01-02
	PickupTime string `json:"pickup_time"` // 15:04
	ReturnTrip bool   `json:"return_trip"`
	ReturnDate string `json:"return_date"`
	ReturnTime string `json:"return_time"`

	PassengerCount int         `json:"passenger_count"`
	LuggageCount   int         `json:"luggage_count"`
	VehicleType    VehicleType `json:"vehicle_type"`

	SpecialRequirements string `json:"special_requirements"`
	FlightNumber        string `json:"flight_number"`

	ContactName     string `json:"contact_name"`
	ContactEmail    string `json:"contact_email"`
	ContactPhone    string `json:"contact_phone"`
	ContactWhatsapp string `json:"contact_whatsapp"`
}

// NewBookingFormData returns the defaults the wizard mounts with.
func NewBookingFormData() *BookingFormData {
	return &BookingFormData{
		PassengerCount: 1,
		LuggageCount:   0,
		VehicleType:    VehicleTypeSedan,
	}
}

// PickupDatetime combines the pickup date and time fields. The zero time is
// returned while either field is missing or malformed.
func (f *BookingFormData) PickupDatetime() time.Time {
	return combineDateTime(f.PickupDate, f.PickupTime)
}

func (f *BookingFormData) ReturnDatetime() time.Time {
	return combineDateTime(f.ReturnDate, f.ReturnTime)
}

// IsAirportTransfer reports whether either end of the journey is an airport,
// which unlocks the flight number field and the airport fee.
func (f *BookingFormData) IsAirportTransfer() bool {
	return MentionsAirport(f.PickupLocation) || MentionsAirport(f.DropoffLocation)
}

// MentionsAirport matches the address or place name case-insensitively; it is
// the single trigger for both the flight number field and the airport fee.
func MentionsAirport(l *Location) bool {
	if l == nil {
		return false
	}
	return strings.Contains(strings.ToLower(l.Address), "airport") ||
		strings.Contains(strings.ToLower(l.Name), "airport")
}

func combineDateTime(date, clock string) time.Time {
	if date == "" || clock == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}
