package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// validTransitions encodes the linear booking lifecycle. Terminal states have
// no outgoing edges; cancellation is reachable from any non-terminal state.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:    {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:  {BookingStatusInProgress, BookingStatusCancelled},
	BookingStatusInProgress: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted:  {},
	BookingStatusCancelled:  {},
}

// CanTransitionTo reports whether a status change is allowed by the lifecycle.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

type Booking struct {
	ID                  primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	BookingNumber       string              `json:"booking_number" bson:"booking_number" validate:"required"`
	UserID              string              `json:"user_id" bson:"user_id"`
	DriverID            *primitive.ObjectID `json:"driver_id,omitempty" bson:"driver_id,omitempty"`
	PickupLocation      Location            `json:"pickup_location" bson:"pickup_location" validate:"required"`
	DropoffLocation     Location            `json:"dropoff_location" bson:"dropoff_location" validate:"required"`
	PickupDatetime      time.Time           `json:"pickup_datetime" bson:"pickup_datetime" validate:"required"`
	ReturnDatetime      *time.Time          `json:"return_datetime,omitempty" bson:"return_datetime,omitempty"`
	PassengerCount      int                 `json:"passenger_count" bson:"passenger_count" validate:"required,min=1,max=8"`
	LuggageCount        int                 `json:"luggage_count" bson:"luggage_count" validate:"min=0,max=10"`
	VehicleType         VehicleType         `json:"vehicle_type" bson:"vehicle_type" validate:"required"`
	TotalPrice          float64             `json:"total_price" bson:"total_price"`
	Price               *PriceBreakdown     `json:"price,omitempty" bson:"price,omitempty"`
	Status              BookingStatus       `json:"status" bson:"status" default:"pending"`
	SpecialRequirements string              `json:"special_requirements,omitempty" bson:"special_requirements,omitempty"`
	FlightNumber        string              `json:"flight_number,omitempty" bson:"flight_number,omitempty"`
	ContactName         string              `json:"contact_name" bson:"contact_name" validate:"required"`
	ContactEmail        string              `json:"contact_email" bson:"contact_email" validate:"required,email"`
	ContactPhone        string              `json:"contact_phone" bson:"contact_phone" validate:"required"`
	ContactWhatsapp     string              `json:"contact_whatsapp,omitempty" bson:"contact_whatsapp,omitempty"`
	Distance            float64             `json:"distance,omitempty" bson:"distance,omitempty"` // kilometers
	Duration            int                 `json:"duration,omitempty" bson:"duration,omitempty"` // minutes
	CreatedAt           time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" bson:"updated_at"`
}

// BookingUpdate carries the only fields mutable after creation. All other
// booking fields are immutable once the record exists.
type BookingUpdate struct {
	Status              *BookingStatus      `json:"status,omitempty"`
	SpecialRequirements *string             `json:"special_requirements,omitempty"`
	DriverID            *primitive.ObjectID `json:"driver_id,omitempty"`
}
