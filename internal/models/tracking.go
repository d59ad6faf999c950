package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrackingData is one point in a driver's location stream for a booking. The
// stream is append-only; "current location" is the most recent timestamp.
type TrackingData struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BookingID primitive.ObjectID `json:"booking_id" bson:"booking_id" validate:"required"`
	DriverID  primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	Latitude  float64            `json:"latitude" bson:"latitude" validate:"required,min=-90,max=90"`
	Longitude float64            `json:"longitude" bson:"longitude" validate:"required,min=-180,max=180"`
	Heading   *float64           `json:"heading,omitempty" bson:"heading,omitempty"`
	Speed     *float64           `json:"speed,omitempty" bson:"speed,omitempty"`       // km/h
	Accuracy  *float64           `json:"accuracy,omitempty" bson:"accuracy,omitempty"` // meters
	Timestamp time.Time          `json:"timestamp" bson:"timestamp"`
}
