package utils

import "time"

// Application Constants
const (
	AppName    = "RechargeTransfers"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage    = "en"
	DefaultCurrency    = "LKR"
	DefaultCountryCode = "+94"
	DefaultCountry     = "lk"
	DefaultTimeZone    = "Asia/Colombo"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Geo constants
	EarthRadiusKM = 6371.0

	// Journey limits
	MaxPassengers   = 8
	MaxLuggage      = 10
	MaxRideDistance = 500.0 // kilometers

	// Pricing
	TaxRate            = 0.12
	NightSurchargeRate = 0.20
	AirportFee         = 500.0 // flat, LKR
	FallbackDistanceKM = 50.0  // used while geocoding has not resolved
	NightStartHour     = 22    // surcharge after 22:00
	NightEndHour       = 6     // surcharge before 06:00

	// Traffic speed assumptions (km/h)
	SpeedLowTraffic    = 50.0
	SpeedMediumTraffic = 40.0
	SpeedHighTraffic   = 25.0

	// Booking references
	BookingNumberPrefix       = "SLT"
	BookingNumberRandomLength = 4

	// Tracking
	DriverLocationUpdateInterval = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrValidationFailed = "validation failed"
	ErrInternalServer   = "internal server error"
	ErrNotFound         = "resource not found"
	ErrBadRequest       = "bad request"
)
