package services

import (
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/utils"
	"recharge-transfers/pkg/logger"
)

// PricingService is the pure price engine. It never performs I/O; it operates
// only on already-resolved inputs and is cheap enough to recompute on every
// field change.
type PricingService struct {
	logger *logger.Logger
}

func NewPricingService(log *logger.Logger) *PricingService {
	return &PricingService{
		logger: log,
	}
}

// CalculatePrice computes the full breakdown for a journey. It returns nil
// while either location is absent: "not yet computable" is not an error, and
// callers must render it as a pending state rather than a zero price.
func (s *PricingService) CalculatePrice(pickup, dropoff *models.Location, vehicleType models.VehicleType, pickupTime time.Time) *models.PriceBreakdown {
	if pickup == nil || dropoff == nil || pickup.Address == "" || dropoff.Address == "" {
		return nil
	}

	vehicleClass := models.GetVehicleClass(vehicleType)

	distance, estimated := s.journeyDistance(pickup, dropoff)
	basePrice := vehicleClass.BasePrice
	distancePrice := utils.RoundPrice(distance * vehicleClass.PricePerKM)

	surcharges := models.Surcharges{}
	if !pickupTime.IsZero() && utils.IsNightTime(pickupTime) {
		surcharges.NightSurcharge = utils.RoundPrice(basePrice * utils.NightSurchargeRate)
	}
	if models.MentionsAirport(pickup) || models.MentionsAirport(dropoff) {
		surcharges.AirportFee = utils.AirportFee
	}

	discounts := models.Discounts{}

	subtotal := utils.RoundPrice(basePrice + distancePrice + surcharges.Sum() - discounts.Sum())
	taxes := utils.RoundPrice(subtotal * utils.TaxRate)
	total := utils.RoundPrice(subtotal + taxes)

	breakdown := &models.PriceBreakdown{
		BasePrice:             basePrice,
		DistancePrice:         distancePrice,
		VehicleTypeMultiplier: 1.0,
		Surcharges:            surcharges,
		Discounts:             discounts,
		Subtotal:              subtotal,
		Taxes:                 taxes,
		Total:                 total,
		Currency:              utils.DefaultCurrency,
		Distance:              distance,
		DistanceEstimated:     estimated,
	}

	if s.logger != nil {
		s.logger.LogPriceQuote(string(vehicleType), distance, total, breakdown.Currency)
	}

	return breakdown
}

// EstimateJourney returns the distance, traffic level, and duration estimate
// for a journey starting at the given time.
func (s *PricingService) EstimateJourney(pickup, dropoff *models.Location, departAt time.Time) (float64, utils.TrafficLevel, int) {
	distance, _ := s.journeyDistance(pickup, dropoff)
	traffic := utils.GetTrafficLevel(departAt)
	duration := utils.EstimateDuration(distance, traffic)
	return distance, traffic, duration
}

// journeyDistance falls back to a fixed distance while geocoding is still
// pending, so the form can always show an indicative price. The breakdown is
// flagged so the UI can label the figure as an estimate.
func (s *PricingService) journeyDistance(pickup, dropoff *models.Location) (float64, bool) {
	if pickup == nil || dropoff == nil || !pickup.HasCoordinates() || !dropoff.HasCoordinates() {
		return utils.FallbackDistanceKM, true
	}

	distance := utils.CalculateDistance(
		pickup.Latitude(), pickup.Longitude(),
		dropoff.Latitude(), dropoff.Longitude(),
	)
	return distance, false
}
