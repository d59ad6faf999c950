package handlers

import (
	"time"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/services"
	"recharge-transfers/internal/utils"

	"github.com/gin-gonic/gin"
)

type PricingHandler struct {
	pricingService *services.PricingService
}

func NewPricingHandler(pricingService *services.PricingService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
	}
}

type quoteRequest struct {
	PickupLocation  *models.Location   `json:"pickup_location" binding:"required"`
	DropoffLocation *models.Location   `json:"dropoff_location" binding:"required"`
	VehicleType     models.VehicleType `json:"vehicle_type"`
	PickupDatetime  time.Time          `json:"pickup_datetime"`
}

type quoteResponse struct {
	Price           *models.PriceBreakdown `json:"price"`
	TrafficLevel    utils.TrafficLevel     `json:"traffic_level"`
	DurationMinutes int                    `json:"duration_minutes"`
}

// GetQuote prices a journey without creating anything. The same engine runs
// inside the booking flow, so a quote always matches the eventual total.
func (h *PricingHandler) GetQuote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if req.VehicleType == "" {
		req.VehicleType = models.VehicleTypeSedan
	}
	if !models.IsValidVehicleType(req.VehicleType) {
		utils.BadRequestResponse(c, "Unknown vehicle type: "+string(req.VehicleType))
		return
	}

	price := h.pricingService.CalculatePrice(req.PickupLocation, req.DropoffLocation, req.VehicleType, req.PickupDatetime)
	if price == nil {
		utils.BadRequestResponse(c, "Both pickup and drop-off locations must have an address")
		return
	}

	_, traffic, duration := h.pricingService.EstimateJourney(req.PickupLocation, req.DropoffLocation, req.PickupDatetime)

	utils.SuccessResponse(c, "Quote calculated", quoteResponse{
		Price:           price,
		TrafficLevel:    traffic,
		DurationMinutes: duration,
	})
}

// ListVehicles returns the vehicle catalog with capacities and rates, in
// display order.
func (h *PricingHandler) ListVehicles(c *gin.Context) {
	utils.SuccessResponse(c, "Vehicle types retrieved", models.ListVehicleClasses())
}
