package handlers

import (
	"strconv"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/services"
	"recharge-transfers/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TrackingHandler struct {
	trackingService *services.TrackingService
}

func NewTrackingHandler(trackingService *services.TrackingService) *TrackingHandler {
	return &TrackingHandler{
		trackingService: trackingService,
	}
}

type locationIngest struct {
	DriverID  string   `json:"driver_id" binding:"required"`
	Latitude  float64  `json:"latitude" binding:"required"`
	Longitude float64  `json:"longitude" binding:"required"`
	Heading   *float64 `json:"heading"`
	Speed     *float64 `json:"speed"`
	Accuracy  *float64 `json:"accuracy"`
}

// IngestLocation accepts one driver position report for a booking's feed.
func (h *TrackingHandler) IngestLocation(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("booking_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var req locationIngest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driverID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid driver ID")
		return
	}

	data := &models.TrackingData{
		BookingID: bookingID,
		DriverID:  driverID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Heading:   req.Heading,
		Speed:     req.Speed,
		Accuracy:  req.Accuracy,
	}

	if err := h.trackingService.Publish(c.Request.Context(), data); err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Location recorded", data)
}

// GetLatestLocation returns the newest point, or an empty success payload
// while the driver is not yet reporting.
func (h *TrackingHandler) GetLatestLocation(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("booking_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	data, err := h.trackingService.GetLatestLocation(c.Request.Context(), bookingID)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}
	if data == nil {
		utils.SuccessResponse(c, "No location reported yet", nil)
		return
	}

	utils.SuccessResponse(c, "Latest location retrieved", data)
}

// GetLocationHistory returns recent points, newest first.
func (h *TrackingHandler) GetLocationHistory(c *gin.Context) {
	bookingID, err := primitive.ObjectIDFromHex(c.Param("booking_id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "100"), 10, 64)
	if limit < 1 || limit > 1000 {
		limit = 100
	}

	history, err := h.trackingService.GetHistory(c.Request.Context(), bookingID, limit)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Location history retrieved", history, &utils.Meta{
		Count: len(history),
	})
}
