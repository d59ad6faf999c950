package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"recharge-transfers/internal/models"
	"recharge-transfers/internal/services"
	"recharge-transfers/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingHandler struct {
	bookingService *services.BookingService
}

func NewBookingHandler(bookingService *services.BookingService) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
	}
}

// CreateBooking accepts a completed booking form and persists it. Validation
// failures return the full message list so the client can show every problem
// at once.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var form models.BookingFormData
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), &form)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			utils.ErrorResponseWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR",
				utils.ErrValidationFailed, validationDetails(validationErr.Messages))
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "BOOKING_CREATE_FAILED", "Failed to create booking")
		return
	}

	utils.CreatedResponse(c, "Booking created successfully", booking)
}

// GetBooking looks a booking up by its ObjectID.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.NotFoundResponse(c, "Booking not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

// GetBookingByNumber looks a booking up by its human-facing reference.
func (h *BookingHandler) GetBookingByNumber(c *gin.Context) {
	booking, err := h.bookingService.GetBookingByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		if errors.Is(err, services.ErrBookingNotFound) {
			utils.NotFoundResponse(c, "Booking not found")
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Booking retrieved", booking)
}

// ListBookings returns a customer's bookings by contact email, paginated.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		utils.BadRequestResponse(c, "email query parameter is required")
		return
	}

	params := utils.GetPaginationParams(c)
	bookings, total, err := h.bookingService.ListBookingsByEmail(c.Request.Context(), email, params)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{
		Pagination: utils.NewPaginationMeta(params, total),
		Count:      len(bookings),
	})
}

// UpdateBooking applies the mutable fields: status, special requirements, and
// driver assignment.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var update models.BookingUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdateBooking(c.Request.Context(), id, &update)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking updated", booking)
}

type statusUpdateRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// UpdateStatus moves a booking through its lifecycle; invalid transitions are
// rejected with a conflict.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking status updated", booking)
}

type driverAssignRequest struct {
	DriverID string `json:"driver_id" binding:"required"`
}

// AssignDriver attaches a driver to the booking for the tracking feed.
func (h *BookingHandler) AssignDriver(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	var req driverAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	driverID, err := primitive.ObjectIDFromHex(req.DriverID)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid driver ID")
		return
	}

	booking, err := h.bookingService.AssignDriver(c.Request.Context(), id, driverID)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	utils.SuccessResponse(c, "Driver assigned", booking)
}

// CancelBooking cancels through the lifecycle guard; completed bookings are
// rejected with a conflict.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid booking ID")
		return
	}

	booking, err := h.bookingService.CancelBooking(c.Request.Context(), id)
	if err != nil {
		h.respondUpdateError(c, err)
		return
	}

	utils.SuccessResponse(c, "Booking cancelled", booking)
}

func (h *BookingHandler) respondUpdateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingNotFound):
		utils.NotFoundResponse(c, "Booking not found")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ConflictResponse(c, err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}

func validationDetails(messages []string) map[string]string {
	details := make(map[string]string, len(messages))
	for i, msg := range messages {
		details[fmt.Sprintf("error_%d", i+1)] = msg
	}
	return details
}
