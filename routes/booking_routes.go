package routes

import (
	handlers "recharge-transfers/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes wires the booking, pricing, and place endpoints.
func SetupBookingRoutes(r *gin.RouterGroup, bookingHandler *handlers.BookingHandler, pricingHandler *handlers.PricingHandler, placeHandler *handlers.PlaceHandler) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("/", bookingHandler.CreateBooking)
		bookings.GET("/", bookingHandler.ListBookings)
		bookings.GET("/:id", bookingHandler.GetBooking)
		bookings.PUT("/:id", bookingHandler.UpdateBooking)
		bookings.PUT("/:id/status", bookingHandler.UpdateStatus)
		bookings.PUT("/:id/driver", bookingHandler.AssignDriver)
		bookings.PUT("/:id/cancel", bookingHandler.CancelBooking)
		bookings.GET("/number/:number", bookingHandler.GetBookingByNumber)
	}

	pricing := r.Group("/pricing")
	{
		pricing.POST("/quote", pricingHandler.GetQuote)
	}

	r.GET("/vehicles", pricingHandler.ListVehicles)
	r.GET("/places/search", placeHandler.SearchPlaces)
}
