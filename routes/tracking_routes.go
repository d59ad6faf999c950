package routes

import (
	handlers "recharge-transfers/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupTrackingRoutes wires the driver ingest endpoint and the read endpoints.
// The websocket feed lives at the server root, outside the versioned group.
func SetupTrackingRoutes(r *gin.RouterGroup, trackingHandler *handlers.TrackingHandler) {
	tracking := r.Group("/tracking")
	{
		tracking.POST("/:booking_id", trackingHandler.IngestLocation)
		tracking.GET("/:booking_id/latest", trackingHandler.GetLatestLocation)
		tracking.GET("/:booking_id/history", trackingHandler.GetLocationHistory)
	}
}
