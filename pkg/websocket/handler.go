package websocket

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Handler struct {
	hub *Hub
}

func NewHandler() *Handler {
	hub := NewHub()
	go hub.Run()

	return &Handler{
		hub: hub,
	}
}

// HandleWebSocket upgrades the connection and subscribes the client to one
// booking's tracking feed. booking_id is required; role defaults to customer.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	bookingIDStr := c.Query("booking_id")
	bookingID, err := primitive.ObjectIDFromHex(bookingIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	role := c.DefaultQuery("role", "customer")
	if role != "customer" && role != "driver" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, bookingID, role)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

func (h *Handler) SendBookingUpdate(bookingID primitive.ObjectID, updateType string, data map[string]interface{}) {
	h.hub.SendBookingUpdate(bookingID, Message{
		Type:      updateType,
		Timestamp: getCurrentTimestamp(),
		Data:      data,
	})
}

func (h *Handler) SendLocationUpdate(bookingID primitive.ObjectID, data map[string]interface{}) {
	h.hub.SendLocationUpdate(bookingID, data)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}
