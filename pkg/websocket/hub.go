package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mutex      sync.RWMutex
}

type Message struct {
	Type      string                 `json:"type"`
	RoomID    string                 `json:"room_id,omitempty"`
	BookingID string                 `json:"booking_id,omitempty"`
	Timestamp int64                  `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client] = true

	// Clients subscribe to exactly one booking's feed.
	if client.BookingID != primitive.NilObjectID {
		h.joinRoom(client, bookingRoom(client.BookingID))
	}

	welcomeMsg := Message{
		Type:      "welcome",
		BookingID: client.BookingID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data: map[string]interface{}{
			"message": "Connected successfully",
		},
	}

	// The buffer is fresh here, so this cannot block; the write lock is
	// already held, so sendToClient must not be used.
	data, _ := json.Marshal(welcomeMsg)
	select {
	case client.send <- data:
	default:
	}
}

func (h *Hub) unregisterClient(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)

		for roomID, room := range h.rooms {
			if _, exists := room[client]; exists {
				delete(room, client)
				if len(room) == 0 {
					delete(h.rooms, roomID)
				}
			}
		}
	}
}

func (h *Hub) broadcastMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.RoomID != "" {
		h.sendToRoom(msg.RoomID, msg)
	}
}

func (h *Hub) sendToRoom(roomID string, message Message) {
	h.mutex.RLock()
	room, exists := h.rooms[roomID]
	if !exists {
		h.mutex.RUnlock()
		return
	}

	data, _ := json.Marshal(message)
	var slow []*Client
	for client := range room {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mutex.RUnlock()

	// Slow clients are evicted through the unregister channel, which owns
	// all map mutation and the single close of send. Run may be the caller
	// here, so the handoff must not block.
	for _, client := range slow {
		h.evict(client)
	}
}

// sendToClient delivers to one registered client. The membership check under
// the read lock keeps the send from racing the close in unregisterClient.
func (h *Hub) sendToClient(client *Client, message Message) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if _, active := h.clients[client]; !active {
		return
	}

	data, _ := json.Marshal(message)
	select {
	case client.send <- data:
	default:
		h.evict(client)
	}
}

func (h *Hub) evict(client *Client) {
	go func() {
		h.unregister <- client
	}()
}

// SendBookingUpdate pushes a message to every client watching a booking.
func (h *Hub) SendBookingUpdate(bookingID primitive.ObjectID, message Message) {
	message.RoomID = bookingRoom(bookingID)
	message.BookingID = bookingID.Hex()
	h.sendToRoom(message.RoomID, message)
}

// SendLocationUpdate pushes a driver location point to a booking's watchers.
func (h *Hub) SendLocationUpdate(bookingID primitive.ObjectID, location map[string]interface{}) {
	message := Message{
		Type:      "location_update",
		RoomID:    bookingRoom(bookingID),
		BookingID: bookingID.Hex(),
		Timestamp: getCurrentTimestamp(),
		Data:      location,
	}

	h.sendToRoom(message.RoomID, message)
}

func (h *Hub) joinRoom(client *Client, roomID string) {
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
	client.rooms[roomID] = true
}

func (h *Hub) LeaveRoom(client *Client, roomID string) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if room, exists := h.rooms[roomID]; exists {
		delete(room, client)
		delete(client.rooms, roomID)

		if len(room) == 0 {
			delete(h.rooms, roomID)
		}
	}
}

func bookingRoom(bookingID primitive.ObjectID) string {
	return "booking_" + bookingID.Hex()
}

func getCurrentTimestamp() int64 {
	return time.Now().Unix()
}
