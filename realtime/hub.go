package realtime

import (
	"encoding/json"
	"log"
	"sync"

	"bookxchange/models"

	"github.com/gorilla/websocket"
)

// Event types
const (
	EventBookUpdate   = "book_update"
	EventNotification = "notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ExchangeHub menampung semua client dashboard yang terhubung beserta
// user id-nya, untuk broadcast perubahan buku dan routing notifikasi.
type ExchangeHub struct {
	clients map[*websocket.Conn]uint // conn -> user id
	mutex   sync.Mutex
}

var hub = ExchangeHub{
	clients: make(map[*websocket.Conn]uint),
}

// RegisterClient -> menambahkan connection ke set dengan user id
func RegisterClient(conn *websocket.Conn, userID uint) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = userID
}

// UnregisterClient -> melepaskan connection
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastBookUpdate -> menyiarkan perubahan buku ke semua client,
// karena listing available books dilihat semua user.
func BroadcastBookUpdate(event models.ExchangeEvent) {
	broadcast(Message{
		Event: EventBookUpdate,
		Data:  event,
	}, nil)
}

// BroadcastNotification -> hanya untuk owner notifikasi
func BroadcastNotification(event models.ExchangeEvent, ownerID uint) {
	broadcast(Message{
		Event: EventNotification,
		Data:  event,
	}, &ownerID)
}

func broadcast(msg Message, onlyUser *uint) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	for conn, userID := range hub.clients {
		if onlyUser != nil && userID != *onlyUser {
			continue
		}
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error broadcasting to client: %v", err)
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
