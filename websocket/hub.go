package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Client is one connected admin watching the live sales feed.
type Client struct {
	ID   uuid.UUID
	Conn *websocket.Conn
}

// FeedEvent is pushed to every connected admin: a fresh order or a
// captured checkout attempt.
type FeedEvent struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan FeedEvent, 16)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Admin feed client registered: %s", client.ID)
			clientsMu.Lock()
			clients[client.ID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Admin feed client unregistered: %s", client.ID)
			clientsMu.Lock()
			if conn, ok := clients[client.ID]; ok && conn == client.Conn {
				delete(clients, client.ID)
			}
			clientsMu.Unlock()
		case event := <-Broadcast:
			clientsMu.RLock()
			var dead []uuid.UUID
			for id, conn := range clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error pushing feed event to client %s: %v", id, err)
					conn.Close()
					dead = append(dead, id)
				}
			}
			clientsMu.RUnlock()
			if len(dead) > 0 {
				clientsMu.Lock()
				for _, id := range dead {
					delete(clients, id)
				}
				clientsMu.Unlock()
			}
		}
	}
}

// Notify queues a feed event without blocking the caller; the feed is
// best-effort and drops events when nobody is draining the channel.
func Notify(eventType string, payload interface{}) {
	select {
	case Broadcast <- FeedEvent{Type: eventType, Payload: payload}:
	default:
	}
}
