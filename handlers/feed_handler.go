package handlers

import (
	ws "github.com/asifrahman99/course_bazaar/websocket"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// FeedUpgradeRequired gates the admin feed route to websocket requests.
func FeedUpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AdminFeedSocket streams new orders and checkout attempts to the admin
// back-office as they happen.
func AdminFeedSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{ID: uuid.New(), Conn: conn}
		ws.Register <- client
		defer func() {
			ws.Unregister <- client
			conn.Close()
		}()

		// Drain reads until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	})
}
