package controllers

import (
	"net/http"

	"bookxchange/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ExchangeFeedHandler -> websocket feed perubahan buku/notifikasi.
// user_id sudah diset oleh WebSocketAuthMiddleware.
func ExchangeFeedHandler(c *gin.Context) {
	userIDInterface, exists := c.Get("user_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	userID := userIDInterface.(uint)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, userID)

	// Baca pesan hanya untuk mendeteksi disconnect
	for {
		_, _, err := ws.ReadMessage()
		if err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}
