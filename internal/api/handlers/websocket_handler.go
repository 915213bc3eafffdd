package handlers

import (
	"log"
	"net/http"

	"field-sales-ops-api-server/internal/api/middleware"
	"field-sales-ops-api-server/internal/socket"
	"field-sales-ops-api-server/pkg/response"

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

// ServeWs upgrades an authenticated request and parks the connection in
// the hub until the client hangs up.
func ServeWs(hub *socket.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.CtxUserID)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, response.Error("Unauthorized"))
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		hub.Register(userID, conn)
		defer func() {
			hub.Unregister(userID)
			conn.Close()
		}()

		// Drain reads so pings and close frames are handled.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
