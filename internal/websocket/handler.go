package websocket

import (
	"log"
	"net/http"

	"ecotrack-backend/internal/middleware"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		return true
	},
}

// HandleWebSocket upgrades the connection after validating the token passed
// as a query parameter (browsers cannot set headers on websocket dials).
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := r.URL.Query().Get("token")

		var userClaims middleware.UserClaims
		if tokenString != "" {
			var err error
			userClaims, err = middleware.ParseToken(tokenString)
			if err != nil {
				log.Printf("❌ Invalid token in query parameter: %v", err)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		} else {
			// Fallback: user set by Auth middleware
			var ok bool
			userClaims, ok = middleware.GetUserFromContext(r)
			if !ok {
				log.Println("❌ No user in context for WebSocket connection")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("❌ WebSocket upgrade failed: %v", err)
			return
		}

		client := NewClient(userClaims.UserID, userClaims.Role, conn, hub)
		hub.register <- client

		go client.WritePump()
		go client.ReadPump()
	}
}
