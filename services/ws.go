package services

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket upgrades a viewer connection and attaches it to the hub.
func HandleWebSocket(hub *Hub, log *zap.SugaredLogger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Errorf("[WS] upgrade error: %v", err)
			return
		}

		client := &Client{
			conn:   conn,
			hub:    hub,
			send:   make(chan []byte, 32),
			remote: conn.RemoteAddr().String(),
			log:    log,
		}
		hub.addClient(client)
	}
}
