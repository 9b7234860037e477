package services

import (
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client is one websocket viewer. Viewers are read-only: operator actions go
// through the REST API, the socket only carries state updates outward.
type Client struct {
	conn   *websocket.Conn
	hub    *Hub
	send   chan []byte
	remote string
	once   sync.Once
	log    *zap.SugaredLogger
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// readPump drains inbound frames until the peer goes away. Anything the
// viewer sends is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.removeClient(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.log.Debugf("[Client %s] closed normally", c.remote)
			} else {
				c.log.Debugf("[Client %s] read error: %v", c.remote, err)
			}
			return
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.log.Debugf("[Client %s] write error: %v", c.remote, err)
			return
		}
	}
}
