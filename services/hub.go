package services

import (
	"encoding/json"
	"sync"

	"github.com/bingolive/bingo-live/metrics"
	"go.uber.org/zap"
)

// Hub fans session events out to every connected viewer. The engine hands it
// events in serialization order; the hub preserves that order per client by
// pushing onto each client's send channel while holding its lock. A slow
// client gets dropped messages, never a reordered stream.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]bool
	snapshot func() (interface{}, bool)
	log      *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Hub{
		clients: make(map[*Client]bool),
		log:     log,
	}
}

// SetSnapshotSource registers the provider of the initial payload a client
// receives right after connecting.
func (h *Hub) SetSnapshotSource(fn func() (interface{}, bool)) {
	h.mu.Lock()
	h.snapshot = fn
	h.mu.Unlock()
}

// Broadcast marshals once and queues the payload on every client.
func (h *Hub) Broadcast(v interface{}) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Errorf("[Hub] marshal broadcast: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- b:
		default:
			h.log.Warnf("[Hub] dropping message to slow client %s", c.remote)
		}
	}
}

func (h *Hub) addClient(c *Client) {
	h.mu.Lock()
	h.clients[c] = true
	snapshot := h.snapshot
	h.mu.Unlock()

	metrics.ConnectedViewers.Inc()

	// Initial state push so a new viewer does not wait for the next draw.
	if snapshot != nil {
		if v, ok := snapshot(); ok {
			if b, err := json.Marshal(v); err == nil {
				select {
				case c.send <- b:
				default:
				}
			}
		}
	}

	go c.writePump()
	go c.readPump()

	h.log.Infof("[Hub] viewer %s connected (total=%d)", c.remote, h.ClientCount())
}

func (h *Hub) removeClient(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
	}
	h.mu.Unlock()

	if ok {
		metrics.ConnectedViewers.Dec()
		c.Close()
		h.log.Infof("[Hub] viewer %s disconnected (total=%d)", c.remote, h.ClientCount())
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
