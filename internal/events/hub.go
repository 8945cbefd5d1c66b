package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/socraticlabs/council/backend/internal/logging"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Local desktop shell, frontend origin varies in dev
	},
}

const writeTimeout = 5 * time.Second

// Frame is the wire format for events pushed to the frontend.
type Frame struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Hub fans emitted events out to all connected WebSocket clients.
type Hub struct {
	log   *logging.Logger
	mu    sync.RWMutex
	conns map[string]*connection
}

type connection struct {
	ws *websocket.Conn
	mu sync.Mutex // serializes writes
}

// NewHub creates a new event hub.
func NewHub(log *logging.Logger) *Hub {
	return &Hub{
		log:   log.Named("events"),
		conns: make(map[string]*connection),
	}
}

// Emit delivers an event to every connected client. Clients that fail
// to accept the write are disconnected; Emit itself never fails the
// caller on delivery problems.
func (h *Hub) Emit(event string, payload interface{}) error {
	data, err := sonic.Marshal(Frame{Event: event, Payload: payload})
	if err != nil {
		return err
	}

	h.mu.RLock()
	targets := make(map[string]*connection, len(h.conns))
	for id, conn := range h.conns {
		targets[id] = conn
	}
	h.mu.RUnlock()

	for id, conn := range targets {
		if err := conn.write(data); err != nil {
			h.log.Debug("dropping slow event client",
				zap.String("conn_id", id), zap.Error(err))
			h.remove(id)
		}
	}
	return nil
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// HandleConnection upgrades an HTTP request to a WebSocket event
// subscription.
func (h *Hub) HandleConnection(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	id := uuid.NewString()
	conn := &connection{ws: ws}

	h.mu.Lock()
	h.conns[id] = conn
	h.mu.Unlock()

	h.log.Info("event client connected", zap.String("conn_id", id))

	welcome, _ := sonic.Marshal(Frame{
		Event:   "system",
		Payload: map[string]interface{}{"message": "connected to council backend"},
	})
	if err := conn.write(welcome); err != nil {
		h.remove(id)
		ws.Close()
		return
	}

	// Read loop: the frontend only sends keep-alive pings; anything
	// else is ignored. Exiting the loop tears the subscription down.
	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := ws.ReadJSON(&msg); err != nil {
			break
		}
		if msg.Type == "ping" {
			pong, _ := sonic.Marshal(Frame{Event: "pong", Payload: nil})
			if err := conn.write(pong); err != nil {
				break
			}
		}
	}

	h.remove(id)
	ws.Close()
	h.log.Info("event client disconnected", zap.String("conn_id", id))
}

func (h *Hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, id)
}

func (c *connection) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}
